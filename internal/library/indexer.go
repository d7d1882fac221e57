package library

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// MaxBatchSize is the maximum number of documents per index batch.
const MaxBatchSize = 500

// CreateIndexMapping creates the Bleve index mapping for document metadata.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Name - analyzed for full-text search
	nameField := bleve.NewTextFieldMapping()
	nameField.Analyzer = standard.Name
	nameField.Store = true
	nameField.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt(domain.IndexFieldName, nameField)

	// Type, category and functions - keyword, exact match filters
	for _, field := range []string{domain.IndexFieldType, domain.IndexFieldCategory, domain.IndexFieldFunctions} {
		keywordField := bleve.NewTextFieldMapping()
		keywordField.Analyzer = keyword.Name
		keywordField.Store = true
		docMapping.AddFieldMappingsAt(field, keywordField)
	}

	// Stored for display only
	for _, field := range []string{domain.IndexFieldID, domain.IndexFieldReleaseDate} {
		storedField := bleve.NewTextFieldMapping()
		storedField.Index = false
		storedField.Store = true
		docMapping.AddFieldMappingsAt(field, storedField)
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// BuildIndex creates an in-memory index over docs. Documents without an id
// are skipped.
func BuildIndex(docs []domain.Document) (bleve.Index, error) {
	index, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	if err := indexDocuments(index, docs); err != nil {
		_ = index.Close()
		return nil, err
	}
	return index, nil
}

func indexDocuments(index bleve.Index, docs []domain.Document) error {
	batch := index.NewBatch()
	for _, doc := range docs {
		if doc.ID == "" {
			continue
		}
		if err := batch.Index(doc.ID, domain.NewIndexedDocument(doc)); err != nil {
			return fmt.Errorf("index document %s: %w", doc.ID, err)
		}
		if batch.Size() >= MaxBatchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("batch index failed: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("final batch index failed: %w", err)
		}
	}
	return nil
}
