package domain

// IndexedDocument is the flattened form of a Document stored in the bleve
// name-search index.
type IndexedDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Category    []string `json:"category"`
	Functions   []string `json:"functionsubfn"`
	ReleaseDate string   `json:"releasedate"`
}

// NewIndexedDocument flattens doc for indexing.
func NewIndexedDocument(doc Document) IndexedDocument {
	return IndexedDocument{
		ID:          doc.ID,
		Name:        doc.Data.Name,
		Type:        doc.Data.Type,
		Category:    doc.Data.Categories(),
		Functions:   doc.Data.Functions(),
		ReleaseDate: doc.Data.ReleaseDate,
	}
}

// Bleve field name constants for consistent field references in queries and mappings.
const (
	IndexFieldID          = "id"
	IndexFieldName        = "name"
	IndexFieldType        = "type"
	IndexFieldCategory    = "category"
	IndexFieldFunctions   = "functionsubfn"
	IndexFieldReleaseDate = "releasedate"
)
