package backend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// Fixture is the on-disk form of a backend snapshot. JSON files parse too.
type Fixture struct {
	Documents  []domain.Document        `yaml:"documents"`
	DocTypes   []domain.DocType         `yaml:"doctypes"`
	FilterData []domain.FacetDefinition `yaml:"filterdata"`

	// Contents maps document ids to base64-encoded PDF content.
	Contents map[string]string `yaml:"contents"`
}

// FileClient serves backend data from a fixture file loaded at creation.
type FileClient struct {
	path    string
	fixture Fixture
}

// NewFileClient loads the fixture at path.
func NewFileClient(path string) (*FileClient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	return &FileClient{path: path, fixture: fixture}, nil
}

// FetchDocuments returns the fixture documents.
func (c *FileClient) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.fixture.Documents, nil
}

// FetchDocTypes returns the fixture doc types.
func (c *FileClient) FetchDocTypes(ctx context.Context) ([]domain.DocType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.fixture.DocTypes, nil
}

// FetchFacetDefinitions returns the fixture filter metadata.
func (c *FileClient) FetchFacetDefinitions(ctx context.Context) ([]domain.FacetDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.fixture.FilterData, nil
}

// FetchDocumentContent decodes the stored content of id.
func (c *FileClient) FetchDocumentContent(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	encoded, ok := c.fixture.Contents[id]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", id, ErrNotFound)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode content %s: %w", id, err)
	}
	return data, nil
}

// FetchDocumentByID looks up a fixture document.
func (c *FileClient) FetchDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	for _, doc := range c.fixture.Documents {
		if doc.ID == id {
			return doc, nil
		}
	}
	return domain.Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
}

// FetchDocumentDownload serves the stored content. Fixtures only hold one
// rendition, so format only affects the reported content type.
func (c *FileClient) FetchDocumentDownload(ctx context.Context, id, format string) (*domain.Blob, error) {
	data, err := c.FetchDocumentContent(ctx, id)
	if err != nil {
		return nil, err
	}
	contentType := "application/octet-stream"
	if strings.EqualFold(format, "pdf") {
		contentType = "application/pdf"
	}
	return &domain.Blob{ContentType: contentType, Data: data}, nil
}

// SearchContent returns the fixture documents whose name contains term.
func (c *FileClient) SearchContent(ctx context.Context, term string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	matches := []domain.Document{}
	for _, doc := range c.fixture.Documents {
		if strings.Contains(strings.ToLower(doc.Data.Name), needle) {
			matches = append(matches, doc)
		}
	}
	return json.Marshal(matches)
}

// Path returns the fixture file path.
func (c *FileClient) Path() string {
	return c.path
}
