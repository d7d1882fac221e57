// Package backend talks to the document repository REST API.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// ErrNotFound is returned when the backend has no record for the requested id.
var ErrNotFound = errors.New("not found")

// PublishedType is the object type sent with every content search.
const PublishedType = "published"

// Client is the set of backend operations the service depends on.
type Client interface {
	FetchDocuments(ctx context.Context) ([]domain.Document, error)
	FetchDocTypes(ctx context.Context) ([]domain.DocType, error)
	FetchFacetDefinitions(ctx context.Context) ([]domain.FacetDefinition, error)

	// FetchDocumentContent returns the decoded PDF bytes of a document.
	FetchDocumentContent(ctx context.Context, id string) ([]byte, error)
	FetchDocumentByID(ctx context.Context, id string) (domain.Document, error)
	FetchDocumentDownload(ctx context.Context, id, format string) (*domain.Blob, error)

	// SearchContent runs a full-text search over document contents. The
	// result is passed through unchanged.
	SearchContent(ctx context.Context, term string) (json.RawMessage, error)
}

// StatusError reports an unexpected HTTP status from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// searchRequest is the body of a content search.
type searchRequest struct {
	Term  string   `json:"term"`
	Types []string `json:"types"`
}

// contentResponse carries base64-encoded document content.
type contentResponse struct {
	Content string `json:"content" yaml:"content"`
}
