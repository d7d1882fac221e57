package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// DefaultTimeout bounds a single backend request when no client is supplied.
const DefaultTimeout = 30 * time.Second

// Backend API paths.
const (
	PathDocuments       = "/api/documents"
	PathDocTypes        = "/api/doctypes"
	PathFilterData      = "/api/filterdata"
	PathDocumentContent = "/api/documentcontent/"
	PathDocument        = "/api/document/"
	PathDownload        = "/api/documentdownload/"
	PathSearchResults   = "/api/searchresults"
)

// HTTPClient calls the backend REST API over HTTP.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a client for baseURL with the given request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// FetchDocuments returns every published document.
func (c *HTTPClient) FetchDocuments(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	if err := c.getJSON(ctx, PathDocuments, &docs); err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	return docs, nil
}

// FetchDocTypes returns the canonical document types.
func (c *HTTPClient) FetchDocTypes(ctx context.Context) ([]domain.DocType, error) {
	var types []domain.DocType
	if err := c.getJSON(ctx, PathDocTypes, &types); err != nil {
		return nil, fmt.Errorf("fetch doc types: %w", err)
	}
	return types, nil
}

// FetchFacetDefinitions returns the raw filter metadata.
func (c *HTTPClient) FetchFacetDefinitions(ctx context.Context) ([]domain.FacetDefinition, error) {
	var defs []domain.FacetDefinition
	if err := c.getJSON(ctx, PathFilterData, &defs); err != nil {
		return nil, fmt.Errorf("fetch filter data: %w", err)
	}
	return defs, nil
}

// FetchDocumentContent returns the decoded PDF content of a document.
func (c *HTTPClient) FetchDocumentContent(ctx context.Context, id string) ([]byte, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, PathDocumentContent+url.PathEscape(id), &raw); err != nil {
		return nil, fmt.Errorf("fetch content %s: %w", id, err)
	}
	data, err := DecodeContent(raw)
	if err != nil {
		return nil, fmt.Errorf("decode content %s: %w", id, err)
	}
	return data, nil
}

// FetchDocumentByID returns the current metadata of a single document.
func (c *HTTPClient) FetchDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	var doc domain.Document
	if err := c.getJSON(ctx, PathDocument+url.PathEscape(id), &doc); err != nil {
		return domain.Document{}, fmt.Errorf("fetch document %s: %w", id, err)
	}
	return doc, nil
}

// FetchDocumentDownload downloads a document in the requested format. An
// empty format requests the original file type.
func (c *HTTPClient) FetchDocumentDownload(ctx context.Context, id, format string) (*domain.Blob, error) {
	path := PathDownload + url.PathEscape(id) + "?" + url.Values{"type": {format}}.Encode()
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", id, err)
	}

	return &domain.Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		Data:        data,
	}, nil
}

// SearchContent searches published document contents for term.
func (c *HTTPClient) SearchContent(ctx context.Context, term string) (json.RawMessage, error) {
	body, err := json.Marshal(searchRequest{Term: term, Types: []string{PublishedType}})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, PathSearchResults, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search content: %w", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("search content: decode response: %w", err)
	}
	return raw, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do sends a request and returns the response when the status is 2xx. The
// caller closes the body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("Backend request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	return resp, nil
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// DecodeContent decodes a content payload. The backend sends either an
// object with a base64 "content" field or a bare base64 JSON string.
func DecodeContent(raw json.RawMessage) ([]byte, error) {
	var encoded string
	var obj contentResponse
	if err := json.Unmarshal(raw, &obj); err == nil {
		encoded = obj.Content
	} else if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, fmt.Errorf("unexpected content payload: %w", err)
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
