// Package web serves the document browsing HTTP API.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/FahmidKDAU/kyo-document-control/internal/backend"
	"github.com/FahmidKDAU/kyo-document-control/internal/catalog"
	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
	"github.com/FahmidKDAU/kyo-document-control/internal/library"
	"github.com/FahmidKDAU/kyo-document-control/internal/metrics"
)

// DefaultFilename names downloads when neither the document nor the backend
// provides a file name.
const DefaultFilename = "document"

// Options wires the HTTP API.
type Options struct {
	Library *library.Service
	Metrics *metrics.Metrics

	// MCP serves the MCP SSE endpoint when set.
	MCP http.Handler
}

type server struct {
	lib *library.Service
}

// NewHandler returns the HTTP API with request id, logging and metrics
// middleware applied.
func NewHandler(opts Options) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var observer RequestObserver
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
		observer = opts.Metrics
	}

	if opts.Library != nil {
		s := &server{lib: opts.Library}
		mux.HandleFunc("GET /status", s.handleStatus)
		mux.HandleFunc("GET /documents", s.handleList)
		mux.HandleFunc("GET /documents/{category}", s.handleList)
		mux.HandleFunc("GET /documents/{type}/{id}", s.handleView)
		mux.HandleFunc("GET /documents/{type}/{id}/content", s.handleContent)
		mux.HandleFunc("GET /documents/{type}/{id}/download", s.handleDownload)
		mux.HandleFunc("GET /doctypes", s.handleDocTypes)
		mux.HandleFunc("GET /search", s.handleSearch)
		mux.HandleFunc("GET /search/content", s.handleSearchContent)
	}

	if opts.MCP != nil {
		mux.Handle("/sse", opts.MCP)
	}

	return Chain(mux, WithRequestID, WithLogging(observer))
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.lib.Status())
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.PathValue("category"), r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.lib.List(q))
}

// documentView is everything the document page shows besides the content.
type documentView struct {
	Document       domain.Document         `json:"document"`
	Released       string                  `json:"released"`
	DownloadFormat string                  `json:"downloadFormat"`
	Navigation     catalog.NavigationState `json:"navigation"`
	BackPath       string                  `json:"backPath"`
	ContentPath    string                  `json:"contentPath"`
	DownloadPath   string                  `json:"downloadPath"`
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.fetchDocument(w, r)
	if !ok {
		return
	}

	state := catalog.DecodeNavigation(r.URL.Query())
	base := "/documents/" + url.PathEscape(r.PathValue("type")) + "/" + url.PathEscape(r.PathValue("id"))
	writeJSON(w, http.StatusOK, documentView{
		Document:       doc,
		Released:       catalog.DisplayDate(doc.Data.ReleaseDate),
		DownloadFormat: catalog.DownloadFormat(doc),
		Navigation:     state,
		BackPath:       catalog.ListPath(state),
		ContentPath:    base + "/content",
		DownloadPath:   base + "/download",
	})
}

func (s *server) handleContent(w http.ResponseWriter, r *http.Request) {
	data, err := s.lib.Content(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.fetchDocument(w, r)
	if !ok {
		return
	}

	format := catalog.DownloadFormat(doc)
	if r.URL.Query().Has("type") {
		format = r.URL.Query().Get("type")
	}

	blob, err := s.lib.Download(r.Context(), doc.ID, format)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}

	filename := doc.Name
	if filename == "" {
		filename = blob.Filename
	}
	if filename == "" {
		filename = DefaultFilename
	}
	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob.Data)
}

type docTypesResponse struct {
	DocTypes []library.DocTypeCount `json:"docTypes"`
	Total    int                    `json:"total"`
}

func (s *server) handleDocTypes(w http.ResponseWriter, r *http.Request) {
	counts, total := s.lib.DocTypeCounts()
	writeJSON(w, http.StatusOK, docTypesResponse{DocTypes: counts, Total: total})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := s.lib.Search(r.Context(), library.SearchRequest{
		Query:    values.Get("q"),
		Type:     values.Get("type"),
		Category: values.Get("category"),
		Function: values.Get("function"),
	})
	switch {
	case errors.Is(err, library.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *server) handleSearchContent(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("term"))
	if term == "" {
		writeError(w, http.StatusBadRequest, "term cannot be empty")
		return
	}
	raw, err := s.lib.SearchContent(r.Context(), term)
	if err != nil {
		writeBackendError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (s *server) fetchDocument(w http.ResponseWriter, r *http.Request) (domain.Document, bool) {
	doc, err := s.lib.Document(r.Context(), r.PathValue("id"))
	if err != nil {
		writeBackendError(w, r, err)
		return domain.Document{}, false
	}
	return doc, true
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: w.Header().Get(RequestIDHeader)})
}

// writeBackendError maps a backend failure to a response status.
func writeBackendError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, backend.ErrNotFound) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	slog.Error("Backend request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	writeError(w, http.StatusBadGateway, "backend unavailable")
}
