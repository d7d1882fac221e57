// Package library holds the fetched document collection and serves the
// browse pipeline, name search, and document access over it.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"golang.org/x/sync/errgroup"

	"github.com/FahmidKDAU/kyo-document-control/internal/backend"
	"github.com/FahmidKDAU/kyo-document-control/internal/catalog"
	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// ErrNotReady is returned by search before the first successful documents fetch.
var ErrNotReady = errors.New("document index not ready")

// Backend resource names used in status and metrics.
const (
	ResourceDocuments  = "documents"
	ResourceDocTypes   = "doctypes"
	ResourceFilterData = "filterdata"
)

// DefaultMaxSearchResults caps name search hits when no limit is configured.
const DefaultMaxSearchResults = 20

// Observer receives load and tool events. metrics.Metrics implements it.
type Observer interface {
	ObserveLoad(documents int, at time.Time)
	FetchFailed(resource string)
	ToolCalled(tool string, failed bool)
}

// Options configure a Service.
type Options struct {
	MaxSearchResults int
	Observer         Observer
}

// Snapshot is the read-only session data. A snapshot is never modified after
// it is published; loads replace it.
type Snapshot struct {
	Documents        []domain.Document
	DocTypes         []domain.DocType
	FacetDefinitions []domain.FacetDefinition
	LoadedAt         time.Time
}

// Collection returns the snapshot in the form the pipeline consumes.
func (s Snapshot) Collection() catalog.Collection {
	return catalog.Collection{
		Documents:        s.Documents,
		DocTypes:         s.DocTypes,
		FacetDefinitions: s.FacetDefinitions,
	}
}

// contentPurger is implemented by clients that memoize document content.
type contentPurger interface {
	Purge()
}

// Service owns the document snapshot and its search index.
type Service struct {
	client     backend.Client
	opts       Options
	buildIndex func([]domain.Document) (bleve.Index, error)
	snapshot Snapshot
	index    bleve.Index
	status   map[string]*ResourceStatus
	ready    bool
	mu       sync.RWMutex
}

// NewService creates a service reading from client. Call Load before use.
func NewService(client backend.Client, opts Options) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("backend client cannot be nil")
	}
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = DefaultMaxSearchResults
	}

	status := make(map[string]*ResourceStatus, 3)
	for _, name := range []string{ResourceDocuments, ResourceDocTypes, ResourceFilterData} {
		status[name] = &ResourceStatus{Name: name}
	}

	return &Service{
		client:     client,
		opts:       opts,
		buildIndex: BuildIndex,
		status:     status,
	}, nil
}

// Load fetches documents, doc types and filter data concurrently. A failed
// fetch keeps the previously loaded value of that resource; the others are
// still applied. Documents that cannot be indexed count as a failed documents
// fetch, so the list and the search index never disagree. The returned error
// joins all failures.
func (s *Service) Load(ctx context.Context) error {
	var (
		docs                    []domain.Document
		docTypes                []domain.DocType
		defs                    []domain.FacetDefinition
		docsErr, typesErr, dErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		docs, docsErr = s.client.FetchDocuments(ctx)
		return docsErr
	})
	g.Go(func() error {
		docTypes, typesErr = s.client.FetchDocTypes(ctx)
		return typesErr
	})
	g.Go(func() error {
		defs, dErr = s.client.FetchFacetDefinitions(ctx)
		return dErr
	})
	_ = g.Wait()

	var index bleve.Index
	if docsErr == nil {
		var err error
		if index, err = s.buildIndex(docs); err != nil {
			docsErr = fmt.Errorf("index documents: %w", err)
		}
	}

	now := time.Now()

	s.mu.Lock()
	next := s.snapshot
	if s.apply(ResourceDocuments, docsErr, now) {
		next.Documents = nonNil(docs)
	}
	if s.apply(ResourceDocTypes, typesErr, now) {
		next.DocTypes = nonNil(docTypes)
	}
	if s.apply(ResourceFilterData, dErr, now) {
		next.FacetDefinitions = nonNil(defs)
	}
	next.LoadedAt = now
	s.snapshot = next

	var stale bleve.Index
	if index != nil {
		stale = s.index
		s.index = index
		s.ready = true
	}
	s.mu.Unlock()

	if stale != nil {
		if err := stale.Close(); err != nil {
			slog.Warn("Failed to close previous index", "error", err)
		}
	}

	// New documents may come with new content.
	if docsErr == nil {
		if p, ok := s.client.(contentPurger); ok {
			p.Purge()
		}
	}

	if s.opts.Observer != nil {
		s.opts.Observer.ObserveLoad(len(next.Documents), now)
		for resource, err := range map[string]error{ResourceDocuments: docsErr, ResourceDocTypes: typesErr, ResourceFilterData: dErr} {
			if err != nil {
				s.opts.Observer.FetchFailed(resource)
			}
		}
	}

	slog.Info("Document snapshot loaded",
		"documents", len(next.Documents),
		"doc_types", len(next.DocTypes),
		"facet_definitions", len(next.FacetDefinitions),
	)

	return errors.Join(docsErr, typesErr, dErr)
}

// apply records the outcome of a fetch and reports whether its result should
// replace the current value. Callers hold s.mu.
func (s *Service) apply(resource string, err error, at time.Time) bool {
	st := s.status[resource]
	if err != nil {
		slog.Error("Failed to fetch backend resource, keeping previous data", "resource", resource, "error", err)
		st.LastError = err.Error()
		st.LastErrorAt = at
		return false
	}
	st.LastError = ""
	st.LastSuccess = at
	return true
}

// Run reloads the snapshot every interval until ctx is done. A zero interval
// disables refreshing and Run returns immediately.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			slog.Debug("Refreshing document snapshot")
			if err := s.Load(ctx); err != nil {
				slog.Warn("Snapshot refresh incomplete", "error", err)
			}
		}
	}
}

// IsReady returns true once documents have been loaded and indexed.
func (s *Service) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Snapshot returns the current snapshot.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// List runs the browse pipeline over the current snapshot.
func (s *Service) List(q catalog.ListQuery) catalog.Listing {
	return catalog.Build(s.Snapshot().Collection(), q)
}

// Facets returns the facets offered for a category segment.
func (s *Service) Facets(category string) []domain.FilterFacet {
	snap := s.Snapshot()
	res := catalog.Resolve(category, snap.DocTypes)
	base := catalog.BaseSet(snap.Documents, res.Types, category)
	return catalog.BuildFacets(base, snap.FacetDefinitions)
}

// DocTypeCount is a doc type with the number of loaded documents of that type.
type DocTypeCount struct {
	domain.DocType
	Segment string `json:"segment"`
	Count   int    `json:"count"`
}

// DocTypeCounts returns the doc types with per-type document counts and the
// total number of documents.
func (s *Service) DocTypeCounts() ([]DocTypeCount, int) {
	snap := s.Snapshot()

	byType := make(map[string]int, len(snap.DocTypes))
	for _, doc := range snap.Documents {
		byType[doc.Data.Type]++
	}

	counts := make([]DocTypeCount, len(snap.DocTypes))
	for i, dt := range snap.DocTypes {
		counts[i] = DocTypeCount{DocType: dt, Segment: catalog.Segment(dt.Name), Count: byType[dt.Name]}
	}
	return counts, len(snap.Documents)
}

// Lookup returns the snapshot copy of a document.
func (s *Service) Lookup(id string) (domain.Document, bool) {
	for _, doc := range s.Snapshot().Documents {
		if doc.ID == id {
			return doc, true
		}
	}
	return domain.Document{}, false
}

// Document fetches the current metadata of a document. When the backend
// cannot be reached the snapshot copy is returned instead; a backend
// ErrNotFound is returned as is.
func (s *Service) Document(ctx context.Context, id string) (domain.Document, error) {
	doc, err := s.client.FetchDocumentByID(ctx, id)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, backend.ErrNotFound) {
		return domain.Document{}, err
	}
	if cached, ok := s.Lookup(id); ok {
		slog.Warn("Failed to fetch document, using snapshot copy", "id", id, "error", err)
		return cached, nil
	}
	return domain.Document{}, err
}

// Content returns the decoded PDF content of a document.
func (s *Service) Content(ctx context.Context, id string) ([]byte, error) {
	return s.client.FetchDocumentContent(ctx, id)
}

// Download returns the document in the given format.
func (s *Service) Download(ctx context.Context, id, format string) (*domain.Blob, error) {
	return s.client.FetchDocumentDownload(ctx, id, format)
}

// SearchContent runs a backend full-text content search.
func (s *Service) SearchContent(ctx context.Context, term string) (json.RawMessage, error) {
	return s.client.SearchContent(ctx, term)
}

// Close releases the search index.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		if err := s.index.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
		s.index = nil
	}

	s.ready = false
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
