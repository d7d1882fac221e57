package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// SearchRequest is a ranked search over document names with optional exact
// filters.
type SearchRequest struct {
	Query    string
	Type     string
	Category string
	Function string
	Limit    int
}

// SearchHit is one ranked document.
type SearchHit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Category    []string `json:"category"`
	Functions   []string `json:"functionsubfn"`
	ReleaseDate string   `json:"releasedate"`
	Score       float64  `json:"score"`
	Fragments   []string `json:"fragments,omitempty"`
}

// SearchResult holds the hits of a search and the total number of matches.
type SearchResult struct {
	Total uint64      `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// Search runs a ranked name search over the loaded documents.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	limit := req.Limit
	if limit <= 0 || limit > s.opts.MaxSearchResults {
		limit = s.opts.MaxSearchResults
	}

	searchReq := bleve.NewSearchRequest(buildQuery(req))
	searchReq.Size = limit
	searchReq.Fields = []string{
		domain.IndexFieldName, domain.IndexFieldType, domain.IndexFieldCategory,
		domain.IndexFieldFunctions, domain.IndexFieldReleaseDate,
	}
	searchReq.Highlight = bleve.NewHighlight()
	searchReq.Highlight.AddField(domain.IndexFieldName)

	// Held for the whole search so a concurrent load cannot close the index.
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready || s.index == nil {
		return nil, ErrNotReady
	}

	results, err := s.index.SearchInContext(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := &SearchResult{Total: results.Total, Hits: make([]SearchHit, 0, len(results.Hits))}
	for _, hit := range results.Hits {
		out.Hits = append(out.Hits, SearchHit{
			ID:          hit.ID,
			Name:        fieldString(hit.Fields[domain.IndexFieldName]),
			Type:        fieldString(hit.Fields[domain.IndexFieldType]),
			Category:    fieldStrings(hit.Fields[domain.IndexFieldCategory]),
			Functions:   fieldStrings(hit.Fields[domain.IndexFieldFunctions]),
			ReleaseDate: fieldString(hit.Fields[domain.IndexFieldReleaseDate]),
			Score:       hit.Score,
			Fragments:   hit.Fragments[domain.IndexFieldName],
		})
	}
	return out, nil
}

// buildQuery matches the name by analyzed terms, with a boosted prefix
// clause for single-word queries so partially typed names still rank.
func buildQuery(req SearchRequest) query.Query {
	nameQuery := bleve.NewMatchQuery(req.Query)
	nameQuery.SetField(domain.IndexFieldName)

	var searchQuery query.Query = nameQuery
	if term := strings.ToLower(strings.TrimSpace(req.Query)); !strings.ContainsAny(term, " \t") {
		prefixQuery := bleve.NewPrefixQuery(term)
		prefixQuery.SetField(domain.IndexFieldName)
		prefixQuery.SetBoost(2.0)
		searchQuery = bleve.NewDisjunctionQuery(nameQuery, prefixQuery)
	}

	must := []query.Query{searchQuery}
	for field, value := range map[string]string{
		domain.IndexFieldType:      req.Type,
		domain.IndexFieldCategory:  req.Category,
		domain.IndexFieldFunctions: req.Function,
	} {
		if value == "" {
			continue
		}
		termQuery := bleve.NewTermQuery(value)
		termQuery.SetField(field)
		must = append(must, termQuery)
	}

	if len(must) == 1 {
		return searchQuery
	}
	return bleve.NewConjunctionQuery(must...)
}

func fieldString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// fieldStrings normalizes a stored field: bleve returns a single value as a
// string and several as a slice.
func fieldStrings(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
