package catalog

import (
	"net/url"
	"strings"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// Query parameter names carried across the list -> view -> back round trip.
const (
	ParamSearch          = "search"
	ParamFilterCategory  = "filterCategory"
	ParamFilterFunctions = "filterFunctions"
	ParamFromCategory    = "fromCategory"
)

// valueSeparator joins multi-value facet selections. Facet values must not
// contain it; it is not escaped.
const valueSeparator = ","

// facetParams maps facet keys to their query parameter, in encoding order.
var facetParams = []struct {
	key   domain.FacetKey
	param string
}{
	{domain.FacetCategory, ParamFilterCategory},
	{domain.FacetFunctions, ParamFilterFunctions},
}

// NavigationState is the filter and search state serialized into the URL.
type NavigationState struct {
	Search       string             `json:"search,omitempty"`
	Filters      domain.FilterQuery `json:"filters,omitempty"`
	FromCategory string             `json:"fromCategory,omitempty"`
}

// EncodeNavigation serializes the list state for a document link.
func EncodeNavigation(query domain.FilterQuery, search, categorySegment string) string {
	return NavigationState{Search: search, Filters: query, FromCategory: categorySegment}.Encode()
}

// Encode returns the query string (without "?") for the state. Empty fields
// are omitted.
func (s NavigationState) Encode() string {
	parts := s.listParams()
	if s.FromCategory != "" {
		parts = append(parts, ParamFromCategory+"="+url.QueryEscape(s.FromCategory))
	}
	return strings.Join(parts, "&")
}

// ListQuery returns the query string that restores search and filters on the
// list page. The origin category is part of the path there, not the query.
func (s NavigationState) ListQuery() string {
	return strings.Join(s.listParams(), "&")
}

func (s NavigationState) listParams() []string {
	var parts []string
	if s.Search != "" {
		parts = append(parts, ParamSearch+"="+url.QueryEscape(s.Search))
	}
	for _, fp := range facetParams {
		values := s.Filters.Values(fp.key)
		if len(values) == 0 {
			continue
		}
		escaped := make([]string, len(values))
		for i, v := range values {
			escaped[i] = url.QueryEscape(v)
		}
		parts = append(parts, fp.param+"="+strings.Join(escaped, valueSeparator))
	}
	return parts
}

// DecodeNavigation restores list state from query parameters. Absent or empty
// parameters leave the corresponding state unset.
func DecodeNavigation(values url.Values) NavigationState {
	state := NavigationState{
		Search:       values.Get(ParamSearch),
		FromCategory: values.Get(ParamFromCategory),
	}
	for _, fp := range facetParams {
		selected := splitValues(values.Get(fp.param))
		if len(selected) == 0 {
			continue
		}
		if state.Filters == nil {
			state.Filters = domain.FilterQuery{}
		}
		state.Filters[fp.key] = selected
	}
	return state
}

// ParseNavigation decodes a raw query string. Malformed input yields the
// state that could be recovered from it.
func ParseNavigation(rawQuery string) NavigationState {
	values, _ := url.ParseQuery(rawQuery)
	return DecodeNavigation(values)
}

func splitValues(joined string) []string {
	if joined == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(joined, valueSeparator) {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// DocumentPath is the link opened when a row is clicked. It carries the list
// state so the view can lead back to the same search.
func DocumentPath(doc domain.Document, state NavigationState) string {
	path := "/documents/" + url.PathEscape(doc.Data.Type) + "/" + url.PathEscape(doc.ID)
	if q := state.Encode(); q != "" {
		path += "?" + q
	}
	return path
}

// ListPath is the "back to search" link for a document view.
func ListPath(state NavigationState) string {
	path := "/documents"
	if state.FromCategory != "" {
		path += "/" + url.PathEscape(state.FromCategory)
	}
	if q := state.ListQuery(); q != "" {
		path += "?" + q
	}
	return path
}
