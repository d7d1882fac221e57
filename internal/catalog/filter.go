package catalog

import (
	"slices"
	"strings"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// BaseSet restricts documents by type only. With no types every document is
// kept. Forms are dropped for the policies-and-procedures alias even though
// the alias types already exclude them.
func BaseSet(documents []domain.Document, types []string, segment string) []domain.Document {
	base := make([]domain.Document, 0, len(documents))
	for _, doc := range documents {
		if len(types) > 0 && !slices.Contains(types, doc.Data.Type) {
			continue
		}
		if segment == PoliciesAndProceduresSegment && doc.Data.Type == FormType {
			continue
		}
		base = append(base, doc)
	}
	return base
}

// VisibleSet applies facet filters and the free-text search to the base set.
// Values within a facet are OR-ed; facets and search are AND-ed. Documents
// without values for an active facet never match it.
func VisibleSet(base []domain.Document, query domain.FilterQuery, search string) []domain.Document {
	visible := make([]domain.Document, 0, len(base))
	if query.IsEmpty() && search == "" {
		return append(visible, base...)
	}

	needle := strings.ToLower(search)
	for _, doc := range base {
		if !matchesFacet(doc, query, domain.FacetCategory) {
			continue
		}
		if !matchesFacet(doc, query, domain.FacetFunctions) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(doc.Data.Name), needle) {
			continue
		}
		visible = append(visible, doc)
	}
	return visible
}

func matchesFacet(doc domain.Document, query domain.FilterQuery, key domain.FacetKey) bool {
	if !query.Active(key) {
		return true
	}
	selected := query.Values(key)
	for _, value := range doc.Data.Values(key) {
		if slices.Contains(selected, value) {
			return true
		}
	}
	return false
}
