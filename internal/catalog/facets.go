package catalog

import (
	"slices"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// FacetLabel pairs a facet key with its display label.
type FacetLabel struct {
	Key   domain.FacetKey
	Label string
}

// FacetOrder lists the offered facets in display order.
var FacetOrder = []FacetLabel{
	{Key: domain.FacetFunctions, Label: "Functions"},
	{Key: domain.FacetCategory, Label: "Categories"},
}

// BuildFacets derives the facets to offer for a base set. Only facets with a
// fetched definition and at least one value present in base are returned.
func BuildFacets(base []domain.Document, definitions []domain.FacetDefinition) []domain.FilterFacet {
	facets := []domain.FilterFacet{}
	if len(base) == 0 || len(definitions) == 0 {
		return facets
	}

	for _, f := range FacetOrder {
		if !hasDefinition(definitions, f.Key) {
			continue
		}
		values := facetValues(base, f.Key)
		if len(values) == 0 {
			continue
		}
		facets = append(facets, domain.FilterFacet{
			Name:    f.Label,
			Data:    values,
			KeyName: f.Key,
		})
	}
	return facets
}

func hasDefinition(definitions []domain.FacetDefinition, key domain.FacetKey) bool {
	return slices.ContainsFunc(definitions, func(def domain.FacetDefinition) bool {
		return def.Name == string(key)
	})
}

// facetValues returns the sorted distinct values of key across docs.
func facetValues(docs []domain.Document, key domain.FacetKey) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, doc := range docs {
		for _, value := range doc.Data.Values(key) {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}
	slices.Sort(values)
	return values
}
