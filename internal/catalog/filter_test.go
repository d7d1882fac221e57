package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

func TestBaseSet_PoliciesAndProceduresExcludesForms(t *testing.T) {
	res := Resolve(PoliciesAndProceduresSegment, testDocTypes())
	base := BaseSet(scenarioDocs(), res.Types, PoliciesAndProceduresSegment)

	assert.Equal(t, []string{"1"}, ids(base))
}

func TestBaseSet_FormExclusionAppliesWithoutTypes(t *testing.T) {
	base := BaseSet(scenarioDocs(), nil, PoliciesAndProceduresSegment)
	assert.Equal(t, []string{"1"}, ids(base))
}

func TestBaseSet(t *testing.T) {
	docs := append(scenarioDocs(), domain.Document{ID: "3", Data: domain.DocumentData{Name: "Lathe setup", Type: "Work Instruction"}})

	tests := []struct {
		name    string
		types   []string
		segment string
		want    []string
	}{
		{name: "no restriction", types: nil, segment: "", want: []string{"1", "2", "3"}},
		{name: "unresolved segment is unrestricted", types: nil, segment: "memo", want: []string{"1", "2", "3"}},
		{name: "single type", types: []string{"Form"}, segment: "form", want: []string{"2"}},
		{name: "multiple types", types: []string{"Form", "Work Instruction"}, segment: "", want: []string{"2", "3"}},
		{name: "no match", types: []string{"Procedure"}, segment: "procedure", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(BaseSet(docs, tt.types, tt.segment)))
		})
	}
}

func TestBaseSet_DoesNotMutateInput(t *testing.T) {
	docs := scenarioDocs()
	_ = BaseSet(docs, []string{"Form"}, "form")
	assert.Equal(t, []string{"1", "2"}, ids(docs))
}

func TestVisibleSet_IdentityWithoutRestrictions(t *testing.T) {
	base := scenarioDocs()
	for _, q := range []domain.FilterQuery{nil, {}, {domain.FacetCategory: {}, domain.FacetFunctions: nil}} {
		assert.Equal(t, base, VisibleSet(base, q, ""))
	}
}

func TestVisibleSet_SearchIsCaseInsensitive(t *testing.T) {
	for _, search := range []string{"safety", "SAFETY", "SaFeTy", "fety pol"} {
		assert.Equal(t, []string{"1"}, ids(VisibleSet(scenarioDocs(), nil, search)), search)
	}
}

func TestVisibleSet_SearchIsSubstringNotTokenized(t *testing.T) {
	assert.Empty(t, VisibleSet(scenarioDocs(), nil, "policy safety"))
}

func TestVisibleSet_CategoryFacet(t *testing.T) {
	visible := VisibleSet(scenarioDocs(), domain.FilterQuery{domain.FacetCategory: {"Finance"}}, "")
	assert.Equal(t, []string{"2"}, ids(visible))
}

func TestVisibleSet_OrWithinFacetAndAcrossFacets(t *testing.T) {
	docs := append(scenarioDocs(), domain.Document{ID: "3", Data: domain.DocumentData{
		Name: "Payroll Procedure", Type: "Procedure", Category: []string{"Finance"}, FunctionSubFn: []string{"Payroll"},
	}})

	tests := []struct {
		name   string
		query  domain.FilterQuery
		search string
		want   []string
	}{
		{name: "or within category", query: domain.FilterQuery{domain.FacetCategory: {"HR", "Finance"}}, want: []string{"1", "2", "3"}},
		{name: "and across facets", query: domain.FilterQuery{domain.FacetCategory: {"Finance"}, domain.FacetFunctions: {"Ops"}}, want: []string{"2"}},
		{name: "and with search", query: domain.FilterQuery{domain.FacetCategory: {"Finance"}}, search: "payroll", want: []string{"3"}},
		{name: "no intersection", query: domain.FilterQuery{domain.FacetFunctions: {"Legal"}}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(VisibleSet(docs, tt.query, tt.search)))
		})
	}
}

func TestVisibleSet_MissingArraysNeverMatchActiveFacet(t *testing.T) {
	bare := domain.Document{ID: "9", Data: domain.DocumentData{Name: "Bare", Type: "Form"}}
	docs := []domain.Document{bare}

	assert.Empty(t, VisibleSet(docs, domain.FilterQuery{domain.FacetCategory: {"HR"}}, ""))
	assert.Empty(t, VisibleSet(docs, domain.FilterQuery{domain.FacetFunctions: {"Ops"}}, ""))
	assert.Equal(t, []string{"9"}, ids(VisibleSet(docs, nil, "bar")))
}
