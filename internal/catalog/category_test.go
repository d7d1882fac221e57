package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name           string
		segment        string
		wantTypes      []string
		wantUnresolved bool
	}{
		{name: "empty segment", segment: "", wantTypes: nil},
		{name: "multi-type alias", segment: "policies-and-procedures", wantTypes: []string{"Policy", "Procedure"}},
		{name: "single word", segment: "form", wantTypes: []string{"Form"}},
		{name: "hyphenated", segment: "work-instruction", wantTypes: []string{"Work Instruction"}},
		{name: "case insensitive", segment: "WORK-instruction", wantTypes: []string{"Work Instruction"}},
		{name: "unknown", segment: "memo", wantTypes: nil, wantUnresolved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.segment, testDocTypes())
			assert.Equal(t, tt.wantTypes, res.Types)
			assert.Equal(t, tt.wantUnresolved, res.Unresolved)
			assert.Equal(t, tt.segment, res.Segment)
			assert.Equal(t, len(tt.wantTypes) > 0, res.Restricted())
		})
	}
}

func TestResolve_NoDocTypes(t *testing.T) {
	res := Resolve("form", nil)
	assert.Nil(t, res.Types)
	assert.True(t, res.Unresolved)

	// The alias does not depend on fetched doc types.
	res = Resolve(PoliciesAndProceduresSegment, nil)
	assert.Equal(t, []string{"Policy", "Procedure"}, res.Types)
}

func TestResolve_AliasTypesAreNotShared(t *testing.T) {
	res := Resolve(PoliciesAndProceduresSegment, nil)
	res.Types[0] = "Changed"

	assert.Equal(t, []string{"Policy", "Procedure"}, Resolve(PoliciesAndProceduresSegment, nil).Types)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Work Instruction", TitleCase("work-instruction"))
	assert.Equal(t, "Form", TitleCase("form"))
	assert.Equal(t, "A  B", TitleCase("a--b"))
	assert.Equal(t, "ÉCole", TitleCase("éCole"))
}

func TestDisplayNameAndDescription(t *testing.T) {
	assert.Equal(t, "All Documents", DisplayName(""))
	assert.Equal(t, "Policies & Procedures", DisplayName(PoliciesAndProceduresSegment))
	assert.Equal(t, "Work Instruction", DisplayName("work-instruction"))

	assert.Contains(t, Description(""), "all available documents")
	assert.Contains(t, Description(FormsSegment), "Forms and templates")
	assert.Equal(t, "Documents categorized under Work Instruction for easy access and reference.", Description("work-instruction"))
}

func TestSegment(t *testing.T) {
	assert.Equal(t, "work-instruction", Segment("Work Instruction"))
	assert.Equal(t, "policy", Segment("Policy"))
	assert.Equal(t, "", Segment(""))
}
