package catalog

import "github.com/FahmidKDAU/kyo-document-control/internal/domain"

func safetyPolicy() domain.Document {
	return domain.Document{ID: "1", Data: domain.DocumentData{
		Name:          "Safety Policy",
		Type:          "Policy",
		Category:      []string{"HR"},
		FunctionSubFn: []string{"Ops"},
		ReleaseDate:   "2023-01-10",
	}}
}

func expenseForm() domain.Document {
	return domain.Document{ID: "2", Data: domain.DocumentData{
		Name:          "Expense Form",
		Type:          "Form",
		Category:      []string{"Finance"},
		FunctionSubFn: []string{"Ops"},
		ReleaseDate:   "2023-05-01",
	}}
}

func scenarioDocs() []domain.Document {
	return []domain.Document{safetyPolicy(), expenseForm()}
}

func testDocTypes() []domain.DocType {
	return []domain.DocType{
		{ID: "t1", Name: "Policy"},
		{ID: "t2", Name: "Procedure"},
		{ID: "t3", Name: "Form"},
		{ID: "t4", Name: "Work Instruction"},
	}
}

func testDefinitions() []domain.FacetDefinition {
	return []domain.FacetDefinition{
		{Name: "category", Entries: []domain.FacetEntry{{ID: "c1", Data: "HR"}}},
		{Name: "functionsubfn", Entries: []domain.FacetEntry{{ID: "f1", Data: "Ops"}}},
	}
}

func ids(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}
