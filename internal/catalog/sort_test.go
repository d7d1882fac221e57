package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

func TestSort_ReleaseDateToggle(t *testing.T) {
	docs := []domain.Document{expenseForm(), safetyPolicy()}

	state := Toggle(DefaultSort, domain.FieldReleaseDate)
	assert.Equal(t, domain.SortState{Field: domain.FieldReleaseDate, Direction: domain.SortAsc}, state)
	assert.Equal(t, []string{"1", "2"}, ids(Sort(docs, state)))

	state = Toggle(state, domain.FieldReleaseDate)
	assert.Equal(t, domain.SortDesc, state.Direction)
	assert.Equal(t, []string{"2", "1"}, ids(Sort(docs, state)))
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name    string
		current domain.SortState
		field   string
		want    domain.SortState
	}{
		{name: "asc flips to desc", current: domain.SortState{Field: "name", Direction: domain.SortAsc}, field: "name", want: domain.SortState{Field: "name", Direction: domain.SortDesc}},
		{name: "desc flips to asc", current: domain.SortState{Field: "name", Direction: domain.SortDesc}, field: "name", want: domain.SortState{Field: "name", Direction: domain.SortAsc}},
		{name: "other column starts asc", current: domain.SortState{Field: "name", Direction: domain.SortDesc}, field: "type", want: domain.SortState{Field: "type", Direction: domain.SortAsc}},
		{name: "from zero state", current: domain.SortState{}, field: "releasedate", want: domain.SortState{Field: "releasedate", Direction: domain.SortAsc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Toggle(tt.current, tt.field))
		})
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	docs := []domain.Document{
		{ID: "a", Data: domain.DocumentData{Name: "B", Type: "Form"}},
		{ID: "b", Data: domain.DocumentData{Name: "A", Type: "Policy"}},
		{ID: "c", Data: domain.DocumentData{Name: "C", Type: "Form"}},
		{ID: "d", Data: domain.DocumentData{Name: "D", Type: "Policy"}},
	}

	asc := Sort(docs, domain.SortState{Field: domain.FieldType, Direction: domain.SortAsc})
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(asc))

	desc := Sort(docs, domain.SortState{Field: domain.FieldType, Direction: domain.SortDesc})
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(desc))
}

func TestSort_ByName(t *testing.T) {
	docs := []domain.Document{
		{ID: "1", Data: domain.DocumentData{Name: "Zeta"}},
		{ID: "2", Data: domain.DocumentData{Name: "Alpha"}},
		{ID: "3", Data: domain.DocumentData{Name: "Mid"}},
	}

	assert.Equal(t, []string{"2", "3", "1"}, ids(Sort(docs, DefaultSort)))
	assert.Equal(t, []string{"1", "3", "2"}, ids(Sort(docs, domain.SortState{Field: domain.FieldName, Direction: domain.SortDesc})))
}

func TestSort_ReleaseDateIsChronological(t *testing.T) {
	docs := []domain.Document{
		{ID: "late", Data: domain.DocumentData{ReleaseDate: "2024-02-01T00:00:00Z"}},
		{ID: "early", Data: domain.DocumentData{ReleaseDate: "2023-12-31"}},
	}

	assert.Equal(t, []string{"early", "late"}, ids(Sort(docs, domain.SortState{Field: domain.FieldReleaseDate, Direction: domain.SortAsc})))
}

func TestSort_SecondaryFields(t *testing.T) {
	yes, no := true, false
	docs := []domain.Document{
		{ID: "1", Data: domain.DocumentData{Category: []string{"Safety"}, DownloadOriginalFileType: &yes}},
		{ID: "2", Data: domain.DocumentData{Category: []string{"Finance", "HR"}, DownloadOriginalFileType: &no}},
		{ID: "3", Data: domain.DocumentData{}},
	}

	assert.Equal(t, []string{"3", "2", "1"}, ids(Sort(docs, domain.SortState{Field: domain.FieldCategory, Direction: domain.SortAsc})))
	assert.Equal(t, []string{"2", "3", "1"}, ids(Sort(docs, domain.SortState{Field: domain.FieldDownload, Direction: domain.SortAsc})))
}

func TestSort_UnknownFieldKeepsOrder(t *testing.T) {
	docs := []domain.Document{expenseForm(), safetyPolicy()}

	assert.Equal(t, []string{"2", "1"}, ids(Sort(docs, domain.SortState{Field: "owner", Direction: domain.SortDesc})))
	assert.False(t, IsSortField("owner"))
	assert.True(t, IsSortField(domain.FieldReleaseDate))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	docs := []domain.Document{expenseForm(), safetyPolicy()}

	_ = Sort(docs, DefaultSort)

	assert.Equal(t, []string{"2", "1"}, ids(docs))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "10-Jan-2023", DisplayDate("2023-01-10"))
	assert.Equal(t, "01-Feb-2024", DisplayDate("2024-02-01T09:30:00Z"))
	assert.Equal(t, "soon", DisplayDate("soon"))
	assert.Equal(t, "", DisplayDate(""))
}
