package catalog

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// SortableColumns are the table columns with a sort control, in display order.
var SortableColumns = []string{domain.FieldName, domain.FieldType, domain.FieldReleaseDate}

// DefaultSort is the initial table sort.
var DefaultSort = domain.SortState{Field: domain.FieldName, Direction: domain.SortAsc}

var releaseDateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// Toggle returns the sort state after the user clicks the sort control of
// field: the active ascending column flips to descending, everything else
// sorts ascending on field.
func Toggle(current domain.SortState, field string) domain.SortState {
	if current.Field == field && current.Direction == domain.SortAsc {
		return domain.SortState{Field: field, Direction: domain.SortDesc}
	}
	return domain.SortState{Field: field, Direction: domain.SortAsc}
}

// Sort returns a stably sorted copy of docs. Equal keys keep their input
// order in both directions. Unknown fields leave the order unchanged.
func Sort(docs []domain.Document, state domain.SortState) []domain.Document {
	sorted := slices.Clone(docs)
	compare := comparator(state.Field)
	if compare == nil {
		return sorted
	}
	if state.Direction == domain.SortDesc {
		slices.SortStableFunc(sorted, func(a, b domain.Document) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted
}

func comparator(field string) func(a, b domain.Document) int {
	switch field {
	case domain.FieldName:
		return func(a, b domain.Document) int { return strings.Compare(a.Data.Name, b.Data.Name) }
	case domain.FieldType:
		return func(a, b domain.Document) int { return strings.Compare(a.Data.Type, b.Data.Type) }
	case domain.FieldReleaseDate:
		return func(a, b domain.Document) int { return compareDates(a.Data.ReleaseDate, b.Data.ReleaseDate) }
	case domain.FieldCategory, domain.FieldFunctions:
		key := domain.FacetKey(field)
		return func(a, b domain.Document) int {
			return strings.Compare(strings.Join(a.Data.Values(key), ", "), strings.Join(b.Data.Values(key), ", "))
		}
	case domain.FieldDownload:
		return func(a, b domain.Document) int {
			return cmp.Compare(boolRank(a.Data.DownloadsOriginal()), boolRank(b.Data.DownloadsOriginal()))
		}
	default:
		return nil
	}
}

// compareDates orders chronologically when both values parse as dates and
// falls back to text order otherwise.
func compareDates(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if okA && okB {
		return ta.Compare(tb)
	}
	return strings.Compare(a, b)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IsSortField reports whether field can be sorted on.
func IsSortField(field string) bool {
	return comparator(field) != nil
}

// DisplayDate formats a release date for display, e.g. "10-Jan-2023".
// Values that do not parse are returned unchanged.
func DisplayDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format("02-Jan-2006")
}
