package domain

// FacetKey identifies a filter dimension on DocumentData.
type FacetKey string

// Facet keys, matching the backend filter metadata names.
const (
	FacetCategory  FacetKey = "category"
	FacetFunctions FacetKey = "functionsubfn"
)

// FacetEntry is one raw value definition from the backend filter metadata.
type FacetEntry struct {
	ID                    string `json:"id" yaml:"id"`
	Data                  string `json:"data" yaml:"data"`
	DefaultRepresentation string `json:"defaultrepresentation" yaml:"defaultrepresentation"`
	Label                 string `json:"label" yaml:"label"`
	Order                 int    `json:"order" yaml:"order"`
}

// FacetDefinition is the raw filter metadata for one facet key.
type FacetDefinition struct {
	Name    string       `json:"name" yaml:"name"`
	Entries []FacetEntry `json:"entries" yaml:"entries"`
}

// FilterFacet is a facet offered to the user: the values present in the
// current base set, sorted and de-duplicated.
type FilterFacet struct {
	Name    string   `json:"name"`
	Data    []string `json:"data"`
	KeyName FacetKey `json:"keyName"`
}

// FilterQuery maps a facet key to the selected values. A missing key and an
// empty selection both mean "no restriction" for that facet.
type FilterQuery map[FacetKey][]string

// Values returns the selection for key, or nil when unset.
func (q FilterQuery) Values(key FacetKey) []string {
	if q == nil {
		return nil
	}
	return q[key]
}

// Active reports whether key restricts the result.
func (q FilterQuery) Active(key FacetKey) bool {
	return len(q.Values(key)) > 0
}

// IsEmpty reports whether no facet restricts the result.
func (q FilterQuery) IsEmpty() bool {
	for _, values := range q {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// SortDirection is the table sort direction.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable DocumentData fields.
const (
	FieldName        = "name"
	FieldType        = "type"
	FieldReleaseDate = "releasedate"
	FieldCategory    = "category"
	FieldFunctions   = "functionsubfn"
	FieldDownload    = "downloadoriginalfiletype"
)

// SortState is the transient table sort selection.
type SortState struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}
