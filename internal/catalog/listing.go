package catalog

import (
	"net/url"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// Sort query parameter names used by list links.
const (
	ParamSort  = "sort"
	ParamOrder = "order"
)

// DownloadFormatPDF requests the PDF rendition of a document.
const DownloadFormatPDF = "PDF"

// Collection is the read-only session data every view works from.
type Collection struct {
	Documents        []domain.Document        `json:"documents"`
	DocTypes         []domain.DocType         `json:"docTypes"`
	FacetDefinitions []domain.FacetDefinition `json:"facetDefinitions"`
}

// ListQuery holds everything that determines a document list.
type ListQuery struct {
	Category string
	Search   string
	Filters  domain.FilterQuery
	Sort     domain.SortState
}

// Header describes the category a list is scoped to.
type Header struct {
	Resolution
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Counts reports list sizes at each pipeline stage.
type Counts struct {
	Total   int `json:"total"`
	Base    int `json:"base"`
	Visible int `json:"visible"`
}

// SortLink is the target of a column's sort control.
type SortLink struct {
	Field     string               `json:"field"`
	Active    bool                 `json:"active"`
	Direction domain.SortDirection `json:"direction"`
	Href      string               `json:"href"`
}

// Row is one rendered document row.
type Row struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Category       []string `json:"category"`
	Functions      []string `json:"functionsubfn"`
	ReleaseDate    string   `json:"releasedate"`
	Released       string   `json:"released"`
	DownloadFormat string   `json:"downloadFormat"`
	Href           string   `json:"href"`
}

// Listing is the result of running the full pipeline.
type Listing struct {
	Category  Header               `json:"category"`
	Facets    []domain.FilterFacet `json:"facets"`
	Search    string               `json:"search,omitempty"`
	Filters   domain.FilterQuery   `json:"filters,omitempty"`
	Sort      domain.SortState     `json:"sort"`
	SortLinks []SortLink           `json:"sortLinks"`
	Counts    Counts               `json:"counts"`
	Documents []Row                `json:"documents"`
}

// Build runs resolve, base set, facets, visible set, and sort for q.
func Build(c Collection, q ListQuery) Listing {
	if q.Sort.Field == "" {
		q.Sort = DefaultSort
	}
	if q.Sort.Direction == "" {
		q.Sort.Direction = domain.SortAsc
	}
	if q.Filters.IsEmpty() {
		q.Filters = nil
	}

	resolution := Resolve(q.Category, c.DocTypes)
	base := BaseSet(c.Documents, resolution.Types, q.Category)
	visible := Sort(VisibleSet(base, q.Filters, q.Search), q.Sort)

	state := NavigationState{Search: q.Search, Filters: q.Filters, FromCategory: q.Category}
	rows := make([]Row, len(visible))
	for i, doc := range visible {
		rows[i] = Row{
			ID:             doc.ID,
			Name:           doc.Data.Name,
			Type:           doc.Data.Type,
			Category:       doc.Data.Categories(),
			Functions:      doc.Data.Functions(),
			ReleaseDate:    doc.Data.ReleaseDate,
			Released:       DisplayDate(doc.Data.ReleaseDate),
			DownloadFormat: DownloadFormat(doc),
			Href:           DocumentPath(doc, state),
		}
	}

	return Listing{
		Category: Header{
			Resolution:  resolution,
			Title:       DisplayName(q.Category),
			Description: Description(q.Category),
		},
		Facets:    BuildFacets(base, c.FacetDefinitions),
		Search:    q.Search,
		Filters:   q.Filters,
		Sort:      q.Sort,
		SortLinks: sortLinks(state, q.Sort),
		Counts:    Counts{Total: len(c.Documents), Base: len(base), Visible: len(visible)},
		Documents: rows,
	}
}

func sortLinks(state NavigationState, current domain.SortState) []SortLink {
	links := make([]SortLink, len(SortableColumns))
	for i, field := range SortableColumns {
		next := Toggle(current, field)
		direction := domain.SortAsc
		if current.Field == field {
			direction = current.Direction
		}
		links[i] = SortLink{
			Field:     field,
			Active:    current.Field == field,
			Direction: direction,
			Href:      SortPath(state, next),
		}
	}
	return links
}

// SortPath is the list link that applies sort while keeping state.
func SortPath(state NavigationState, sort domain.SortState) string {
	path := ListPath(state)
	sep := "?"
	if state.ListQuery() != "" {
		sep = "&"
	}
	return path + sep + ParamSort + "=" + url.QueryEscape(sort.Field) + "&" + ParamOrder + "=" + string(sort.Direction)
}

// DownloadFormat returns the download type requested for doc: the PDF
// rendition unless the original file type is flagged, which is requested
// with an empty format.
func DownloadFormat(doc domain.Document) string {
	if doc.Data.DownloadsOriginal() {
		return ""
	}
	return DownloadFormatPDF
}
