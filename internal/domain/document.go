package domain

// Document is a published repository document as returned by the backend API.
// Documents are read-only once fetched.
type Document struct {
	// ID is the backend identifier used for content, metadata and download lookups.
	ID string `json:"id" yaml:"id"`

	// Name is the stored file name. The display title lives in Data.Name.
	Name string `json:"name" yaml:"name"`

	Data DocumentData `json:"data" yaml:"data"`
}

// DocumentData carries the document metadata used for filtering and display.
type DocumentData struct {
	Name string `json:"name" yaml:"name"`

	// Type is the canonical document type label, e.g. "Policy" or "Work Instruction".
	Type string `json:"type" yaml:"type"`

	Category      []string `json:"category" yaml:"category"`
	FunctionSubFn []string `json:"functionsubfn" yaml:"functionsubfn"`

	// ReleaseDate is an ISO date string, e.g. "2023-01-10".
	ReleaseDate string `json:"releasedate" yaml:"releasedate"`

	// DownloadOriginalFileType is set when the original file (not a PDF
	// rendition) should be downloaded.
	DownloadOriginalFileType *bool `json:"downloadoriginalfiletype,omitempty" yaml:"downloadoriginalfiletype,omitempty"`
}

// Categories returns the category values, never nil.
func (d DocumentData) Categories() []string {
	if d.Category == nil {
		return []string{}
	}
	return d.Category
}

// Functions returns the function/sub-function values, never nil.
func (d DocumentData) Functions() []string {
	if d.FunctionSubFn == nil {
		return []string{}
	}
	return d.FunctionSubFn
}

// Values returns the values of the given facet key, never nil.
func (d DocumentData) Values(key FacetKey) []string {
	switch key {
	case FacetCategory:
		return d.Categories()
	case FacetFunctions:
		return d.Functions()
	default:
		return []string{}
	}
}

// DownloadsOriginal reports whether the original file type should be downloaded.
func (d DocumentData) DownloadsOriginal() bool {
	return d.DownloadOriginalFileType != nil && *d.DownloadOriginalFileType
}

// DocType is a canonical document type label.
type DocType struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Blob is a downloaded binary payload.
type Blob struct {
	ContentType string
	// Filename is the name suggested by the backend, if any.
	Filename string
	Data     []byte
}
