// Package catalog implements the document browsing pipeline: category
// resolution, facet derivation, filtering and search, navigation state
// encoding, and table sorting. Every function is pure and never fails.
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

const (
	// PoliciesAndProceduresSegment is the multi-type category alias.
	PoliciesAndProceduresSegment = "policies-and-procedures"

	// FormsSegment is the category segment for forms.
	FormsSegment = "form"

	// FormType is excluded from the policies-and-procedures base set.
	FormType = "Form"
)

// policiesAndProceduresTypes are the canonical types behind the multi-type alias.
var policiesAndProceduresTypes = []string{"Policy", "Procedure"}

// Resolution is the outcome of mapping a URL category segment to document types.
type Resolution struct {
	// Segment is the category segment as it appeared in the URL.
	Segment string `json:"segment"`

	// Types is nil when no type restriction applies.
	Types []string `json:"types"`

	// Unresolved is true when a segment was given but matched no document type.
	// The result is then unrestricted, never empty.
	Unresolved bool `json:"unresolved"`
}

// Restricted reports whether the resolution limits documents by type.
func (r Resolution) Restricted() bool {
	return len(r.Types) > 0
}

// Resolve maps a category segment to canonical document type labels.
func Resolve(segment string, docTypes []domain.DocType) Resolution {
	if segment == "" {
		return Resolution{}
	}

	if segment == PoliciesAndProceduresSegment {
		return Resolution{
			Segment: segment,
			Types:   append([]string(nil), policiesAndProceduresTypes...),
		}
	}

	formatted := TitleCase(segment)
	for _, docType := range docTypes {
		if strings.EqualFold(docType.Name, formatted) {
			return Resolution{Segment: segment, Types: []string{docType.Name}}
		}
	}

	return Resolution{Segment: segment, Unresolved: true}
}

// TitleCase upper-cases the first letter of each hyphen-delimited word and
// joins the words with spaces: "work-instruction" -> "Work Instruction".
// The remaining letters are left as they are.
func TitleCase(segment string) string {
	words := strings.Split(segment, "-")
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}

// DisplayName returns the page title for a category segment.
func DisplayName(segment string) string {
	switch segment {
	case "":
		return "All Documents"
	case PoliciesAndProceduresSegment:
		return "Policies & Procedures"
	default:
		return TitleCase(segment)
	}
}

// Description returns the page description for a category segment.
func Description(segment string) string {
	switch segment {
	case "":
		return "Browse and search through all available documents in the repository."
	case PoliciesAndProceduresSegment:
		return "Official policies and standard operating procedures that govern organizational operations."
	case FormsSegment:
		return "Forms and templates for various business processes and workflows."
	default:
		return "Documents categorized under " + DisplayName(segment) + " for easy access and reference."
	}
}

// Segment returns the URL category segment for a document type,
// e.g. "Work Instruction" -> "work-instruction".
func Segment(docType string) string {
	return strings.ToLower(strings.Join(strings.Fields(docType), "-"))
}
