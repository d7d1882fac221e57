package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/FahmidKDAU/kyo-document-control/internal/catalog"
	"github.com/FahmidKDAU/kyo-document-control/internal/domain"
)

// ListArgument defines document list parameters.
type ListArgument struct {
	Category   string   `json:"category,omitempty" jsonschema_description:"Category path segment, e.g. policies-and-procedures, form, work-instruction"`
	Search     string   `json:"search,omitempty" jsonschema_description:"Case-insensitive substring of the document name"`
	Categories []string `json:"categories,omitempty" jsonschema_description:"Keep documents in any of these categories"`
	Functions  []string `json:"functions,omitempty" jsonschema_description:"Keep documents in any of these functions"`
	Sort       string   `json:"sort,omitempty" jsonschema_description:"Sort field: name, type or releasedate (default name)"`
	Order      string   `json:"order,omitempty" jsonschema_description:"Sort order: asc or desc (default asc)"`
}

// Query converts the arguments to a list query.
func (a ListArgument) Query() (catalog.ListQuery, error) {
	q := catalog.ListQuery{
		Category: strings.TrimSpace(a.Category),
		Search:   a.Search,
		Sort:     catalog.DefaultSort,
	}

	if len(a.Categories) > 0 || len(a.Functions) > 0 {
		q.Filters = domain.FilterQuery{}
		if len(a.Categories) > 0 {
			q.Filters[domain.FacetCategory] = a.Categories
		}
		if len(a.Functions) > 0 {
			q.Filters[domain.FacetFunctions] = a.Functions
		}
	}

	if a.Sort != "" {
		if !catalog.IsSortField(a.Sort) {
			return q, fmt.Errorf("unknown sort field %q", a.Sort)
		}
		q.Sort.Field = a.Sort
	}
	switch domain.SortDirection(a.Order) {
	case "", domain.SortAsc:
		q.Sort.Direction = domain.SortAsc
	case domain.SortDesc:
		q.Sort.Direction = domain.SortDesc
	default:
		return q, fmt.Errorf("unknown sort order %q", a.Order)
	}

	return q, nil
}

// ListHandler handles the list_documents MCP tool.
type ListHandler struct {
	service *Service
}

// NewListHandler creates a new list handler.
func NewListHandler(service *Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// Handle runs the browse pipeline and returns the visible documents.
func (h *ListHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListArgument) (*mcp.CallToolResult, any, error) {
	q, err := args.Query()
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	listing := h.service.List(q)
	return textResult(formatListing(listing)), nil, nil
}

func formatListing(listing catalog.Listing) string {
	var sb strings.Builder

	if listing.Category.Unresolved {
		sb.WriteString(fmt.Sprintf("Unknown category %q, showing all documents.\n\n", listing.Category.Segment))
	}
	sb.WriteString(fmt.Sprintf("## %s (%d of %d documents)\n\n", listing.Category.Title, listing.Counts.Visible, listing.Counts.Base))
	if listing.Category.Restricted() {
		sb.WriteString(fmt.Sprintf("Types: %s\n\n", strings.Join(listing.Category.Types, ", ")))
	}

	if len(listing.Documents) == 0 {
		sb.WriteString("No documents match.\n")
	} else {
		sb.WriteString("| Name | Type | Release date | Category | Functions | Download | ID |\n")
		sb.WriteString("|---|---|---|---|---|---|---|\n")
		for _, row := range listing.Documents {
			download := row.DownloadFormat
			if download == "" {
				download = "original"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
				cell(row.Name), cell(row.Type), cell(row.ReleaseDate),
				cell(strings.Join(row.Category, ", ")), cell(strings.Join(row.Functions, ", ")),
				download, cell(row.ID)))
		}
	}

	if len(listing.Facets) > 0 {
		sb.WriteString("\nFilters available:\n")
		sb.WriteString(formatFacets(listing.Facets))
	}
	return sb.String()
}

func formatFacets(facets []domain.FilterFacet) string {
	var sb strings.Builder
	for _, facet := range facets {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", facet.Name, facet.KeyName, strings.Join(facet.Data, ", ")))
	}
	return sb.String()
}

// cell escapes a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// GetToolDefinition returns the MCP tool definition.
func (h *ListHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_documents",
		Description: "List published documents in a category, narrowed by name search and category/function filters, sorted by name, type or release date",
	}
}

// FacetsArgument defines facet listing parameters.
type FacetsArgument struct {
	Category string `json:"category,omitempty" jsonschema_description:"Category path segment; empty for all documents"`
}

// FacetsHandler handles the list_facets MCP tool.
type FacetsHandler struct {
	service *Service
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(service *Service) *FacetsHandler {
	return &FacetsHandler{
		service: service,
	}
}

// Handle returns the filter values available in a category.
func (h *FacetsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FacetsArgument) (*mcp.CallToolResult, any, error) {
	category := strings.TrimSpace(args.Category)
	facets := h.service.Facets(category)
	if len(facets) == 0 {
		return textResult(fmt.Sprintf("No filters available for %s.", catalog.DisplayName(category))), nil, nil
	}
	return textResult(fmt.Sprintf("Filters for %s:\n%s", catalog.DisplayName(category), formatFacets(facets))), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *FacetsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_facets",
		Description: "List the category and function values that can be used to filter documents in a category",
	}
}

// RegisterListTools registers list_documents and list_facets with an MCP server.
func RegisterListTools(server *mcp.Server, service *Service) {
	list := NewListHandler(service)
	mcp.AddTool(server, list.GetToolDefinition(), observed(service, list.GetToolDefinition().Name, list.Handle))

	facets := NewFacetsHandler(service)
	mcp.AddTool(server, facets.GetToolDefinition(), observed(service, facets.GetToolDefinition().Name, facets.Handle))
}
