package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgument defines search parameters.
type SearchArgument struct {
	Query    string `json:"query" jsonschema_description:"Words or a prefix of the document name"`
	Type     string `json:"type,omitempty" jsonschema_description:"Filter by document type (e.g., Policy, Form)"`
	Category string `json:"category,omitempty" jsonschema_description:"Filter by category value"`
	Function string `json:"function,omitempty" jsonschema_description:"Filter by function value"`
}

// SearchHandler handles the search_documents MCP tool.
type SearchHandler struct {
	service *Service
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *Service) *SearchHandler {
	return &SearchHandler{
		service: service,
	}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	results, err := h.service.Search(ctx, SearchRequest{
		Query:    args.Query,
		Type:     args.Type,
		Category: args.Category,
		Function: args.Function,
	})
	if errors.Is(err, ErrNotReady) {
		return errorResult("Search is not available. The document list has not been loaded yet. Please try again later."), nil, nil
	}
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return h.formatResults(results, args.Query), nil, nil
}

// formatResults formats search results for MCP response.
func (h *SearchHandler) formatResults(results *SearchResult, queryStr string) *mcp.CallToolResult {
	if results.Total == 0 {
		return textResult(fmt.Sprintf("No documents found for query: %s", queryStr))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d documents for '%s':\n\n", results.Total, queryStr))

	for i, hit := range results.Hits {
		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, hit.Name))
		sb.WriteString(fmt.Sprintf("**ID**: %s | **Type**: %s | **Released**: %s\n", hit.ID, hit.Type, hit.ReleaseDate))
		if len(hit.Category) > 0 {
			sb.WriteString(fmt.Sprintf("**Category**: %s\n", strings.Join(hit.Category, ", ")))
		}
		if len(hit.Functions) > 0 {
			sb.WriteString(fmt.Sprintf("**Functions**: %s\n", strings.Join(hit.Functions, ", ")))
		}
		sb.WriteString(fmt.Sprintf("**Score**: %.4f\n\n", hit.Score))
	}

	if results.Total > uint64(len(results.Hits)) {
		sb.WriteString(fmt.Sprintf("... and %d more results\n", results.Total-uint64(len(results.Hits))))
	}

	return textResult(sb.String())
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_documents",
		Description: "Ranked search over document names with optional type, category and function filters",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, service *Service) {
	handler := NewSearchHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), observed(service, handler.GetToolDefinition().Name, handler.Handle))
}
