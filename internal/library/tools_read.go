package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/FahmidKDAU/kyo-document-control/internal/backend"
	"github.com/FahmidKDAU/kyo-document-control/internal/catalog"
)

// ReadArgument defines document lookup parameters.
type ReadArgument struct {
	ID string `json:"id" jsonschema_description:"Document id as shown by list_documents or search_documents"`
}

// ReadHandler handles the get_document MCP tool.
type ReadHandler struct {
	service *Service
}

// NewReadHandler creates a new read handler.
func NewReadHandler(service *Service) *ReadHandler {
	return &ReadHandler{
		service: service,
	}
}

// Handle fetches a document and returns its metadata.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgument) (*mcp.CallToolResult, any, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return errorResult("ID cannot be empty"), nil, nil
	}

	doc, err := h.service.Document(ctx, id)
	if errors.Is(err, backend.ErrNotFound) {
		return errorResult(fmt.Sprintf("Document not found: %s", id)), nil, nil
	}
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to fetch document: %s", err)), nil, nil
	}

	download := catalog.DownloadFormat(doc)
	if download == "" {
		download = "original file"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", doc.Data.Name))
	sb.WriteString(fmt.Sprintf("- **ID**: %s\n", doc.ID))
	sb.WriteString(fmt.Sprintf("- **File**: %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("- **Type**: %s\n", doc.Data.Type))
	sb.WriteString(fmt.Sprintf("- **Release date**: %s\n", doc.Data.ReleaseDate))
	sb.WriteString(fmt.Sprintf("- **Category**: %s\n", strings.Join(doc.Data.Categories(), ", ")))
	sb.WriteString(fmt.Sprintf("- **Functions**: %s\n", strings.Join(doc.Data.Functions(), ", ")))
	sb.WriteString(fmt.Sprintf("- **Download**: %s\n", download))
	sb.WriteString(fmt.Sprintf("- **Link**: %s\n", catalog.DocumentPath(doc, catalog.NavigationState{})))

	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ReadHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_document",
		Description: "Get the metadata of a single document by id",
	}
}

// RegisterReadTool registers the get_document tool with an MCP server.
func RegisterReadTool(server *mcp.Server, service *Service) {
	handler := NewReadHandler(service)
	mcp.AddTool(server, handler.GetToolDefinition(), observed(service, handler.GetToolDefinition().Name, handler.Handle))
}
