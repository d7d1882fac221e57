package library

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers every document tool with an MCP server.
func RegisterTools(server *mcp.Server, service *Service) {
	RegisterListTools(server, service)
	RegisterReadTool(server, service)
	RegisterSearchTool(server, service)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// observed reports each call of handler to the service observer.
func observed[In any](service *Service, tool string, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args In) (*mcp.CallToolResult, any, error) {
		result, out, err := handler(ctx, req, args)
		if obs := service.opts.Observer; obs != nil {
			obs.ToolCalled(tool, err != nil || (result != nil && result.IsError))
		}
		return result, out, err
	}
}
