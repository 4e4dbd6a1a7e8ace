package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"octav_mcp/internal/app/port"
	"octav_mcp/internal/app/tools"
)

// ServerName is the implementation name announced to hosts.
const ServerName = "octav-api-mcp"

// Server exposes the tool registry over the Model Context Protocol.
type Server struct {
	server   *mcp.Server
	registry *tools.Registry
	api      port.OctavAPI
	logger   *zap.Logger
}

// NewServer creates a new instance of Server with every registry tool added.
func NewServer(registry *tools.Registry, api port.OctavAPI, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		server:   mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil),
		registry: registry,
		api:      api,
		logger:   logger.Named("MCPServer"),
	}
	for _, d := range registry.List() {
		s.server.AddTool(toolFor(d), s.handler(d.Name))
	}
	s.server.AddReceivingMiddleware(s.unknownToolMiddleware)
	s.logger.Info("MCP tools registered", zap.Int("count", len(registry.List())))
	return s
}

// Run serves on stdin/stdout until ctx is done or the host disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Octav API MCP server running on stdio")
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

// Connect serves a single session on transport.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, transport, nil)
}

func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw []byte
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := tools.ParseArguments(raw)
		if err != nil {
			s.logger.Warn("Rejected tool arguments", zap.String("tool", name), zap.Error(err))
			return toCallToolResult(tools.ErrorResult(err)), nil
		}
		return toCallToolResult(s.registry.Call(ctx, name, args, s.api)), nil
	}
}

// unknownToolMiddleware routes tools/call for unregistered names through the
// registry, so the host gets an isError result instead of a JSON-RPC error.
func (s *Server) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != "tools/call" {
			return next(ctx, method, req)
		}
		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil || s.registry.Has(call.Params.Name) {
			return next(ctx, method, req)
		}
		return s.handler(call.Params.Name)(ctx, call)
	}
}

func toolFor(d tools.Descriptor) *mcp.Tool {
	destructive := d.Annotations.Destructive
	openWorld := d.Annotations.OpenWorld
	return &mcp.Tool{
		Name:        d.Name,
		Title:       d.Title,
		Description: d.Description,
		InputSchema: d.InputSchema,
		Annotations: &mcp.ToolAnnotations{
			Title:           d.Title,
			ReadOnlyHint:    d.Annotations.ReadOnly,
			DestructiveHint: &destructive,
			OpenWorldHint:   &openWorld,
		},
	}
}

func toCallToolResult(res tools.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(res.Content))
	for _, c := range res.Content {
		content = append(content, &mcp.TextContent{Text: c.Text})
	}
	return &mcp.CallToolResult{Content: content, IsError: res.IsError}
}
