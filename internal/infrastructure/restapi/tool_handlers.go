package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"octav_mcp/internal/app/port"
	"octav_mcp/internal/app/tools"
)

// ToolListResponse is the body of GET /api/v1/tools.
type ToolListResponse struct {
	Tools []tools.Descriptor `json:"tools"`
}

// ToolHandler serves the tool registry over HTTP.
type ToolHandler struct {
	registry *tools.Registry
	api      port.OctavAPI
	logger   *zap.Logger
}

// NewToolHandler creates a new instance of ToolHandler.
func NewToolHandler(registry *tools.Registry, api port.OctavAPI, logger *zap.Logger) *ToolHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToolHandler{
		registry: registry,
		api:      api,
		logger:   logger.Named("ToolHandler"),
	}
}

// ListToolsHandler returns every descriptor in registration order.
func (h *ToolHandler) ListToolsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ToolListResponse{Tools: h.registry.List()})
}

// CallToolHandler runs one tool with the request body as its arguments.
// Tool failures are results, not HTTP errors, so the status is always 200.
func (h *ToolHandler) CallToolHandler(c *gin.Context) {
	name := c.Param("name")

	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("Failed to read request body", zap.String("tool", name), zap.Error(err))
		c.JSON(http.StatusOK, tools.ErrorResult(err))
		return
	}
	args, err := tools.ParseArguments(body)
	if err != nil {
		c.JSON(http.StatusOK, tools.ErrorResult(err))
		return
	}

	c.JSON(http.StatusOK, h.registry.Call(c.Request.Context(), name, args, h.api))
}

// HealthHandler reports liveness.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
