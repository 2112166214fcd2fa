package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"
)

const projectWeightTool = "project_weight"

// extractParams converts tool-call arguments into target by round-tripping
// them through JSON.
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}
	return nil
}

// textResult wraps data as JSON text in a tool-call result.
func textResult(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}

// callTool serves MCP tool calls so assistants can request projections.
// POST /api/mcp. Body: CallToolRequest with name "project_weight" and the
// same arguments as POST /api/projection. Error statuses match that route.
func (h *Handler) callTool(c *gin.Context) {
	var req protocol.CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name != projectWeightTool {
		apiError(c, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", req.Name))
		return
	}

	var raw rawProfile
	if err := extractParams(&req, &raw); err != nil {
		apiError(c, http.StatusBadRequest, "invalid tool arguments")
		return
	}

	res, err := h.runProjection(c, c.GetString("client_id"), raw)
	if err != nil {
		writeProjectionError(c, err)
		return
	}

	result, err := textResult(res)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to encode tool result")
		return
	}
	c.JSON(http.StatusOK, result)
}
