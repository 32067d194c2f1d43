package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/lqip"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke ("lqip_base64" or "lqip_palette").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.With(zap.String("request_id", uuid.NewString()), zap.String("tool", params.Name))
	log.Debug("tool call started")

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		log.Info("tool call failed", zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.Debug("tool call finished")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "lqip_base64":
		return s.handleBase64(ctx, args)
	case "lqip_palette":
		return s.handlePalette(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

var errPathRequired = errors.New("path is required")

type pathArgs struct {
	Path string `json:"path"`
}

func parsePathArgs(args json.RawMessage) (string, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", err
	}
	if a.Path == "" {
		return "", errPathRequired
	}
	return a.Path, nil
}

// Base64Result is the payload of a successful lqip_base64 call.
type Base64Result struct {
	DataURI  string `json:"data_uri"`
	MimeType string `json:"mime_type"`
}

func (s *Server) handleBase64(ctx context.Context, args json.RawMessage) (interface{}, error) {
	path, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	uri, err := s.gen.Base64(ctx, path)
	if err != nil {
		return nil, err
	}
	mime, _ := lqip.MimeType(lqip.Extension(path))
	return &Base64Result{DataURI: uri, MimeType: mime}, nil
}

// PaletteResult is the payload of a successful lqip_palette call.
type PaletteResult struct {
	Palette []string `json:"palette"`
}

func (s *Server) handlePalette(ctx context.Context, args json.RawMessage) (interface{}, error) {
	path, err := parsePathArgs(args)
	if err != nil {
		return nil, err
	}
	palette, err := s.gen.Palette(ctx, path)
	if err != nil {
		return nil, err
	}
	return &PaletteResult{Palette: palette}, nil
}
