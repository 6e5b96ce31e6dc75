package server

import (
	"encoding/json"
	"fmt"
	"log"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_clean").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": mustMarshalJSON(result)},
		},
	})
}

// executeTool dispatches tool execution to the Toolbox.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Fills omitted parameters from the server defaults
//  3. Loads the image from cache and converts it to a raster
//  4. Runs the denoising operation and encodes the result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		var a ImageArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.Load(a.Path)

	case "image_despeckle":
		var a DespeckleArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.Despeckle(a)

	case "image_clean":
		var a CleanArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.Clean(a)

	case "image_smooth":
		var a SmoothArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.Smooth(a)

	case "image_noise_diff":
		var a CleanArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.NoiseDiff(a)

	case "image_add_noise":
		var a NoiseArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.AddNoise(a)

	case "image_unload":
		var a ImageArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return s.tools.Unload(a.Path)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// unmarshalArgs decodes tool arguments. Missing arguments decode as the zero
// value, which every tool rejects for lack of a path.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
