package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageProperties returns the schema properties shared by every tool that
// reads an image.
func imageProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file (PNG, JPEG, GIF, TIFF, BMP or TGA)",
		},
		"gray": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"luma", "lightness"},
			"description": "Grayscale conversion for color images. Default luma",
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional rectangle to process; (x1,y1) inclusive, (x2,y2) exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"named_region": map[string]interface{}{
			"type": "string",
			"enum": []string{
				"top-left", "top-right", "bottom-left", "bottom-right",
				"top-half", "bottom-half", "left-half", "right-half", "center",
			},
			"description": "Optional named area to process; ignored when region is set",
		},
		"format": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"png", "webp"},
			"description": "Output encoding. Default png",
		},
	}
}

// withProperties adds extra properties to the shared image properties.
func withProperties(extra map[string]interface{}) map[string]interface{} {
	props := imageProperties()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

func cleaningProperties() map[string]interface{} {
	return map[string]interface{}{
		"min_area": map[string]interface{}{
			"type":        "integer",
			"description": "Smallest 8-connected component kept, in pixels. Default 2",
			"minimum":     1,
		},
		"variant": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"closing_only", "component_only", "both"},
			"description": "Cleanup steps: 2x2 closing, small-component removal, or both",
		},
		"polarity": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"dark_on_light", "light_on_dark"},
			"description": "Which intensities are foreground. Default dark_on_light (ink on paper)",
		},
	}
}

func sharpenProperty(after string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Apply the 3x3 sharpening kernel after " + after,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and color depth. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_despeckle",
			Description: "Suppress speckle and impulse noise with the iterative Crimmins filter. Each pass nudges every pixel one gray level toward its 8 neighbors when they differ by at least the threshold. Returns the filtered grayscale image and a summary of changed pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"passes": map[string]interface{}{
						"type":        "integer",
						"description": "Number of filter passes. Default 5",
						"minimum":     1,
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum neighbor difference that triggers an adjustment. Default 1",
						"minimum":     1,
					},
					"smooth_first": map[string]interface{}{
						"type":        "boolean",
						"description": "Run the median/Gaussian/box smoothing chain before filtering",
					},
					"sharpen": sharpenProperty("filtering"),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_clean",
			Description: "Binarize the image and strip small dot artifacts with a 2x2 morphological closing and/or 8-connected component area filtering. Without a variant, all three variants are returned.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withProperties(cleaningProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_smooth",
			Description: "Apply the smoothing chain (median 3, Gaussian 3, box 3, median 5) to the grayscale image, optionally followed by sharpening.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"sharpen": sharpenProperty("smoothing"),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_noise_diff",
			Description: "Clean the image with one variant and return the cleaned image, the removed noise as an absolute difference image, and statistics of what was removed.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": withProperties(cleaningProperties()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_add_noise",
			Description: "Corrupt the grayscale image with reproducible synthetic noise: salt-and-pepper at a density and/or isolated single-pixel specks. Useful for testing the cleanup tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"density": map[string]interface{}{
						"type":        "number",
						"description": "Fraction of pixels replaced by black or white, 0-1",
						"minimum":     0,
						"maximum":     1,
					},
					"specks": map[string]interface{}{
						"type":        "integer",
						"description": "Number of isolated single-pixel specks in the foreground color",
						"minimum":     0,
					},
					"polarity": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"dark_on_light", "light_on_dark"},
						"description": "Speck color: black for dark_on_light, white for light_on_dark",
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed; equal seeds give equal noise",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_unload",
			Description: "Drop a previously loaded image from the cache so the file is read again on next use.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Path the image was loaded from",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return resultResponse(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
}
