package server

import "github.com/ironsheep/blur-gate/internal/blur"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional region to score; (x1,y1) inclusive, (x2,y2) exclusive. Default is the whole image",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has transparency. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Blur scoring
		{
			Name:        "blur_measure",
			Description: "Measure how blurry an image is. Returns the edge count, mean edge width and the calibrated score avg_edge_width_perc (higher is blurrier; 100 means too few edges to judge).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "blur_check",
			Description: "Decide whether an image is too blurry: the calibrated score rounded to two decimals is compared against a threshold.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Images scoring above this are blurry. Default 1.0",
						"default":     blur.DefaultThreshold,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "blur_measure_batch",
			Description: "Measure blur for several image files concurrently. Files that fail are reported individually.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the image files",
					},
					"concurrency": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum files scored at once. Default 4",
						"default":     4,
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "blur_edges",
			Description: "Return the horizontal edge map used for blur scoring as a base64-encoded PNG, with the number of edges found in it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Transforms
		{
			Name:        "image_pipeline",
			Description: "Run an ordered list of transform stages on an image and return the result as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"stages": map[string]interface{}{
						"type":        "array",
						"description": "Stages applied in order. Each has a kind plus that kind's parameters",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"kind": map[string]interface{}{
									"type": "string",
									"enum": []string{
										"identity", "luminance", "grayscale", "grayscale_avg",
										"threshold", "invert", "brightness_contrast", "apply_lut",
										"horizontal_flip", "vertical_flip",
										"convolve", "convolve_float", "separable_convolve", "gaussian_blur",
										"laplace", "sobel", "distort_sine", "erode", "blend",
									},
								},
								"diameter":   map[string]interface{}{"type": "number"},
								"kernel":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
								"vertical":   map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
								"horizontal": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
								"opaque":     map[string]interface{}{"type": "boolean"},
								"level":      map[string]interface{}{"type": "number"},
								"high":       map[string]interface{}{"type": "number"},
								"low":        map[string]interface{}{"type": "number"},
								"brightness": map[string]interface{}{"type": "number"},
								"contrast":   map[string]interface{}{"type": "number"},
								"amount":     map[string]interface{}{"type": "number"},
								"yamount":    map[string]interface{}{"type": "number"},
								"mode": map[string]interface{}{
									"type": "string",
									"enum": []string{"darken", "lighten", "multiply", "screen", "add", "subtract", "difference"},
								},
								"layer_path": map[string]interface{}{
									"type":        "string",
									"description": "Image placed above the running buffer by a blend stage",
								},
							},
							"required": []string{"kind"},
						},
					},
				},
				"required": []string{"path", "stages"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
