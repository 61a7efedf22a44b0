package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// paramProperties are the optional overrides of the split configuration
// accepted by the splitting tools.
func paramProperties() map[string]interface{} {
	return map[string]interface{}{
		"border_reduction": map[string]interface{}{
			"type":        "integer",
			"description": "Margin in pixels kept around each object. Default from configuration (50)",
		},
		"scan_border_reduction": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels removed from every scan edge before detection. Default from configuration (50)",
		},
		"minimum_area": map[string]interface{}{
			"type":        "integer",
			"description": "Bounding box area an object must exceed, in square pixels. Default from configuration (22179)",
		},
		"blur_radius": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur radius applied before thresholding",
		},
		"kernel_size": map[string]interface{}{
			"type":        "integer",
			"description": "Side of the square morphology element",
		},
		"close": map[string]interface{}{
			"type":        "boolean",
			"description": "Apply a morphological closing after the opening",
		},
	}
}

func withParams(props map[string]interface{}) map[string]interface{} {
	for k, v := range paramProperties() {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "scan_info",
			Description: "Load a scan and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the scan (TIFF, PNG or JPEG)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "extract_regions",
			Description: "Find every coin or bar on one flatbed scan and write each as its own PNG. Returns the crop regions and paths in detection order, optionally with base64 previews.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withParams(map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the scan",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the crops. Default: <results_dir>/cropped",
					},
					"preview_scale": map[string]interface{}{
						"type":        "number",
						"description": "When > 0, include a PNG preview of each crop scaled by this factor (e.g. 0.25)",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "split_scans",
			Description: "Split an obverse and a reverse scan of the same sheet, pair the crops by position and merge each pair into one image. Returns the merged paths, the pairs and the number of unmatched crops.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withParams(map[string]interface{}{
					"obverse": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the obverse scan",
					},
					"reverse": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the reverse scan",
					},
					"results_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory receiving cropped/ and merged/. Default from configuration",
					},
				}),
				"required": []string{"obverse", "reverse"},
			},
		},
		{
			Name:        "build_inventory",
			Description: "Parse merged images named '<name> <value> <ozt|g>.png' under <dir>/merged into an inventory. Optionally writes <dir name>.csv and proposes weights for unnamed images using OCR.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Results directory containing merged/",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the CSV file. Required when write is true",
					},
					"write": map[string]interface{}{
						"type":        "boolean",
						"description": "Write the CSV file. Default false",
						"default":     false,
					},
					"suggest": map[string]interface{}{
						"type":        "boolean",
						"description": "Read stamped text on images with invalid names and propose a weight. Default false",
						"default":     false,
					},
				},
				"required": []string{"dir"},
			},
		},
		{
			Name:        "read_stamp",
			Description: "Run OCR on a crop and return the recognised words with confidence and bounding boxes, plus the first stamped weight found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Drop words below this confidence (0.0 to 1.0). Default 0",
					},
				},
				"required": []string{"path"},
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
