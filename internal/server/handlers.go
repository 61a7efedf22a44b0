package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/scan-splitter/internal/imaging"
	"github.com/ironsheep/scan-splitter/internal/inventory"
	"github.com/ironsheep/scan-splitter/internal/ocr"
	"github.com/ironsheep/scan-splitter/internal/splitter"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "split_scans").
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
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Error().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "scan_info":
		return s.handleScanInfo(args)
	case "extract_regions":
		return s.handleExtractRegions(args)
	case "split_scans":
		return s.handleSplitScans(args)
	case "build_inventory":
		return s.handleBuildInventory(args)
	case "read_stamp":
		return s.handleReadStamp(args)
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

// unmarshalArgs decodes tool arguments, treating missing arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// paramArgs overrides individual split parameters.
type paramArgs struct {
	BorderReduction     *int     `json:"border_reduction"`
	ScanBorderReduction *int     `json:"scan_border_reduction"`
	MinimumArea         *int     `json:"minimum_area"`
	BlurRadius          *float64 `json:"blur_radius"`
	KernelSize          *int     `json:"kernel_size"`
	Close               *bool    `json:"close"`
}

func (a paramArgs) apply(p splitter.Params) splitter.Params {
	if a.BorderReduction != nil {
		p.BorderReduction = *a.BorderReduction
	}
	if a.ScanBorderReduction != nil {
		p.ScanBorderReduction = *a.ScanBorderReduction
	}
	if a.MinimumArea != nil {
		p.MinimumArea = *a.MinimumArea
	}
	if a.BlurRadius != nil {
		p.BlurRadius = *a.BlurRadius
	}
	if a.KernelSize != nil {
		p.KernelSize = *a.KernelSize
	}
	if a.Close != nil {
		p.Close = *a.Close
	}
	return p
}

// === Scan Handlers ===

type scanInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleScanInfo(args json.RawMessage) (interface{}, error) {
	var a scanInfoArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type extractRegionsArgs struct {
	paramArgs
	Path         string  `json:"path"`
	OutputDir    string  `json:"output_dir"`
	PreviewScale float64 `json:"preview_scale"`
}

type extractedCrop struct {
	splitter.Crop
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

type extractRegionsResult struct {
	Source string             `json:"source"`
	Info   *imaging.ImageInfo `json:"info"`
	Count  int                `json:"count"`
	Crops  []extractedCrop    `json:"crops"`
	Params splitter.Params    `json:"params"`
}

func (s *Server) handleExtractRegions(args json.RawMessage) (interface{}, error) {
	var a extractRegionsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	defer s.cache.Evict(a.Path)

	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}

	params := a.apply(s.cfg.Split)
	e, err := s.cfg.NewExtractor(&params, s.cache, s.logger)
	if err != nil {
		return nil, err
	}
	if a.OutputDir != "" {
		e.CropDir = a.OutputDir
	}

	split, err := e.Extract(a.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, c := range split.Crops {
			s.cache.Evict(c.Path)
		}
	}()

	result := &extractRegionsResult{
		Source: split.Source,
		Info:   info,
		Count:  split.Len(),
		Crops:  make([]extractedCrop, 0, split.Len()),
		Params: params,
	}
	for _, c := range split.Crops {
		out := extractedCrop{Crop: c}
		if a.PreviewScale > 0 {
			img, err := s.cache.Load(c.Path)
			if err != nil {
				return nil, err
			}
			if out.Preview, err = imaging.Preview(img, a.PreviewScale); err != nil {
				return nil, err
			}
		}
		result.Crops = append(result.Crops, out)
	}
	return result, nil
}

type splitScansArgs struct {
	paramArgs
	Obverse    string `json:"obverse"`
	Reverse    string `json:"reverse"`
	ResultsDir string `json:"results_dir"`
}

func (s *Server) handleSplitScans(args json.RawMessage) (interface{}, error) {
	var a splitScansArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Obverse == "" || a.Reverse == "" {
		return nil, errors.New("obverse and reverse are required")
	}

	cfg := *s.cfg
	if a.ResultsDir != "" {
		cfg.Paths.ResultsDir = a.ResultsDir
	}
	params := a.apply(cfg.Split)

	p, err := cfg.NewPipeline(&params, s.cache, s.logger)
	if err != nil {
		return nil, err
	}
	return p.Run(a.Obverse, a.Reverse)
}

// === Inventory Handlers ===

type buildInventoryArgs struct {
	Dir       string `json:"dir"`
	OutputDir string `json:"output_dir"`
	Write     bool   `json:"write"`
	Suggest   bool   `json:"suggest"`
}

type buildInventoryResult struct {
	*inventory.Report
	TotalOzt    float64                `json:"total_ozt"`
	CSVPath     string                 `json:"csv_path,omitempty"`
	Suggestions []inventory.Suggestion `json:"suggestions,omitempty"`
}

func (s *Server) handleBuildInventory(args json.RawMessage) (interface{}, error) {
	var a buildInventoryArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		return nil, errors.New("dir is required")
	}

	report, err := inventory.Build(a.Dir)
	if err != nil {
		return nil, err
	}
	result := &buildInventoryResult{Report: report, TotalOzt: report.TotalOzt()}

	if a.Write {
		if a.OutputDir == "" {
			return nil, errors.New("output_dir is required when write is true")
		}
		if result.CSVPath, err = inventory.Save(report, a.Dir, a.OutputDir); err != nil {
			return nil, err
		}
	}

	if a.Suggest && len(report.Invalid) > 0 {
		if result.Suggestions, err = inventory.Suggest(s.ocr, report.Invalid); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// === OCR Handlers ===

type readStampArgs struct {
	Path          string  `json:"path"`
	MinConfidence float64 `json:"min_confidence"`
}

type readStampResult struct {
	*ocr.Result
	Weight *inventory.Weight `json:"weight,omitempty"`
}

func (s *Server) handleReadStamp(args json.RawMessage) (interface{}, error) {
	var a readStampArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	reader := *s.ocr
	reader.MinConfidence = a.MinConfidence
	res, err := reader.Recognize(a.Path)
	if err != nil {
		return nil, err
	}

	out := &readStampResult{Result: res}
	if w, ok := inventory.FindWeight(res.FullText); ok {
		out.Weight = &w
	}
	return out, nil
}
