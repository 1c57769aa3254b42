package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/blur-gate/internal/blur"
	"github.com/ironsheep/blur-gate/internal/imaging"
	"github.com/ironsheep/blur-gate/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "blur_measure").
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
	case "image_load":
		return s.handleImageLoad(args)

	// Blur scoring
	case "blur_measure":
		return s.handleBlurMeasure(args)
	case "blur_check":
		return s.handleBlurCheck(args)
	case "blur_measure_batch":
		return s.handleBlurMeasureBatch(args)
	case "blur_edges":
		return s.handleBlurEdges(args)

	// Transforms
	case "image_pipeline":
		return s.handleImagePipeline(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Blur Handlers ===

// regionArg is an optional sub-rectangle; (x1,y1) inclusive, (x2,y2) exclusive.
type regionArg struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type blurMeasureArgs struct {
	Path   string     `json:"path"`
	Region *regionArg `json:"region"`
}

// loadRegion loads path through the cache and crops it when region is set.
func (s *Server) loadRegion(path string, region *regionArg) (*imaging.Buffer, error) {
	buf, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return buf, nil
	}
	return imaging.Crop(buf, region.X1, region.Y1, region.X2, region.Y2)
}

func (s *Server) handleBlurMeasure(args json.RawMessage) (interface{}, error) {
	var a blurMeasureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	return blur.Measure(buf, s.cfg)
}

type blurCheckArgs struct {
	Path      string     `json:"path"`
	Region    *regionArg `json:"region"`
	Threshold *float64   `json:"threshold"`
}

func (s *Server) handleBlurCheck(args json.RawMessage) (interface{}, error) {
	var a blurCheckArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	threshold := blur.DefaultThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	buf, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	score, err := blur.Measure(buf, s.cfg)
	if err != nil {
		return nil, err
	}
	return blur.Check(score, threshold), nil
}

type blurBatchArgs struct {
	Paths       []string `json:"paths"`
	Concurrency int      `json:"concurrency"`
}

func (s *Server) handleBlurMeasureBatch(args json.RawMessage) (interface{}, error) {
	var a blurBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}
	if a.Concurrency <= 0 {
		a.Concurrency = 4
	}
	results, err := blur.MeasureFiles(context.Background(), a.Paths, s.cfg, a.Concurrency)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"results": results,
	}, nil
}

type blurEdgesArgs struct {
	Path   string     `json:"path"`
	Region *regionArg `json:"region"`
}

// BlurEdgesResult holds the rendered edge map and the spans it produced.
type BlurEdgesResult struct {
	*imaging.EncodedImage
	PreBlurred bool `json:"pre_blurred"`
	NumEdges   int  `json:"num_edges"`
}

func (s *Server) handleBlurEdges(args json.RawMessage) (interface{}, error) {
	var a blurEdgesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.loadRegion(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	edges, err := blur.DetectEdges(buf, s.cfg)
	if err != nil {
		return nil, err
	}
	rows, err := blur.ReducedPixels(edges)
	if err != nil {
		return nil, err
	}
	raw, err := blur.DetectBlur(rows, s.cfg)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNG(edges)
	if err != nil {
		return nil, err
	}
	return &BlurEdgesResult{
		EncodedImage: enc,
		PreBlurred:   buf.Width >= s.cfg.PreBlurWidthThreshold,
		NumEdges:     raw.NumEdges,
	}, nil
}

// === Transform Handlers ===

type imagePipelineArgs struct {
	Path   string            `json:"path"`
	Stages []transform.Stage `json:"stages"`
}

func (s *Server) handleImagePipeline(args json.RawMessage) (interface{}, error) {
	var a imagePipelineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	for i := range a.Stages {
		st := &a.Stages[i]
		if st.Kind != transform.KindBlend || st.LayerPath == "" {
			continue
		}
		layer, err := s.cache.Load(st.LayerPath)
		if err != nil {
			return nil, fmt.Errorf("stage %d layer: %w", i, err)
		}
		st.Layer = layer
	}

	resp, err := s.runPipeline(transform.Request{ID: a.Path, Source: src, Stages: a.Stages})
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return imaging.EncodePNG(resp.Buffer)
}
