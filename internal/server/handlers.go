package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/asciify/internal/export"
	"github.com/ironsheep/asciify/internal/imaging"
	"github.com/ironsheep/asciify/internal/palette"
	"github.com/ironsheep/asciify/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "ascii_render").
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
	case "ascii_palettes":
		return s.handlePalettes()
	case "ascii_render":
		return s.handleRender(args)
	case "ascii_export":
		return s.handleExport(args)
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

// === Image Handlers ===

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

// === Rendering Handlers ===

// PaletteInfo describes one glyph palette.
type PaletteInfo struct {
	Name     string `json:"name"`
	Glyphs   string `json:"glyphs"`
	Count    int    `json:"count"`
	HasBlank bool   `json:"has_blank"`
}

func (s *Server) handlePalettes() (interface{}, error) {
	kinds := palette.Kinds()
	infos := make([]PaletteInfo, len(kinds))
	for i, k := range kinds {
		g := k.Glyphs()
		infos[i] = PaletteInfo{
			Name:     k.String(),
			Glyphs:   g.String(),
			Count:    g.Len(),
			HasBlank: g.HasBlank(),
		}
	}
	return map[string]interface{}{"palettes": infos}, nil
}

type renderArgs struct {
	Path         string `json:"path"`
	Palette      string `json:"palette"`
	Filter       string `json:"filter"`
	Region       string `json:"region"`
	Color        bool   `json:"color"`
	ColorProfile string `json:"color_profile"`
	MaxWidth     int    `json:"max_width"`
	MaxHeight    int    `json:"max_height"`
}

// RenderResult contains rendered art and how it was produced.
type RenderResult struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DisplayWidth int    `json:"display_width"`
	Palette      string `json:"palette"`
	Filter       string `json:"filter"`
	Colored      bool   `json:"colored"`
	Art          string `json:"art"`
}

// ExportResult describes a saved render.
type ExportResult struct {
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// renderImage runs one render from tool arguments. Missing sizes default to
// 100x100 and a missing palette to "point".
func (s *Server) renderImage(a renderArgs) (*RenderResult, error) {
	if a.MaxWidth == 0 {
		a.MaxWidth = 100
	}
	if a.MaxHeight == 0 {
		a.MaxHeight = 100
	}
	if a.Palette == "" {
		a.Palette = palette.Point.String()
	}

	kind, err := palette.Parse(a.Palette)
	if err != nil {
		return nil, err
	}
	filter, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	profile, err := render.ParseProfile(a.ColorProfile)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	r := render.New()
	r.SetPalette(kind)
	r.SetImage(img)
	if a.Color {
		r.EnableColor()
	}
	if err := r.Crop(a.Region); err != nil {
		return nil, err
	}

	art, err := r.Render(a.MaxWidth, a.MaxHeight, filter)
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Width:        art.Width(),
		Height:       art.Height(),
		DisplayWidth: art.DisplayWidth(),
		Palette:      kind.String(),
		Filter:       filter.String(),
		Colored:      art.Colored(),
		Art:          art.Format(profile),
	}, nil
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.renderImage(a)
}

type exportArgs struct {
	renderArgs
	Output string `json:"output"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		a.Output = export.DefaultPath
	}

	res, err := s.renderImage(a.renderArgs)
	if err != nil {
		return nil, err
	}
	if err := export.SaveTo(a.Output, res.Art); err != nil {
		return nil, err
	}

	return &ExportResult{
		Output: a.Output,
		Bytes:  len(res.Art),
		Width:  res.Width,
		Height: res.Height,
	}, nil
}
