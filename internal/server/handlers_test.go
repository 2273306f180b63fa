package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp(t.TempDir(), "handler-test-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleToolsCall returned nil")
	}
	return resp
}

// decodeContent unmarshals the text content of a successful tool response.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode content %q: %v", text, err)
	}
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	var info struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Format string `json:"format"`
	}
	decodeContent(t, callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}), &info)

	if info.Width != 100 || info.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %s, want png", info.Format)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New("test")

	for _, tool := range []string{"image_load", "ascii_render", "ascii_export"} {
		t.Run(tool, func(t *testing.T) {
			resp := callTool(t, s, tool, map[string]interface{}{"path": "/nonexistent/image.png"})
			if resp.Error == nil {
				t.Fatal("expected an error for a missing file")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("code: got %d, want -32000", resp.Error.Code)
			}
			if data, _ := resp.Error.Data.(string); !strings.Contains(data, "/nonexistent/image.png") {
				t.Errorf("error data should name the path: %v", resp.Error.Data)
			}
		})
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New("test")

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602", resp.Error)
	}
}

func TestHandleToolsCall_Palettes(t *testing.T) {
	s := New("test")

	var out struct {
		Palettes []PaletteInfo `json:"palettes"`
	}
	decodeContent(t, callTool(t, s, "ascii_palettes", map[string]interface{}{}), &out)

	want := map[string]struct {
		count int
		blank bool
	}{
		"point":    {2, true},
		"block":    {2, true},
		"shade":    {29, false},
		"japanese": {92, false},
		"korean":   {40, false},
		"chinese":  {16, false},
	}
	if len(out.Palettes) != len(want) {
		t.Fatalf("palettes: got %d, want %d", len(out.Palettes), len(want))
	}
	for _, p := range out.Palettes {
		w, ok := want[p.Name]
		if !ok {
			t.Errorf("unexpected palette %s", p.Name)
			continue
		}
		if p.Count != w.count || p.HasBlank != w.blank {
			t.Errorf("%s: got count=%d blank=%v, want count=%d blank=%v", p.Name, p.Count, p.HasBlank, w.count, w.blank)
		}
		if len([]rune(p.Glyphs)) != p.Count {
			t.Errorf("%s: glyph string has %d runes, count %d", p.Name, len([]rune(p.Glyphs)), p.Count)
		}
	}
}

func TestHandleToolsCall_Render(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 200, 100, color.RGBA{0, 0, 0, 255})

	var res RenderResult
	decodeContent(t, callTool(t, s, "ascii_render", map[string]interface{}{"path": imgPath}), &res)

	if res.Width != 100 || res.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", res.Width, res.Height)
	}
	if res.Palette != "point" || res.Filter != "none" || res.Colored {
		t.Errorf("defaults: got palette=%s filter=%s colored=%v", res.Palette, res.Filter, res.Colored)
	}
	wantRow := strings.Repeat(".", 100) + "\n"
	if res.Art != strings.Repeat(wantRow, 50) {
		t.Errorf("art should be 50 rows of dots, got %q...", res.Art[:20])
	}
}

func TestHandleToolsCall_RenderOptions(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 40, 40, color.RGBA{200, 10, 10, 255})

	tests := []struct {
		name        string
		args        map[string]interface{}
		wantW       int
		wantH       int
		wantEscapes bool
	}{
		{
			"color truecolor",
			map[string]interface{}{"path": imgPath, "color": true, "max_width": 10, "max_height": 10},
			10, 10, true,
		},
		{
			"color ascii profile",
			map[string]interface{}{"path": imgPath, "color": true, "color_profile": "ascii", "max_width": 10, "max_height": 10},
			10, 10, false,
		},
		{
			"edge filter with region",
			map[string]interface{}{"path": imgPath, "filter": "edge", "region": "top-half", "palette": "shade", "max_width": 20, "max_height": 20},
			20, 10, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res RenderResult
			decodeContent(t, callTool(t, s, "ascii_render", tt.args), &res)

			if res.Width != tt.wantW || res.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", res.Width, res.Height, tt.wantW, tt.wantH)
			}
			if got := strings.Contains(res.Art, "\x1b["); got != tt.wantEscapes {
				t.Errorf("escapes: got %v, want %v", got, tt.wantEscapes)
			}
		})
	}
}

func TestHandleToolsCall_RenderInvalidOptions(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"unknown palette", map[string]interface{}{"path": imgPath, "palette": "greek"}},
		{"unknown filter", map[string]interface{}{"path": imgPath, "filter": "blur"}},
		{"unknown region", map[string]interface{}{"path": imgPath, "region": "middle"}},
		{"unknown profile", map[string]interface{}{"path": imgPath, "color_profile": "cmyk"}},
		{"negative width", map[string]interface{}{"path": imgPath, "max_width": -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "ascii_render", tt.args)
			if resp.Error == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestHandleToolsCall_RenderLeavesCacheUntouched(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 40, 20, color.RGBA{0, 0, 0, 255})

	args := map[string]interface{}{"path": imgPath, "region": "left-half", "max_width": 40, "max_height": 40}
	var first RenderResult
	decodeContent(t, callTool(t, s, "ascii_render", args), &first)

	img, err := s.cache.Load(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("cached image changed to %v", img.Bounds())
	}

	var second RenderResult
	decodeContent(t, callTool(t, s, "ascii_render", args), &second)
	if first.Art != second.Art {
		t.Error("repeated renders should be identical")
	}
}

func TestHandleToolsCall_Export(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 30, 60, color.RGBA{255, 255, 255, 255})
	output := filepath.Join(t.TempDir(), "out.txt")

	var res ExportResult
	decodeContent(t, callTool(t, s, "ascii_export", map[string]interface{}{
		"path":       imgPath,
		"palette":    "block",
		"max_height": 20,
		"output":     output,
	}), &res)

	if res.Output != output || res.Width != 10 || res.Height != 20 {
		t.Errorf("result: got %+v", res)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if len(data) != res.Bytes {
		t.Errorf("bytes: file has %d, result says %d", len(data), res.Bytes)
	}
	wantRow := strings.Repeat(" ", 10) + "\n"
	if string(data) != strings.Repeat(wantRow, 20) {
		t.Errorf("white image should export blank rows, got %q", data)
	}
}

func TestHandleToolsCall_ExportUnwritable(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 10, 10, color.RGBA{0, 0, 0, 255})

	resp := callTool(t, s, "ascii_export", map[string]interface{}{
		"path":   imgPath,
		"output": filepath.Join(t.TempDir(), "no-such-dir", "out.txt"),
	})
	if resp.Error == nil {
		t.Fatal("expected an error for an unwritable output")
	}
}

func TestExecuteTool_AllTools(t *testing.T) {
	s := New("test")
	imgPath := createTestImageFile(t, 100, 100, color.RGBA{128, 128, 128, 255})
	output := filepath.Join(t.TempDir(), "art.txt")

	toolTests := []struct {
		name string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": imgPath}},
		{"ascii_palettes", map[string]interface{}{}},
		{"ascii_render", map[string]interface{}{"path": imgPath}},
		{"ascii_export", map[string]interface{}{"path": imgPath, "output": output}},
	}

	for _, tt := range toolTests {
		t.Run(tt.name, func(t *testing.T) {
			argsJSON, _ := json.Marshal(tt.args)
			result, err := s.executeTool(tt.name, argsJSON)
			if err != nil {
				t.Fatalf("executeTool(%s) failed: %v", tt.name, err)
			}
			if result == nil {
				t.Errorf("executeTool(%s) returned nil result", tt.name)
			}
		})
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New("test")

	_, err := s.executeTool("unknown_tool", json.RawMessage(`{}`))
	if err == nil {
		t.Error("executeTool should fail for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New("test")

	for _, tool := range []string{"image_load", "ascii_render", "ascii_export"} {
		if _, err := s.executeTool(tool, json.RawMessage(`{invalid`)); err == nil {
			t.Errorf("executeTool(%s) should fail for invalid JSON", tool)
		}
	}
}
