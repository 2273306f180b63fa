package server

import (
	"strings"

	"github.com/ironsheep/asciify/internal/imaging"
	"github.com/ironsheep/asciify/internal/palette"
	"github.com/ironsheep/asciify/internal/render"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// renderProperties returns the input schema shared by ascii_render and
// ascii_export.
func renderProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"palette": map[string]interface{}{
			"type":        "string",
			"enum":        palette.Names(),
			"description": "Glyph palette. Default point",
			"default":     "point",
		},
		"filter": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"none", "edge", "sharpen"},
			"description": "Convolution filter applied before rendering. Default none",
			"default":     "none",
		},
		"region": map[string]interface{}{
			"type":        "string",
			"enum":        imaging.Regions(),
			"description": "Part of the image to render. Default full",
			"default":     "full",
		},
		"color": map[string]interface{}{
			"type":        "boolean",
			"description": "Color each glyph with its source pixel. Default false",
			"default":     false,
		},
		"color_profile": map[string]interface{}{
			"type":        "string",
			"enum":        render.ProfileNames(),
			"description": "Terminal color depth used when color is set. Default truecolor",
			"default":     "truecolor",
		},
		"max_width": map[string]interface{}{
			"type":        "integer",
			"description": "Output width for landscape images. Default 100",
			"default":     100,
		},
		"max_height": map[string]interface{}{
			"type":        "integer",
			"description": "Output height for portrait and square images. Default 100",
			"default":     100,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	exportProps := renderProperties()
	exportProps["output"] = map[string]interface{}{
		"type":        "string",
		"description": "File to write. Default ascii_art.txt in the server's working directory",
	}

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
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
			Name:        "ascii_palettes",
			Description: "List the glyph palettes available for rendering (" + strings.Join(palette.Names(), ", ") + ").",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "ascii_render",
			Description: "Render an image as text art. Landscape images are scaled to max_width and everything else to max_height, keeping the aspect ratio.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "ascii_export",
			Description: "Render an image as text art and save it to a file.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": exportProps,
				"required":   []string{"path"},
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
