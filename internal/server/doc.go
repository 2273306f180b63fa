// Package server implements an MCP (Model Context Protocol) server that
// renders images as text art.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - ascii_palettes: List glyph palettes
//   - ascii_render: Render an image and return the art
//   - ascii_export: Render an image and save the art to a file
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls for the
// lifetime of the server process. Every render works on its own copy, so
// regions and filters never alter the cached image.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
