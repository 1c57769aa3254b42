// Package server implements the MCP (Model Context Protocol) server for blur
// scoring and image transforms.
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
//   - blur_measure: Calibrated blur score for an image or region
//   - blur_check: Blurry/sharp verdict against a threshold (default 1.0)
//   - blur_measure_batch: Score many files concurrently
//   - blur_edges: Edge map used for scoring, as PNG
//   - image_pipeline: Run transform stages, return PNG
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so
// scoring and transforming the same file repeatedly decodes it once.
//
// # Pipelines
//
// image_pipeline requests are handed to a transform.Serve worker goroutine
// owned by the Server. Call Close to stop it.
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
//	srv := server.New(blur.DefaultConfig())
//	defer srv.Close()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
