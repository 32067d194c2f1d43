// Package server implements the MCP (Model Context Protocol) server for
// low-quality image placeholders.
//
// This package provides a JSON-RPC 2.0 server that exposes the lqip
// operations through the MCP protocol, so MCP-compatible clients can request
// inline thumbnails and color palettes for image files.
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
//   - lqip_base64: 14 pixel wide thumbnail as a data URI
//   - lqip_palette: dominant colors, most popular first
//
// # Concurrency
//
// Requests are handled concurrently, up to the configured limit. Responses
// carry the request ID and may arrive out of order. A failure that is not a
// tool error (for example a closed stdout) stops the server and is returned
// from Run.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(log))
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal("server error", zap.Error(err))
//	}
package server
