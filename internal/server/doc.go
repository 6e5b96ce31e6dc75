// Package server implements the MCP (Model Context Protocol) server for the
// denoising tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the speckle filter
// and binary cleanup pipeline through the MCP protocol.
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
//   - image_despeckle: Crimmins speckle filter, optionally after smoothing or
//     followed by sharpening
//   - image_clean: 2x2 closing and/or small-component removal
//   - image_smooth: Median/Gaussian/box smoothing chain, optionally sharpened
//   - image_noise_diff: Cleaned image, removed noise and statistics
//   - image_add_noise: Seeded salt-and-pepper noise or isolated specks
//   - image_unload: Drop an image from the cache
//
// Every image tool accepts an optional region or named_region, a gray model
// and an output format (png or webp). Omitted numeric parameters take the
// server defaults from the environment (see package config).
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. The cache is
// bounded by a share of system memory and evicts oldest entries first.
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
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// The Toolbox returned by Server.Toolbox backs the REST front end in package
// rest, so both surfaces share one image cache.
package server
