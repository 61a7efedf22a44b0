// Package server exposes the scan splitter as an MCP (Model Context
// Protocol) server.
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
//   - scan_info: Dimensions, format and size of a scan
//   - extract_regions: Crop every object from one scan
//   - split_scans: Split an obverse and a reverse scan and merge the pairs
//   - build_inventory: Parse named merged images into a CSV inventory
//   - read_stamp: Read the text stamped on a crop
//
// Splitting parameters default to the server configuration and can be
// overridden per call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Logs go to stderr so they never mix with protocol output.
package server
