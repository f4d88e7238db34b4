// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasprune capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasprune"
)

const serverInstructions = `oasprune MCP server — prunes OpenAPI 3.x documents down to selected operations plus the components they transitively reference.

Configuration: All defaults are configurable via OASPRUNE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASPRUNE_STRICT (default: false) — treat unresolved operations as errors by default
- OASPRUNE_MAX_INLINE_SIZE (default: 10485760) — max inline content size in bytes
- OASPRUNE_ALLOW_PRIVATE_IPS (default: false) — allow url inputs resolving to private IPs
- OASPRUNE_REFS_LIMIT (default: 100) — default result limit for the closure tool

Operations are addressed as "METHOD /path/template", e.g. "GET /pets" or "DELETE /pets/{petId}". The path template must match the source document exactly.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasprune", Version: oasprune.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "prune",
		Description: "Prune an OpenAPI 3.x document to the selected operations plus every component they transitively reference. Operations are given as \"METHOD /path\" strings. Unknown operations are reported in missing (or fail the call with strict=true; default configurable via OASPRUNE_STRICT). Use output to write the pruned document to a file, or include_document=true to return it inline. Format defaults to the source format.",
	}, handlePrune)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "closure",
		Description: "Compute the component reference closure of the selected operations without assembling a document. Returns the closure as category/name pairs in resolution order, grouped counts per category, and with detail=true the direct references of each operation. Use offset/limit to paginate. Default limit is configurable via OASPRUNE_REFS_LIMIT (default 100).",
	}, handleClosure)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.RefsLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.RefsLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
