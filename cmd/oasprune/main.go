package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasprune"
	"github.com/erraggy/oasprune/cmd/oasprune/commands"
	"github.com/erraggy/oasprune/internal/mcpserver"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasprune v%s\n", oasprune.Version())
	case "help", "-h", "--help":
		printUsage()
	case "prune":
		if err := commands.HandlePrune(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "refs":
		if err := commands.HandleRefs(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// commandNames lists every command suggestCommand may offer.
var commandNames = []string{"prune", "refs", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			bestDist = d
			best = name
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`oasprune - OpenAPI Specification Pruner

Usage:
  oasprune <command> [options]

Commands:
  prune       Prune a specification down to selected operations
  refs        Report the component reference closure of selected operations
  mcp         Run as an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasprune prune -o pruned.yaml openapi.yaml "GET /pets" "POST /pets"
  oasprune prune --op "GET /pets" --op "DELETE /pets/{petId}" openapi.yaml
  oasprune prune --ops-file keep.txt --strict openapi.yaml
  oasprune refs openapi.yaml "GET /pets"
  cat openapi.yaml | oasprune prune -q - "GET /pets" > pruned.yaml

Run 'oasprune <command> --help' for more information on a command.`)
}
