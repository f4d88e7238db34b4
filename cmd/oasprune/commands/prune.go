package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oasprune"
	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/internal/cliutil"
	"github.com/erraggy/oasprune/pruner"
)

// PruneFlags contains flags for the prune command
type PruneFlags struct {
	Output  string
	Ops     opList
	OpsFile string
	Strict  bool
	Format  string
	Quiet   bool
}

// SetupPruneFlags creates and configures a FlagSet for the prune command.
// Returns the FlagSet and a PruneFlags struct with bound flag variables.
func SetupPruneFlags() (*flag.FlagSet, *PruneFlags) {
	fs := flag.NewFlagSet("prune", flag.ContinueOnError)
	flags := &PruneFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.Var(&flags.Ops, "op", "operation to keep as 'METHOD /path' (repeatable)")
	fs.StringVar(&flags.OpsFile, "ops-file", "", "file with one 'METHOD /path' per line (# comments allowed)")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when any requested operation does not exist")
	fs.StringVar(&flags.Format, "format", "", "output format: yaml or json (default: source format)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasprune prune [flags] <file|url|-> [operation...]\n\n")
		cliutil.Writef(fs.Output(), "Prune an OpenAPI 3.x specification down to the selected operations plus\n")
		cliutil.Writef(fs.Output(), "every component they transitively reference.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOperations:\n")
		cliutil.Writef(fs.Output(), "  Operations are addressed as 'METHOD /path/template', e.g. 'GET /pets'\n")
		cliutil.Writef(fs.Output(), "  or 'DELETE /pets/{petId}'. The path template must match the source\n")
		cliutil.Writef(fs.Output(), "  document exactly. Give them as --op flags, positional arguments after\n")
		cliutil.Writef(fs.Output(), "  the file path, or one per line in an --ops-file.\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasprune prune -o pruned.yaml openapi.yaml \"GET /pets\" \"POST /pets\"\n")
		cliutil.Writef(fs.Output(), "  oasprune prune --op \"GET /pets\" --op \"DELETE /pets/{petId}\" openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasprune prune --ops-file keep.txt --strict openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasprune prune --format json openapi.yaml \"GET /pets\"\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasprune prune -q - \"GET /pets\" > pruned.yaml\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Operations not present in the source are reported and skipped\n")
		cliutil.Writef(fs.Output(), "    (use --strict to fail instead)\n")
		cliutil.Writef(fs.Output(), "  - Output preserves the source key order and format (JSON or YAML)\n")
		cliutil.Writef(fs.Output(), "  - Output file is written with restrictive permissions (0600) for security\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Pruned document produced\n")
		cliutil.Writef(fs.Output(), "  1    Failed to load, resolve, or prune the specification\n")
	}

	return fs, flags
}

// HandlePrune executes the prune command
func HandlePrune(args []string) error {
	fs, flags := SetupPruneFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("prune command requires a file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	keys, err := CollectOperations(flags.Ops, fs.Args()[1:], flags.OpsFile)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fs.Usage()
		return fmt.Errorf("prune command requires at least one operation (--op, positional, or --ops-file)")
	}

	format, err := parseDocumentFormat(flags.Format)
	if err != nil {
		return err
	}

	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
			return err
		}
	}

	startTime := time.Now()
	doc, err := LoadSpec(specPath)
	if err != nil {
		return err
	}

	p := pruner.New()
	p.Strict = flags.Strict
	result, err := p.Prune(doc, keys)
	if err != nil {
		return fmt.Errorf("pruning specification: %w", err)
	}
	totalTime := time.Since(startTime)

	// Print diagnostic messages (to stderr to keep stdout clean for pipelining)
	if !flags.Quiet {
		cliutil.Writef(os.Stderr, "OpenAPI Specification Pruner\n")
		cliutil.Writef(os.Stderr, "============================\n\n")
		cliutil.Writef(os.Stderr, "oasprune version: %s\n", oasprune.Version())
		cliutil.Writef(os.Stderr, "Specification: %s\n", FormatSpecPath(specPath))
		cliutil.Writef(os.Stderr, "OAS Version: %s\n", doc.Version)
		cliutil.Writef(os.Stderr, "Source Size: %s\n", document.FormatBytes(doc.SourceSize))
		cliutil.Writef(os.Stderr, "Paths: %d -> %d\n", result.Stats.SourcePaths, result.Stats.KeptPaths)
		cliutil.Writef(os.Stderr, "Operations: %d -> %d\n", result.Stats.SourceOperations, result.Stats.KeptOperations)
		cliutil.Writef(os.Stderr, "Components: %d -> %d (%d pruned)\n",
			result.Stats.SourceComponents, result.Stats.KeptComponents, result.Stats.PrunedComponents())
		cliutil.Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if len(result.Missing) > 0 {
			cliutil.Writef(os.Stderr, "Operations Not Found (%d):\n", len(result.Missing))
			for _, key := range result.Missing {
				cliutil.Writef(os.Stderr, "  - %s\n", key.String())
			}
			cliutil.Writef(os.Stderr, "\n")
		}

		if len(result.Warnings) > 0 {
			cliutil.Writef(os.Stderr, "Warnings (%d):\n", len(result.Warnings))
			for _, warning := range result.Warnings {
				cliutil.Writef(os.Stderr, "  - %s\n", warning)
			}
			cliutil.Writef(os.Stderr, "\n")
		}

		cliutil.Writef(os.Stderr, "✓ Kept %d operation(s) and %d component(s)\n",
			result.Stats.KeptOperations, result.Stats.KeptComponents)
	}

	// Write output
	if format == document.SourceFormatUnknown {
		format = result.Document.SourceFormat
	}
	data, err := result.Document.Marshal(format)
	if err != nil {
		return fmt.Errorf("marshaling pruned document: %w", err)
	}

	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, data, 0600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet {
			cliutil.Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
		}
	} else {
		// Write to stdout
		if _, err = os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing pruned document to stdout: %w", err)
		}
	}

	return nil
}

// parseDocumentFormat maps the --format flag onto a document format. An
// empty flag returns SourceFormatUnknown, which defers to the source.
func parseDocumentFormat(format string) (document.SourceFormat, error) {
	switch strings.ToLower(format) {
	case "":
		return document.SourceFormatUnknown, nil
	case "yaml", "yml":
		return document.SourceFormatYAML, nil
	case "json":
		return document.SourceFormatJSON, nil
	default:
		return document.SourceFormatUnknown, fmt.Errorf("invalid format '%s'. Valid formats: yaml, json", format)
	}
}
