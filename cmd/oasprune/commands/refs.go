package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/oasprune"
	"github.com/erraggy/oasprune/internal/cliutil"
	"github.com/erraggy/oasprune/pruner"
)

// RefsFlags contains flags for the refs command
type RefsFlags struct {
	Format  string
	Ops     opList
	OpsFile string
	Strict  bool
}

// SetupRefsFlags creates and configures a FlagSet for the refs command.
// Returns the FlagSet and a RefsFlags struct with bound flag variables.
func SetupRefsFlags() (*flag.FlagSet, *RefsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &RefsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format (text, json, yaml)")
	fs.Var(&flags.Ops, "op", "operation to resolve as 'METHOD /path' (repeatable)")
	fs.StringVar(&flags.OpsFile, "ops-file", "", "file with one 'METHOD /path' per line (# comments allowed)")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when any requested operation does not exist")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasprune refs [flags] <file|url|-> [operation...]\n\n")
		cliutil.Writef(fs.Output(), "Report the component reference closure of the selected operations\n")
		cliutil.Writef(fs.Output(), "without producing a pruned document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasprune refs openapi.yaml \"GET /pets\"\n")
		cliutil.Writef(fs.Output(), "  oasprune refs --op \"GET /pets\" --op \"POST /pets\" openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasprune refs --format json openapi.yaml \"GET /pets\"\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Closure resolved\n")
		cliutil.Writef(fs.Output(), "  1    Failed to load or resolve the specification\n")
	}

	return fs, flags
}

// refsReport is the structured output of the refs command.
type refsReport struct {
	Selected   []string            `json:"selected"              yaml:"selected"`
	Missing    []string            `json:"missing,omitempty"     yaml:"missing,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"    yaml:"warnings,omitempty"`
	Operations []refsOperation     `json:"operations"            yaml:"operations"`
	Closure    map[string][]string `json:"closure"               yaml:"closure"`
	Total      int                 `json:"total"                 yaml:"total"`
}

type refsOperation struct {
	Operation string   `json:"operation"      yaml:"operation"`
	Refs      []string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// HandleRefs executes the refs command
func HandleRefs(args []string) error {
	fs, flags := SetupRefsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("refs command requires a file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	keys, err := CollectOperations(flags.Ops, fs.Args()[1:], flags.OpsFile)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fs.Usage()
		return fmt.Errorf("refs command requires at least one operation (--op, positional, or --ops-file)")
	}

	startTime := time.Now()
	doc, err := LoadSpec(specPath)
	if err != nil {
		return err
	}

	p := pruner.New()
	p.Strict = flags.Strict
	report, err := p.Report(doc, keys)
	if err != nil {
		return fmt.Errorf("resolving closure: %w", err)
	}
	totalTime := time.Since(startTime)

	out := buildRefsReport(report)

	if flags.Format != FormatText {
		return OutputStructured(out, flags.Format)
	}

	cliutil.Writef(os.Stdout, "OpenAPI Reference Closure\n")
	cliutil.Writef(os.Stdout, "=========================\n\n")
	cliutil.Writef(os.Stdout, "oasprune version: %s\n", oasprune.Version())
	cliutil.Writef(os.Stdout, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(os.Stdout, "OAS Version: %s\n", doc.Version)
	cliutil.Writef(os.Stdout, "Total Time: %v\n\n", totalTime)

	for _, op := range report.Operations {
		cliutil.Writef(os.Stdout, "%s (%d direct):\n", op.Key.String(), len(op.Refs))
		for _, ref := range op.Refs {
			cliutil.Writef(os.Stdout, "  %s\n", ref.Ref())
		}
	}
	fmt.Println()

	cliutil.Writef(os.Stdout, "Closure (%d components):\n", len(report.Closure))
	for _, category := range pruner.Categories() {
		names := report.ByCategory[category]
		if len(names) == 0 {
			continue
		}
		cliutil.Writef(os.Stdout, "  %s (%d):\n", category, len(names))
		for _, name := range names {
			cliutil.Writef(os.Stdout, "    %s\n", name)
		}
	}

	if len(report.Missing) > 0 {
		cliutil.Writef(os.Stdout, "\nOperations Not Found (%d):\n", len(report.Missing))
		for _, key := range report.Missing {
			cliutil.Writef(os.Stdout, "  - %s\n", key.String())
		}
	}

	if len(report.Warnings) > 0 {
		cliutil.Writef(os.Stdout, "\nWarnings (%d):\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			cliutil.Writef(os.Stdout, "  - %s\n", warning)
		}
	}

	return nil
}

// buildRefsReport flattens a closure report into serializable form.
func buildRefsReport(report *pruner.ClosureReport) refsReport {
	out := refsReport{
		Warnings: report.Warnings,
		Closure:  make(map[string][]string, len(report.ByCategory)),
		Total:    len(report.Closure),
	}
	for _, key := range report.Selected {
		out.Selected = append(out.Selected, key.String())
	}
	for _, key := range report.Missing {
		out.Missing = append(out.Missing, key.String())
	}
	for _, op := range report.Operations {
		refs := make([]string, 0, len(op.Refs))
		for _, ref := range op.Refs {
			refs = append(refs, ref.Ref())
		}
		out.Operations = append(out.Operations, refsOperation{
			Operation: op.Key.String(),
			Refs:      refs,
		})
	}
	for category, names := range report.ByCategory {
		out.Closure[string(category)] = names
	}
	return out
}
