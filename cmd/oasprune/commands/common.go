// Package commands provides CLI command handlers for oasprune.
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/internal/cliutil"
	"github.com/erraggy/oasprune/pruner"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// ValidateOutputPath checks if the output path is safe to write to
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	// Get absolute path of output file
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	// Check if output file would overwrite any input files
	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	// Check if output file already exists and warn (but don't error)
	if _, err := os.Stat(outputPath); err == nil {
		cliutil.Writef(os.Stderr, "Warning: output file %s already exists and will be overwritten\n", outputPath)
	}

	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// LoadSpec loads the specification from a file path, URL, or stdin.
func LoadSpec(specPath string) (*document.Document, error) {
	loader := document.NewLoader()
	if specPath == StdinFilePath {
		doc, err := loader.LoadReader(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("loading stdin: %w", err)
		}
		return doc, nil
	}
	doc, err := loader.Load(specPath)
	if err != nil {
		return nil, fmt.Errorf("loading specification: %w", err)
	}
	return doc, nil
}

// opList is a repeatable flag value collecting operation specs.
type opList []string

func (l *opList) String() string {
	return strings.Join(*l, ", ")
}

func (l *opList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// ReadOpsFile reads operation specs from a file, one "METHOD /path" per
// line. Blank lines and lines starting with # are skipped.
func ReadOpsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ops file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var specs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specs = append(specs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ops file: %w", err)
	}
	return specs, nil
}

// CollectOperations gathers operation keys from repeatable --op flags,
// positional specs, and an optional ops file, in that order.
func CollectOperations(opFlags, positional []string, opsFile string) ([]pruner.OperationKey, error) {
	specs := make([]string, 0, len(opFlags)+len(positional))
	specs = append(specs, opFlags...)
	specs = append(specs, positional...)
	if opsFile != "" {
		fromFile, err := ReadOpsFile(opsFile)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fromFile...)
	}
	return pruner.ParseOperationKeys(specs)
}
