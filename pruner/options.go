package pruner

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oasprune/document"
	"github.com/erraggy/oasprune/internal/options"
)

// Logger is the structured logging interface shared across oasprune.
// See [document.Logger] for adapter examples.
type Logger = document.Logger

// Option is a function that configures a prune operation
type Option func(*pruneConfig) error

// pruneConfig holds configuration for a prune operation
type pruneConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	doc      *document.Document

	// Requested operations
	operations []OperationKey

	// Configuration options
	strict     bool
	userAgent  string
	httpClient *http.Client
	logger     Logger
}

// PruneWithOptions prunes an OpenAPI document using functional options.
// This combines input source selection, operation selection, and
// configuration in a single call.
//
// Example:
//
//	result, err := pruner.PruneWithOptions(
//	    pruner.WithFilePath("openapi.yaml"),
//	    pruner.WithOperationSpecs("GET /pets", "POST /pets"),
//	)
func PruneWithOptions(opts ...Option) (*PruneResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("pruner: invalid options: %w", err)
	}

	doc := cfg.doc
	if doc == nil {
		loader := &document.Loader{
			UserAgent:  cfg.userAgent,
			HTTPClient: cfg.httpClient,
			Logger:     cfg.logger,
		}
		switch {
		case cfg.filePath != nil:
			doc, err = loader.Load(*cfg.filePath)
		case cfg.reader != nil:
			doc, err = loader.LoadReader(cfg.reader)
		case cfg.bytes != nil:
			doc, err = loader.LoadBytes(cfg.bytes)
		default:
			// Should never reach here due to validation in applyOptions
			return nil, fmt.Errorf("pruner: no input source specified")
		}
		if err != nil {
			return nil, err
		}
	}

	p := &Pruner{
		Strict: cfg.strict,
		Logger: cfg.logger,
	}
	return p.Prune(doc, cfg.operations)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*pruneConfig, error) {
	cfg := &pruneConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"pruner: must specify an input source (use WithFilePath, WithReader, WithBytes, or WithDocument)",
		"pruner: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.doc != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *pruneConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *pruneConfig) error {
		if r == nil {
			return fmt.Errorf("pruner: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *pruneConfig) error {
		if data == nil {
			return fmt.Errorf("pruner: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithDocument specifies an already loaded document as the input source.
// Useful when pruning one document several times with different
// selections.
func WithDocument(doc *document.Document) Option {
	return func(cfg *pruneConfig) error {
		if doc == nil {
			return fmt.Errorf("pruner: document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithOperations adds already-parsed operation keys to the selection.
// May be used multiple times; keys accumulate in order.
func WithOperations(keys ...OperationKey) Option {
	return func(cfg *pruneConfig) error {
		cfg.operations = append(cfg.operations, keys...)
		return nil
	}
}

// WithOperationSpecs adds operations given as "METHOD /path" tokens, e.g.
// "GET /pets". May be used multiple times; keys accumulate in order.
func WithOperationSpecs(specs ...string) Option {
	return func(cfg *pruneConfig) error {
		keys, err := ParseOperationKeys(specs)
		if err != nil {
			return err
		}
		cfg.operations = append(cfg.operations, keys...)
		return nil
	}
}

// WithStrict escalates unresolved operation keys to an error instead of
// reporting them in PruneResult.Missing.
// Default: false
func WithStrict(enabled bool) Option {
	return func(cfg *pruneConfig) error {
		cfg.strict = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasprune/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *pruneConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URL inputs.
// If the client is nil, this option has no effect (default client is used).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *pruneConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output during pruning.
// By default, no logging is performed (nil logger).
//
// The logger interface is compatible with log/slog, zap, and zerolog.
// Use document.NewSlogAdapter to wrap a *slog.Logger.
func WithLogger(l Logger) Option {
	return func(cfg *pruneConfig) error {
		cfg.logger = l
		return nil
	}
}
