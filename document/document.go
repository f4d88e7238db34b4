package document

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasprune/oaserrors"
)

// Loader reads OpenAPI documents from files, URLs, readers, or byte slices
type Loader struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "oasprune/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// NewLoader creates a new Loader instance with default settings
func NewLoader() *Loader {
	return &Loader{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (l *Loader) log() Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return NopLogger{}
}

// Document is a loaded OpenAPI 3.x document held as an order-preserving
// node tree. The tree keeps every field of the source exactly as written,
// so pruned output round-trips content the loader never interpreted.
//
// Callers should treat a Document as read-only after loading.
type Document struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name
	// of the method and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the OAS version string (e.g., "3.0.3", "3.1.0")
	Version string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64

	// root is the top-level mapping node of the document body
	root *yaml.Node
}

// Load loads an OpenAPI document from a file path or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
// For local files, the file is read and parsed.
func (l *Loader) Load(specPath string) (*Document, error) {
	var data []byte
	var err error
	var format SourceFormat
	var loadStart time.Time
	var loadTime time.Duration

	if isURL(specPath) {
		var contentType string
		loadStart = time.Now()
		data, contentType, err = l.fetchURL(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		loadStart = time.Now()
		data, err = os.ReadFile(specPath)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, fmt.Errorf("document: failed to read file: %w", err)
		}
		format = detectFormatFromPath(specPath)
	}

	doc, err := l.loadBytes(data, specPath)
	if err != nil {
		return nil, err
	}

	doc.LoadTime = loadTime
	if format != SourceFormatUnknown {
		doc.SourceFormat = format
	}

	l.log().Debug("loaded document",
		"path", specPath,
		"version", doc.Version,
		"size", FormatBytes(doc.SourceSize))
	return doc, nil
}

// LoadReader loads an OpenAPI document from an io.Reader.
// Note: since there is no actual source path, Document.SourcePath will be
// set to LoadReader.yaml or LoadReader.json based on the detected format.
func (l *Loader) LoadReader(r io.Reader) (*Document, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read data: %w", err)
	}
	doc, err := l.loadBytes(data, "")
	if err != nil {
		return nil, err
	}
	doc.LoadTime = loadTime
	doc.SourcePath = "LoadReader." + string(doc.SourceFormat)
	return doc, nil
}

// LoadBytes loads an OpenAPI document from a byte slice.
// Note: since there is no actual source path, Document.SourcePath will be
// set to LoadBytes.yaml or LoadBytes.json based on the detected format.
func (l *Loader) LoadBytes(data []byte) (*Document, error) {
	doc, err := l.loadBytes(data, "")
	if err != nil {
		return nil, err
	}
	doc.SourcePath = "LoadBytes." + string(doc.SourceFormat)
	return doc, nil
}

// loadBytes parses data into a node tree, dereferences YAML aliases, and
// validates the OAS version.
func (l *Loader) loadBytes(data []byte, sourcePath string) (*Document, error) {
	var rootNode yaml.Node
	if err := yaml.Unmarshal(data, &rootNode); err != nil {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "failed to parse YAML/JSON",
			Cause:   err,
		}
	}

	body := documentBody(&rootNode)
	if body == nil || body.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "document root must be a mapping",
		}
	}

	// Replace alias nodes with their anchor targets so that pruned output
	// never contains an alias whose anchor was pruned away.
	dereferenceAliases(body, make(map[*yaml.Node]bool))

	doc := &Document{
		SourcePath:   sourcePath,
		SourceFormat: detectFormatFromContent(data),
		SourceSize:   int64(len(data)),
		root:         body,
	}

	version, err := detectVersion(body, sourcePath)
	if err != nil {
		return nil, err
	}
	doc.Version = version

	return doc, nil
}

// detectVersion extracts and validates the OAS version from the document body.
// Only OpenAPI 3.x documents are supported.
func detectVersion(body *yaml.Node, sourcePath string) (string, error) {
	if node := MapGet(body, "openapi"); node != nil && node.Kind == yaml.ScalarNode {
		version := node.Value
		if !strings.HasPrefix(version, "3.") {
			return "", &oaserrors.ParseError{
				Path:    sourcePath,
				Message: fmt.Sprintf("unsupported OpenAPI version %q (only 3.x is supported)", version),
			}
		}
		return version, nil
	}
	if MapGet(body, "swagger") != nil {
		return "", &oaserrors.ParseError{
			Path:    sourcePath,
			Message: "Swagger 2.0 documents are not supported (convert to OpenAPI 3.x first)",
		}
	}
	return "", &oaserrors.ParseError{
		Path:    sourcePath,
		Message: "missing openapi version field",
	}
}

// FromRoot wraps an existing mapping node as a Document. Used when
// assembling a new document from parts of another.
func FromRoot(root *yaml.Node, version string) *Document {
	return &Document{
		root:    root,
		Version: version,
	}
}

// Root returns the top-level mapping node of the document body.
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Paths returns the paths mapping node, or nil if the document has no paths.
func (d *Document) Paths() *yaml.Node {
	return MapGet(d.root, "paths")
}

// Components returns the components mapping node, or nil if the document
// has no components section.
func (d *Document) Components() *yaml.Node {
	return MapGet(d.root, "components")
}

// ComponentCategory returns the mapping node for one components category
// (e.g. "schemas"), or nil if the category is absent.
func (d *Document) ComponentCategory(category string) *yaml.Node {
	return MapGet(d.Components(), category)
}

// Component returns the node for a named component in the given category,
// or nil if it does not exist.
func (d *Document) Component(category, name string) *yaml.Node {
	return MapGet(d.ComponentCategory(category), name)
}

// PathItem returns the path item node for a path template, or nil if the
// path does not exist.
func (d *Document) PathItem(pathTemplate string) *yaml.Node {
	return MapGet(d.Paths(), pathTemplate)
}

// Operation returns the operation node for a path template and lowercase
// HTTP method, or nil if either is absent.
func (d *Document) Operation(pathTemplate, method string) *yaml.Node {
	return MapGet(d.PathItem(pathTemplate), method)
}

// documentBody unwraps a DocumentNode to its single content node.
func documentBody(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}

// dereferenceAliases replaces every AliasNode in the tree with the node it
// refers to. The anchor target is shared, not copied. The seen map guards
// against re-walking shared subtrees.
func dereferenceAliases(node *yaml.Node, seen map[*yaml.Node]bool) {
	if node == nil || seen[node] {
		return
	}
	seen[node] = true
	// Anchors are meaningless once aliases are gone, and a shared subtree
	// emitted twice would otherwise produce duplicate anchor definitions.
	node.Anchor = ""
	for i, child := range node.Content {
		if child != nil && child.Kind == yaml.AliasNode && child.Alias != nil {
			node.Content[i] = child.Alias
			child = child.Alias
		}
		dereferenceAliases(child, seen)
	}
}
