package mcpserver

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasprune/document"
)

// specInput represents the three ways an OAS document can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OAS document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// resolve loads the document from whichever input was provided. URL inputs
// go through the SSRF-safe HTTP client unless private IPs are allowed.
func (s specInput) resolve() (*document.Document, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.URL != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && len(s.Content) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASPRUNE_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	loader := document.NewLoader()
	switch {
	case s.File != "":
		return loader.Load(s.File)
	case s.URL != "":
		if !cfg.AllowPrivateIPs {
			loader.HTTPClient = newSafeHTTPClient()
		}
		return loader.Load(s.URL)
	default:
		return loader.LoadReader(strings.NewReader(s.Content))
	}
}
