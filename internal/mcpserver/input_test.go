package mcpserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecInputResolve_Content(t *testing.T) {
	doc, err := specInput{Content: testSpecYAML}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Version)
}

func TestSpecInputResolve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSpecYAML), 0o600))

	doc, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Version)
	assert.Equal(t, path, doc.SourcePath)
}

func TestSpecInputResolve_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(testSpecYAML))
	}))
	defer srv.Close()

	// The test server listens on loopback, which the safe client blocks.
	orig := cfg.AllowPrivateIPs
	cfg.AllowPrivateIPs = true
	defer func() { cfg.AllowPrivateIPs = orig }()

	doc, err := specInput{URL: srv.URL}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Version)
}

func TestSpecInputResolve_URLBlockedByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testSpecYAML))
	}))
	defer srv.Close()

	_, err := specInput{URL: srv.URL}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestSpecInputResolve_NoSource(t *testing.T) {
	_, err := specInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content")
}

func TestSpecInputResolve_MultipleSources(t *testing.T) {
	_, err := specInput{File: "spec.yaml", Content: testSpecYAML}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2")
}

func TestSpecInputResolve_InlineSizeLimit(t *testing.T) {
	orig := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	defer func() { cfg.MaxInlineSize = orig }()

	_, err := specInput{Content: strings.Repeat("a", 32)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}
