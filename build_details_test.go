package oasprune

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("Version() returned empty string")
	}
	// Development builds report "dev"; release builds inject a semver via ldflags.
	if v != "dev" && !strings.ContainsAny(v, "0123456789") {
		t.Errorf("Version() = %q, expected 'dev' or a version number", v)
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "oasprune/") {
		t.Errorf("UserAgent() = %q, expected 'oasprune/' prefix", ua)
	}
	if !strings.HasSuffix(ua, Version()) {
		t.Errorf("UserAgent() = %q, expected suffix %q", ua, Version())
	}
}
