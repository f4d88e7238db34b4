package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// MaxInlineSize caps inline content input, in bytes.
	MaxInlineSize int

	// AllowPrivateIPs disables SSRF protection for url inputs.
	AllowPrivateIPs bool

	// Strict enables strict operation selection by default.
	Strict bool

	// RefsLimit is the default result limit for the closure tool.
	RefsLimit int
	// MaxLimit caps any client-supplied limit.
	MaxLimit int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASPRUNE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:   envInt("OASPRUNE_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs: envBool("OASPRUNE_ALLOW_PRIVATE_IPS", false),
		Strict:          envBool("OASPRUNE_STRICT", false),
		RefsLimit:       envInt("OASPRUNE_REFS_LIMIT", 100),
		MaxLimit:        envInt("OASPRUNE_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
