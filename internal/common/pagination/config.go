// Package pagination parses page/limit query parameters and builds the
// paginated list envelope.
package pagination

// Config holds paging defaults and bounds.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// NewConfig builds a Config from a default and maximum limit, falling back
// to DefaultConfig values for non-positive inputs.
func NewConfig(defaultLimit, maxLimit int) Config {
	cfg := DefaultConfig()
	if maxLimit > 0 {
		cfg.MaxLimit = maxLimit
	}
	if defaultLimit > 0 {
		cfg.DefaultLimit = defaultLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return cfg
}
