package config

import (
	"os"
	"strconv"
	"strings"
)

// Global Variables
const SchemaName string = "fdc"
const LogDir string = "logs"

const TABLE_FACT_TRACKERS = "fact_trackers"
const TABLE_DIM_TRACKERS = "dim_trackers"

const CACHE_KEY_SYMBOLS = "SYMBOLS"
const CACHE_KEY_SYMBOLS_INVALID = "SYMBOLS_INVALID"
const CACHE_KEY_RETRY_PREFIX = "SYMBOLS_RETRY_"

// Provider error wording changes from release to release. The recognised
// patterns are configuration rather than hard coded literals so that a wording
// change is a config update, not a code change. The first capture group must
// be the quoted list of periods the provider claims to support.
const DEFAULT_PERIOD_ERROR_PATTERN = `is invalid, must be one of \[([^\]]*)\]`

type Config struct {
	Schema            string
	ProviderURL       string
	Windows           []string // widest to narrowest
	Parallel          int
	BatchSize         int
	RequestsPerSecond float64
	ProxyURL          string

	PeriodErrorPatterns []string
}

func Default() Config {
	return Config{
		Schema:              SchemaName,
		ProviderURL:         "http://openbb:8001",
		Windows:             []string{"5y", "1y", "5d"},
		Parallel:            5,
		BatchSize:           100,
		RequestsPerSecond:   5,
		PeriodErrorPatterns: []string{DEFAULT_PERIOD_ERROR_PATTERN},
	}
}

// FromEnv returns the default configuration with FDC_* environment overrides
// applied.
func FromEnv() Config {
	cfg := Default()
	if v := os.Getenv("FDC_SCHEMA"); v != "" {
		cfg.Schema = v
	}
	if v := os.Getenv("FDC_PROVIDER_URL"); v != "" {
		cfg.ProviderURL = v
	}
	if v := os.Getenv("FDC_WINDOWS"); v != "" {
		cfg.Windows = splitList(v)
	}
	if v := os.Getenv("FDC_PARALLEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Parallel = n
		}
	}
	if v := os.Getenv("FDC_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}
	if v := os.Getenv("FDC_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("FDC_PROXY"); v != "" {
		cfg.ProxyURL = v
	}
	if v := os.Getenv("FDC_PERIOD_ERROR_PATTERNS"); v != "" {
		cfg.PeriodErrorPatterns = strings.Split(v, "\n")
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
