package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"registry/internal/domain/columncfg"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	FixturesPath      string
	JWTSecret         string
	GeoIPDBPath       string
	DetailURLTemplate string
	LanguageURL       string
	OverridesURL      string
	OverridesToken    string
	ColumnsFile       string
	PageLengths       []int
	OverrideColumns   []string
	PGCollation       string
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
	PageTTL           time.Duration
	RedrawWait        time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		FixturesPath:      os.Getenv("FIXTURES_PATH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		GeoIPDBPath:       os.Getenv("GEOIP_DB_PATH"),
		DetailURLTemplate: getEnv("DETAIL_URL_TEMPLATE", "/donor/detail/REPLACE_ME"),
		LanguageURL:       getEnv("LANGUAGE_URL", "//cdn.datatables.net/plug-ins/1.10.21/i18n/Czech.json"),
		OverridesURL:      os.Getenv("OVERRIDES_URL"),
		OverridesToken:    os.Getenv("OVERRIDES_TOKEN"),
		ColumnsFile:       os.Getenv("COLUMNS_FILE"),
		OverrideColumns:   getEnvList("OVERRIDE_COLUMNS"),
		PGCollation:       getEnv("PG_COLLATION", "cs-CZ-x-icu"),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		PageTTL:           time.Minute * time.Duration(getEnvInt("PAGE_TTL_MINUTES", 120)),
		RedrawWait:        time.Second * time.Duration(getEnvInt("REDRAW_WAIT_SECONDS", 25)),
	}

	lengths, err := parseIntList(os.Getenv("PAGE_LENGTHS"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_LENGTHS: %w", err)
	}
	cfg.PageLengths = lengths

	if cfg.DatabaseURL == "" && cfg.FixturesPath == "" {
		return nil, fmt.Errorf("DATABASE_URL or FIXTURES_PATH is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if !strings.Contains(cfg.DetailURLTemplate, "REPLACE_ME") {
		return nil, fmt.Errorf("DETAIL_URL_TEMPLATE must contain REPLACE_ME")
	}

	return cfg, nil
}

// Catalogue returns the column catalogue with environment overrides applied.
func (c *Config) Catalogue() (columncfg.Catalogue, error) {
	cat := columncfg.Default()
	if c.ColumnsFile != "" {
		loaded, err := columncfg.Load(c.ColumnsFile)
		if err != nil {
			return columncfg.Catalogue{}, err
		}
		cat = loaded
	}
	if len(c.PageLengths) > 0 {
		cat.PageLengths = c.PageLengths
	}
	if len(c.OverrideColumns) > 0 {
		cat.WatchedColumns = c.OverrideColumns
	}
	if err := cat.Validate(); err != nil {
		return columncfg.Catalogue{}, err
	}
	return cat, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntList(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
