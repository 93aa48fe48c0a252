package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatPostgres = "postgres"
	FormatParquet  = "parquet"
)

// Config holds all runtime configuration for a claimview run.
type Config struct {
	DataURL    string // claim document: http(s) URL or local path
	PDFPath    string // source PDF shown next to the claim; optional
	ListenAddr string
	LogFormat  string // "text" or "json"

	FetchTimeout  time.Duration
	FetchMaxBytes int64
	CacheTTL      time.Duration
	RetryRate     float64 // reload attempts per second
	RetryBurst    int

	EmphasisDuration time.Duration
	PageWidthMin     int
	PageWidthMax     int
	PageGutter       int

	DSN          string
	ExportDir    string
	ExportFormat string // "postgres" or "parquet"
	OutputPath   string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:       ":8080",
		LogFormat:        "text",
		FetchTimeout:     10 * time.Second,
		FetchMaxBytes:    32 << 20,
		CacheTTL:         5 * time.Minute,
		RetryRate:        1,
		RetryBurst:       3,
		EmphasisDuration: 1500 * time.Millisecond,
		PageWidthMin:     260,
		PageWidthMax:     760,
		PageGutter:       32,
		ExportFormat:     FormatPostgres,
	}
}

// yamlConfig is the on-disk YAML structure. Durations are Go duration strings.
type yamlConfig struct {
	DataURL          string  `yaml:"data_url"`
	PDFPath          string  `yaml:"pdf_path"`
	ListenAddr       string  `yaml:"listen_addr"`
	LogFormat        string  `yaml:"log_format"`
	FetchTimeout     string  `yaml:"fetch_timeout"`
	FetchMaxBytes    int64   `yaml:"fetch_max_bytes"`
	CacheTTL         string  `yaml:"cache_ttl"`
	RetryRate        float64 `yaml:"retry_rate"`
	RetryBurst       int     `yaml:"retry_burst"`
	EmphasisDuration string  `yaml:"emphasis_duration"`
	Viewer           struct {
		MinWidth int `yaml:"min_width"`
		MaxWidth int `yaml:"max_width"`
		Gutter   int `yaml:"gutter"`
	} `yaml:"viewer"`
	DSN    string `yaml:"dsn"`
	Export struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"export"`
}

// LoadFromFile reads a YAML config file and merges every value it sets
// into Config. Keys absent from the file leave the current value alone.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&c.DataURL, yc.DataURL)
	setString(&c.PDFPath, yc.PDFPath)
	setString(&c.ListenAddr, yc.ListenAddr)
	setString(&c.LogFormat, yc.LogFormat)
	setString(&c.DSN, yc.DSN)
	setString(&c.ExportDir, yc.Export.Dir)
	setString(&c.ExportFormat, yc.Export.Format)
	setString(&c.OutputPath, yc.Export.Output)

	if yc.FetchMaxBytes > 0 {
		c.FetchMaxBytes = yc.FetchMaxBytes
	}
	if yc.RetryRate > 0 {
		c.RetryRate = yc.RetryRate
	}
	if yc.RetryBurst > 0 {
		c.RetryBurst = yc.RetryBurst
	}
	if yc.Viewer.MinWidth > 0 {
		c.PageWidthMin = yc.Viewer.MinWidth
	}
	if yc.Viewer.MaxWidth > 0 {
		c.PageWidthMax = yc.Viewer.MaxWidth
	}
	if yc.Viewer.Gutter > 0 {
		c.PageGutter = yc.Viewer.Gutter
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"fetch_timeout", yc.FetchTimeout, &c.FetchTimeout},
		{"cache_ttl", yc.CacheTTL, &c.CacheTTL},
		{"emphasis_duration", yc.EmphasisDuration, &c.EmphasisDuration},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("config %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks settings shared by every command.
func (c *Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.PageWidthMin <= 0 || c.PageWidthMin > c.PageWidthMax {
		return fmt.Errorf("viewer width bounds invalid: min %d, max %d", c.PageWidthMin, c.PageWidthMax)
	}
	if c.RetryRate < 0 || c.RetryBurst < 0 {
		return fmt.Errorf("retry rate and burst must not be negative")
	}
	return nil
}

// ValidateSource checks that a claim document location is set.
func (c *Config) ValidateSource() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DataURL == "" {
		return fmt.Errorf("--data or CLAIMVIEW_DATA_URL is required")
	}
	return nil
}

// ValidateServe checks settings for the review server.
func (c *Config) ValidateServe() error {
	if err := c.ValidateSource(); err != nil {
		return err
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("--listen is required")
	}
	// go-cache treats a zero TTL as "never expire".
	if c.CacheTTL <= 0 {
		return fmt.Errorf("--cache-ttl must be positive, got %s", c.CacheTTL)
	}
	if c.PDFPath != "" {
		if _, err := os.Stat(c.PDFPath); err != nil {
			return fmt.Errorf("pdf not accessible: %w", err)
		}
	}
	return nil
}

// ValidateDSN checks that a database is configured.
func (c *Config) ValidateDSN() error {
	if c.DSN == "" {
		return fmt.Errorf("--dsn or CLAIMVIEW_DSN is required")
	}
	return nil
}

// ValidateExport checks settings for a batch export.
func (c *Config) ValidateExport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ExportDir == "" {
		return fmt.Errorf("--dir is required")
	}
	info, err := os.Stat(c.ExportDir)
	if err != nil {
		return fmt.Errorf("export dir not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("export dir %s is not a directory", c.ExportDir)
	}
	switch c.ExportFormat {
	case FormatPostgres:
		return c.ValidateDSN()
	case FormatParquet:
		if c.OutputPath == "" {
			return fmt.Errorf("--output is required for parquet export")
		}
		return nil
	default:
		return fmt.Errorf("--format must be postgres or parquet, got %q", c.ExportFormat)
	}
}
