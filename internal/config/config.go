package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Scan          Scan          `toml:"scan"`
	Output        Output        `toml:"output"`
	Render        Render        `toml:"render"`
	Analyzer      Analyzer      `toml:"analyzer"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Scan struct {
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeFiles []string `toml:"exclude_files"`
	UseGitignore bool     `toml:"use_gitignore"`
}

type Output struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

type Render struct {
	DotBinary string `toml:"dot_binary"`
}

type Analyzer struct {
	RemoteURL    string   `toml:"remote_url"`
	ProbeTimeout Duration `toml:"probe_timeout"`
}

type Watch struct {
	Debounce Duration `toml:"debounce"`
}

// Duration accepts Go duration strings ("500ms") in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Scan.ExcludeDirs) == 0 {
		c.Scan.ExcludeDirs = []string{".git", "__pycache__", "venv", ".venv", "node_modules"}
	}
	if c.Output.Format == "" {
		c.Output.Format = "mermaid"
	}
	if c.Render.DotBinary == "" {
		c.Render.DotBinary = "dot"
	}
	if c.Analyzer.ProbeTimeout == 0 {
		c.Analyzer.ProbeTimeout = Duration(2 * time.Second)
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = Duration(500 * time.Millisecond)
	}
}
