package admatrix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configName = "admatrix"
	envPrefix  = "ADMATRIX"

	defaultInputPath  = "input_ads.csv"
	defaultOutputPath = "analyzed_output.csv"
	defaultModel      = "gpt-4o-mini"
)

// Config aggregates run settings read from admatrix.yaml, ADMATRIX_* env
// variables and command line flags.
type Config struct {
	Input      string `mapstructure:"input" yaml:"input"`
	Output     string `mapstructure:"output" yaml:"output"`
	TextColumn string `mapstructure:"text_column" yaml:"text_column"`
	Format     string `mapstructure:"format" yaml:"format,omitempty"`
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	RulesFile  string `mapstructure:"rules_file" yaml:"rules_file,omitempty"`
	// Model is accepted for compatibility with older invocations and is
	// otherwise unused; classification is rule based.
	Model string `mapstructure:"model" yaml:"model,omitempty"`
	Debug bool   `mapstructure:"debug" yaml:"debug,omitempty"`
}

// ApplyDefaults populates zero values.
func (c *Config) ApplyDefaults() {
	if c.Input == "" {
		c.Input = defaultInputPath
	}
	if c.Output == "" {
		c.Output = defaultOutputPath
	}
	if c.TextColumn == "" {
		c.TextColumn = DefaultTextColumn
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
}

// OutputFormat resolves the configured format, falling back to the output
// file extension.
func (c Config) OutputFormat() (Format, error) {
	if strings.TrimSpace(c.Format) == "" {
		return FormatFromPath(c.Output), nil
	}
	return ParseFormat(c.Format)
}

// NewViper returns a viper instance with defaults and env bindings for
// every Config key.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("input", defaultInputPath)
	v.SetDefault("output", defaultOutputPath)
	v.SetDefault("text_column", DefaultTextColumn)
	v.SetDefault("format", "")
	v.SetDefault("workers", 1)
	v.SetDefault("rules_file", "")
	v.SetDefault("model", defaultModel)
	v.SetDefault("debug", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configuration into v. An explicit path must exist;
// otherwise admatrix.yaml is looked up in . and ./config and may be absent.
// It returns the config file used, if any.
func LoadConfig(v *viper.Viper, path string) (Config, string, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, "", fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, used, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, used, nil
}

// SaveConfig persists cfg as YAML.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = configName + ".yaml"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
