// Package config loads the project configuration from viewgen.yaml and
// VIEWGEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the configuration file name without extension.
const FileName = "viewgen"

// EnvPrefix prefixes environment overrides, e.g. VIEWGEN_LOG_LEVEL.
const EnvPrefix = "VIEWGEN"

// Config represents the view-generator configuration.
type Config struct {
	Output  OutputConfig `mapstructure:"output"`
	Log     LogConfig    `mapstructure:"log"`
	Schemas []SchemaJob  `mapstructure:"schemas"`
	Render  RenderConfig `mapstructure:"render"`
}

// OutputConfig controls generated files.
type OutputConfig struct {
	Suffix   string `mapstructure:"suffix"`
	Comments bool   `mapstructure:"comments"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// RenderConfig controls diagnostic output.
type RenderConfig struct {
	NoColor bool `mapstructure:"no_color"`
}

// SchemaJob is one source struct and its declaration body.
type SchemaJob struct {
	// Package is a go/packages pattern, e.g. "./search".
	Package string `mapstructure:"package"`
	// Type is the source struct name.
	Type string `mapstructure:"type"`
	// Views is the path of the .views file.
	Views string `mapstructure:"views"`
	// Body is an inline declaration body used when Views is empty.
	Body string `mapstructure:"body"`
	// Output overrides the output directory; the package directory by default.
	Output string `mapstructure:"output"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Suffix: "_views.go", Comments: true},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path, or viewgen.yaml from dir when path is empty. A missing
// default file is not an error.
func Load(path, dir string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("output.suffix", def.Output.Suffix)
	v.SetDefault("output.comments", def.Output.Comments)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.development", def.Log.Development)
	v.SetDefault("render.no_color", def.Render.NoColor)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if !strings.HasSuffix(cfg.Output.Suffix, ".go") {
		return fmt.Errorf("output.suffix must end in .go, got: %s", cfg.Output.Suffix)
	}

	for i, job := range cfg.Schemas {
		if job.Package == "" || job.Type == "" {
			return fmt.Errorf("schemas[%d]: package and type are required", i)
		}

		if job.Views == "" && job.Body == "" {
			return fmt.Errorf("schemas[%d]: one of views or body is required", i)
		}
	}

	return nil
}
