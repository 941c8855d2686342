// Package config provides configuration management for keywordmerge using
// Viper for loading from files, environment variables, and command-line flags.
//
// Every setting has a default that reproduces the plain batch run: read
// res_1.txt and res_2.txt, keep categories matching ^C\d+$, and write
// combined_result.json. A .keywordmerge.yml file or KEYWORDMERGE_ environment
// variables override individual keys.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	mergeerrors "github.com/conneroisu/keywordmerge/internal/errors"
	"github.com/conneroisu/keywordmerge/internal/logging"
	"github.com/spf13/viper"
)

// Supported values for enumerated settings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	SplitterRegex = "regex"
	SplitterDepth = "depth"

	DefaultOutputPath      = "combined_result.json"
	DefaultCategoryPattern = `^C\d+$`
	DefaultIndent          = 2
	MaxIndent              = 8
	DefaultMaxErrors       = 20
)

// DefaultInputs are the input files read when none are configured.
var DefaultInputs = []string{"res_1.txt", "res_2.txt"}

type Config struct {
	Inputs          []string       `json:"inputs" yaml:"inputs" mapstructure:"inputs"`
	Output          OutputConfig   `json:"output" yaml:"output" mapstructure:"output"`
	CategoryPattern string         `json:"category_pattern" yaml:"category_pattern" mapstructure:"category_pattern"`
	Fallback        FallbackConfig `json:"fallback" yaml:"fallback" mapstructure:"fallback"`
	Input           InputConfig    `json:"input" yaml:"input" mapstructure:"input"`
	Log             LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
	Report          ReportConfig   `json:"report" yaml:"report" mapstructure:"report"`
}

type OutputConfig struct {
	Path   string `json:"path" yaml:"path" mapstructure:"path"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
	Indent int    `json:"indent" yaml:"indent" mapstructure:"indent"`
}

type FallbackConfig struct {
	Splitter string `json:"splitter" yaml:"splitter" mapstructure:"splitter"`
}

type InputConfig struct {
	NormalizeUnicode bool `json:"normalize_unicode" yaml:"normalize_unicode" mapstructure:"normalize_unicode"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ReportConfig controls the line error report printed with --verbose.
// MaxErrors caps how many errors are kept; zero keeps all of them.
type ReportConfig struct {
	MaxErrors int `json:"max_errors" yaml:"max_errors" mapstructure:"max_errors"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Inputs: append([]string(nil), DefaultInputs...),
		Output: OutputConfig{
			Path:   DefaultOutputPath,
			Format: FormatJSON,
			Indent: DefaultIndent,
		},
		CategoryPattern: DefaultCategoryPattern,
		Fallback:        FallbackConfig{Splitter: SplitterDepth},
		Log:             LogConfig{Level: "info", Format: "text"},
		Report:          ReportConfig{MaxErrors: DefaultMaxErrors},
	}
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("inputs", d.Inputs)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("category_pattern", d.CategoryPattern)
	v.SetDefault("fallback.splitter", d.Fallback.Splitter)
	v.SetDefault("input.normalize_unicode", d.Input.NormalizeUnicode)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("report.max_errors", d.Report.MaxErrors)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v, fills defaults for unset keys and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, mergeerrors.WrapConfig(err, mergeerrors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	// Inputs from the environment arrive as one comma-separated string
	var inputs []string
	for _, in := range config.Inputs {
		inputs = append(inputs, splitList(in)...)
	}
	config.Inputs = inputs

	if len(config.Inputs) == 0 {
		config.Inputs = append([]string(nil), DefaultInputs...)
	}
	if config.Output.Path == "" {
		config.Output.Path = DefaultOutputPath
	}
	if config.Output.Format == "" {
		config.Output.Format = FormatJSON
	}
	if !v.IsSet("output.indent") {
		config.Output.Indent = DefaultIndent
	}
	if !v.IsSet("report.max_errors") {
		config.Report.MaxErrors = DefaultMaxErrors
	}
	if config.CategoryPattern == "" {
		config.CategoryPattern = DefaultCategoryPattern
	}
	if config.Fallback.Splitter == "" {
		config.Fallback.Splitter = SplitterDepth
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	config.Output.Format = strings.ToLower(config.Output.Format)
	config.Fallback.Splitter = strings.ToLower(config.Fallback.Splitter)
	config.Log.Format = strings.ToLower(config.Log.Format)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every setting and reports all problems at once.
func Validate(config *Config) error {
	var vec mergeerrors.ValidationErrorCollection

	if len(config.Inputs) == 0 {
		vec.AddField("inputs", config.Inputs, "at least one input file is required")
	}
	for _, path := range config.Inputs {
		if err := validatePath(path); err != nil {
			vec.AddField("inputs", path, err.Error())
		}
	}

	if err := validatePath(config.Output.Path); err != nil {
		vec.AddField("output.path", config.Output.Path, err.Error())
	}
	for _, path := range config.Inputs {
		if filepath.Clean(path) == filepath.Clean(config.Output.Path) {
			vec.AddField("output.path", config.Output.Path, "output file is also an input file",
				"choose an output path that is not listed in inputs")
		}
	}

	switch config.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		vec.AddField("output.format", config.Output.Format, "unsupported output format",
			"use one of: json, yaml")
	}

	if config.Output.Indent < 0 || config.Output.Indent > MaxIndent {
		vec.AddField("output.indent", config.Output.Indent,
			fmt.Sprintf("indent must be between 0 and %d", MaxIndent))
	}

	if _, err := regexp.Compile(config.CategoryPattern); err != nil {
		vec.AddField("category_pattern", config.CategoryPattern, "pattern does not compile: "+err.Error(),
			`the default is ^C\d+$`)
	}

	switch config.Fallback.Splitter {
	case SplitterRegex, SplitterDepth:
	default:
		vec.AddField("fallback.splitter", config.Fallback.Splitter, "unknown splitter",
			"use one of: regex, depth")
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		vec.AddField("log.level", config.Log.Level, err.Error())
	}
	switch config.Log.Format {
	case "text", "json":
	default:
		vec.AddField("log.format", config.Log.Format, "unsupported log format", "use one of: text, json")
	}

	if config.Report.MaxErrors < 0 {
		vec.AddField("report.max_errors", config.Report.MaxErrors, "max_errors cannot be negative",
			"use 0 to keep every error")
	}

	if me := vec.ToMergeError(); me != nil {
		return me
	}
	return nil
}

// CategoryRegexp compiles the category pattern. The configuration must
// have been validated.
func (c *Config) CategoryRegexp() *regexp.Regexp {
	return regexp.MustCompile(c.CategoryPattern)
}

// LoggerConfig builds the logger configuration for the run.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	level, _ := logging.ParseLevel(c.Log.Level)
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = c.Log.Format
	return lc
}

// validatePath validates a file path
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a NUL byte")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
