package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/extreports/internal/ports"
)

// EnvPrefix is prepended to every environment override, e.g. SERENITY_REPORTS.
const EnvPrefix = "SERENITY"

// Failure policies understood by the report dispatcher.
const (
	FailFast   = "fail-fast"
	CollectAll = "collect-all"
)

// Settings is the effective configuration of one reports invocation.
// Empty directory fields mean "not supplied".
type Settings struct {
	OutputDirectory     string         `mapstructure:"output_directory"`
	SourceDirectory     string         `mapstructure:"source_directory"`
	RequirementsBaseDir string         `mapstructure:"requirements_base_dir"`
	ProjectKey          string         `mapstructure:"project_key"`
	Reports             string         `mapstructure:"reports"`
	ProjectDir          string         `mapstructure:"project_dir"`
	ClassesDirs         []string       `mapstructure:"classes_dirs" validate:"dive,nonblank"`
	FailurePolicy       string         `mapstructure:"failure_policy" validate:"oneof=fail-fast collect-all"`
	Defaults            DefaultsConfig `mapstructure:"defaults"`
	Log                 LogConfig      `mapstructure:"log"`
}

// DefaultsConfig holds the build-wide fallbacks used when an invocation leaves
// a directory unset.
type DefaultsConfig struct {
	// OutputDir is relative to the project directory unless absolute.
	OutputDir string `mapstructure:"output_directory" validate:"nonblank"`
}

// OutputDirectory implements ports.Configuration.
func (d DefaultsConfig) OutputDirectory() string {
	return d.OutputDir
}

var _ ports.Configuration = DefaultsConfig{}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Settings {
	return &Settings{
		ProjectKey:    "default",
		ClassesDirs:   []string{"target/classes", "target/test-classes"},
		FailurePolicy: FailFast,
		Defaults: DefaultsConfig{
			OutputDir: "target/site/serenity",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers every key with v so environment overrides resolve
// during Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output_directory", defaults.OutputDirectory)
	v.SetDefault("source_directory", defaults.SourceDirectory)
	v.SetDefault("requirements_base_dir", defaults.RequirementsBaseDir)
	v.SetDefault("project_key", defaults.ProjectKey)
	v.SetDefault("reports", defaults.Reports)
	v.SetDefault("project_dir", defaults.ProjectDir)
	v.SetDefault("classes_dirs", defaults.ClassesDirs)
	v.SetDefault("failure_policy", defaults.FailurePolicy)

	v.SetDefault("defaults.output_directory", defaults.Defaults.OutputDir)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

// New builds a viper instance layered as defaults < config file < environment.
// Command-line flags are bound by the caller. An empty configFile searches the
// working directory for extreports.yaml and tolerates its absence.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("extreports")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// Load reads the effective settings from v and validates them.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	s.FailurePolicy = strings.ToLower(strings.TrimSpace(s.FailurePolicy))

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate performs schema validation on the settings.
func Validate(s *Settings) error {
	if s == nil {
		return convertValidationError(errors.New("settings are nil"))
	}
	return convertValidationError(validatorInstance().Struct(s))
}
