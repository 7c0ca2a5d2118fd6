package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/keysweep/internal/constants"
	"github.com/mrz1836/keysweep/internal/errors"
)

// newViperInstance creates a Viper instance with the KEYSWEEP_ env prefix,
// the "." to "_" key replacer, and all defaults registered.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption decodes duration strings ("90s") and comma separated
// env values ("-O2,-g") into their typed fields.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
//
// explicitPath, when non-empty, replaces the project config file and must
// exist. Missing global and project files are not errors.
func Load(ctx context.Context, explicitPath string) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if explicitPath != "" {
		if err := mergeConfigFile(v, explicitPath); err != nil {
			return nil, err
		}
	} else if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	cfg, err := unmarshalAndValidate(v)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()
	logger.Debug().
		Int("sweep.start", cfg.Sweep.Start).
		Int("sweep.end", cfg.Sweep.End).
		Int("sweep.workers", cfg.Sweep.Workers).
		Str("build.compiler", cfg.Build.Compiler).
		Str("build.output", cfg.Build.Output).
		Str("config_file", v.ConfigFileUsed()).
		Msg("configuration loaded")

	return cfg, nil
}

// loadGlobalConfig reads ~/.keysweep/config.yaml if it exists.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil || !FileExists(path) {
		return nil //nolint:nilerr // a missing home directory just skips the global layer
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges .keysweep/config.yaml if it exists.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !FileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

// mergeConfigFile merges an explicitly requested config file.
func mergeConfigFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "config file %s", path)
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	return nil
}

// LoadFromPaths loads configuration from specific file paths, for tests.
// Either path can be empty to skip that level.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// LoadWithOverrides loads configuration and applies CLI flag overrides.
// Only non-zero override values are applied. Boolean fields cannot be
// reset to false this way; the CLI applies those when the flag changed.
func LoadWithOverrides(ctx context.Context, explicitPath string, overrides *Config) (*Config, error) {
	cfg, err := Load(ctx, explicitPath)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// setDefaults registers every key with its default so that env overrides
// and Unmarshal see the full key set.
// IMPORTANT: Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("sweep.start", def.Sweep.Start)
	v.SetDefault("sweep.end", def.Sweep.End)
	v.SetDefault("sweep.workers", def.Sweep.Workers)

	v.SetDefault("build.compiler", def.Build.Compiler)
	v.SetDefault("build.flags", def.Build.Flags)
	v.SetDefault("build.output", def.Build.Output)
	v.SetDefault("build.sources", def.Build.Sources)
	v.SetDefault("build.link_flags", def.Build.LinkFlags)
	v.SetDefault("build.define", def.Build.Define)
	v.SetDefault("build.timeout", "0s")
	v.SetDefault("build.work_dir", "")

	v.SetDefault("run.timeout", "0s")

	v.SetDefault("report.dir", def.Report.Dir)
	v.SetDefault("report.prefix", def.Report.Prefix)
	v.SetDefault("report.persist_diagnostics", false)
}

// applyOverrides merges non-zero override values into cfg.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Sweep.Start != 0 {
		cfg.Sweep.Start = overrides.Sweep.Start
	}
	if overrides.Sweep.End != 0 {
		cfg.Sweep.End = overrides.Sweep.End
	}
	if overrides.Sweep.Workers != 0 {
		cfg.Sweep.Workers = overrides.Sweep.Workers
	}

	if overrides.Build.Compiler != "" {
		cfg.Build.Compiler = overrides.Build.Compiler
	}
	if overrides.Build.Output != "" {
		cfg.Build.Output = overrides.Build.Output
	}
	if overrides.Build.WorkDir != "" {
		cfg.Build.WorkDir = overrides.Build.WorkDir
	}
	if overrides.Build.Timeout != 0 {
		cfg.Build.Timeout = overrides.Build.Timeout
	}

	if overrides.Run.Timeout != 0 {
		cfg.Run.Timeout = overrides.Run.Timeout
	}

	if overrides.Report.Dir != "" {
		cfg.Report.Dir = overrides.Report.Dir
	}
	if overrides.Report.Prefix != "" {
		cfg.Report.Prefix = overrides.Report.Prefix
	}
	if overrides.Report.PersistDiagnostics {
		cfg.Report.PersistDiagnostics = true
	}
}
