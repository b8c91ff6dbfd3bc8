package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gittrack/internal/common"
	"gittrack/pkg/errors"
)

// Backend names accepted by --backend
const (
	BackendCLI    = "cli"
	BackendNative = "native"
)

// EnvPrefix is the prefix for environment overrides, e.g. GT_BACKEND
const EnvPrefix = "GT"

// Settings are the runtime knobs of a single invocation. They are resolved
// from flags, GT_* environment variables and an optional settings file, in
// that order of precedence. They are never written back.
type Settings struct {
	ConfigFile  string `mapstructure:"config_file"`
	ChangesFile string `mapstructure:"changes_file"`
	Backend     string `mapstructure:"backend"`
	GitPath     string `mapstructure:"git_path"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Verbose     bool   `mapstructure:"verbose"`
	NoColor     bool   `mapstructure:"no_color"`
}

// NewViper returns a viper instance with defaults, env binding and the
// optional ~/.config/gt/settings.yaml search path configured.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("config_file", common.ConfigFileName)
	v.SetDefault("changes_file", common.ChangesFileName)
	v.SetDefault("backend", BackendCLI)
	v.SetDefault("git_path", "git")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("no_color", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("settings")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "gt"))
	}

	return v
}

// BindFlags binds every flag in fs to the viper key of the same name with
// dashes turned into underscores.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// LoadSettings reads the optional settings file and decodes the merged view
func LoadSettings(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "Failed to read settings file").
				WithContext("path", v.ConfigFileUsed())
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "Failed to decode settings")
	}

	s.Backend = strings.ToLower(strings.TrimSpace(s.Backend))
	switch s.Backend {
	case BackendCLI, BackendNative:
	default:
		return nil, errors.InputError("backend", fmt.Sprintf("%q is not one of %q, %q", s.Backend, BackendCLI, BackendNative))
	}

	if s.Verbose {
		s.LogLevel = "debug"
	}
	return &s, nil
}
