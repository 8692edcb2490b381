package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mlffkit/mlffkit/internal/branding"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyProjectName      = "project.name"
	KeyLayout           = "layout"
	KeyGitInit          = "git.init"
	KeyGitInitialBranch = "git.initial_branch"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeyProjectName, KeyLayout, KeyGitInit, KeyGitInitialBranch}

var boolKeys = []string{KeyGitInit}

// Dir returns the path to the config directory. The <PREFIX>_HOME environment
// variable takes precedence over ~/.mlffkit/.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.mlffkit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error; an unreadable or malformed one is.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyGitInit, true)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key. Unlike viper.GetBool, a
// value that does not parse as a boolean is an error rather than false.
func GetBool(key string) (bool, error) {
	b, err := cast.ToBoolE(viper.Get(key))
	if err != nil {
		return false, fmt.Errorf("config key %q: invalid boolean %q", key, viper.GetString(key))
	}
	return b, nil
}

// Set writes a config key-value pair and saves the config file. Only the keys
// in Keys are accepted, and boolean keys must hold a boolean.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys, ", "))
	}

	var v any = value
	if slices.Contains(boolKeys, key) {
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		v = b
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, v)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Reset clears all loaded settings. Used between test cases.
func Reset() {
	viper.Reset()
}
