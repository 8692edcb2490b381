// Package config manages user-level settings stored at ~/.mlffkit/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default project name, a custom layout path, and git initialization
// preferences. Every key can be overridden with an MLFFKIT_* environment variable.
package config
