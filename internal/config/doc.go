// Package config manages user-level settings stored at ~/.proseby/config.yaml.
// Values can be overridden with PROSEBY_* environment variables; the CLI binds
// its persistent flags (log level and format) to the same keys.
package config
