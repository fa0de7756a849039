// Package config loads runtime configuration for the clipvault daemon.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the history database file
//	-s string   path to the settings JSON file
//	-k string   credential-store service name for the master key
//	-p int      clipboard poll interval (milliseconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "250ms" or integer nanoseconds:
//
//	{
//	  "database_path": "clipvault.db",
//	  "settings_path": "settings.json",
//	  "keyring_service": "com.dmitrijs2005.clipvault.masterkey",
//	  "keyring_account": "default",
//	  "poll_interval": "250ms"
//	}
//
// Primary API
//
//   - type Config                     — paths, keyring identity, poll interval
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
