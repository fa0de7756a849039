package config

import "time"

// Config holds runtime settings for the clipvault daemon.
//
// Fields:
//   - DatabasePath: location of the encrypted history database.
//   - SettingsPath: location of the user settings JSON file.
//   - KeyringService, KeyringAccount: identity of the master-key entry in
//     the OS credential store.
//   - PollInterval: how often the watcher checks the clipboard change counter.
type Config struct {
	DatabasePath   string
	SettingsPath   string
	KeyringService string
	KeyringAccount string
	PollInterval   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "clipvault.db"
	c.SettingsPath = "settings.json"
	c.KeyringService = "com.dmitrijs2005.clipvault.masterkey"
	c.KeyringAccount = "default"
	c.PollInterval = 250 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
