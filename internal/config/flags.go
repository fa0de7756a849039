package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/clipvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the history database file (default from Config)
//	-s string   path to the settings JSON file (default from Config)
//	-k string   credential-store service name (default from Config)
//	-p int      clipboard poll interval in milliseconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-k", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the history database file")
	fs.StringVar(&cfg.SettingsPath, "s", cfg.SettingsPath, "path to the settings JSON file")
	fs.StringVar(&cfg.KeyringService, "k", cfg.KeyringService, "credential-store service name for the master key")
	pollInterval := fs.Int("p", int(cfg.PollInterval.Milliseconds()), "clipboard poll interval (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Millisecond
}
