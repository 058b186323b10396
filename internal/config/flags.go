package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/credkeeper/internal/flagx"
)

// GlobalFlags are the flags parseFlags understands; command flags are
// filtered out before parsing.
var GlobalFlags = []string{"-r", "-d", "-a", "-l", "-f"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   database driver ("pgx" or "sqlite")
//	-d string   database DSN
//	-a string   hash algorithm ("sha256" or "sha3-256")
//	-l string   log level
//	-f string   log format ("text" or "json")
func parseFlags(config *Config, args []string) error {
	filtered := flagx.FilterArgs(args, GlobalFlags)

	fs := flag.NewFlagSet("global", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.HashAlgorithm, "a", config.HashAlgorithm, "hash algorithm")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
