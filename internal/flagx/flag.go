// Package flagx holds command-line helpers that let several flag sets share
// one argument list: global settings, the JSON config path and per-command flags.
package flagx

import (
	"errors"
	"flag"
	"strings"
)

var ErrNoCommand = errors.New("no command given")

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//
// As with the flag package, "-name" and "--name" are the same flag, and
// nothing after a bare "--" is treated as a flag. A token that follows an
// allowed flag and does not start with '-' is taken as that flag's value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[flagName(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, inline := strings.Cut(arg, "=")
		if _, ok := allowed[flagName(name)]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		if !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

func flagName(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "-"), "-")
}

// JsonConfigFlags extracts the config file path given via -c or -config.
// Other arguments are ignored. An empty string means no file was given.
func JsonConfigFlags(args []string) string {
	var config string

	filtered := FilterArgs(args, []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(filtered)

	return config
}

// SplitCommand returns the leading command word and the remaining arguments.
//
//	credkeeper create -u alice -d postgres://...
//	           ^^^^^^ command
func SplitCommand(args []string) (string, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", args, ErrNoCommand
	}
	return args[0], args[1:], nil
}
