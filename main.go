// pingback — startup version pingback and announcement cache
//
// Usage:
//
//	pingback ping    — report version and platform, cache the announcement
//	pingback url     — print the URL a ping would request
//	pingback show    — print the cached announcement
//	pingback history — list recent pingback attempts
//	pingback serve   — run a local announcement endpoint
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pingback/cmd/edit"
	"pingback/cmd/history"
	"pingback/cmd/ping"
	"pingback/cmd/serve"
	"pingback/cmd/show"
	"pingback/pkg/config"
)

const (
	defaultUserPath  = "~/.config/pingback/config.toml"
	defaultLocalPath = "config.toml"
	version          = "1.0.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	configPath := ""

	// Parse --config flag if present
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" && i+1 < len(args) {
			configPath = args[i+1]
			args = append(args[:i], args[i+2:]...)
			i--
			continue
		}
		if len(arg) > 9 && arg[:9] == "--config=" {
			configPath = arg[9:]
			args = append(args[:i], args[i+1:]...)
			i--
			continue
		}
	}

	// Auto-discover config if not specified
	if configPath == "" {
		if _, err := os.Stat(defaultLocalPath); err == nil {
			configPath = defaultLocalPath
		} else {
			configPath = filepath.Clean(config.ExpandPath(defaultUserPath))
		}
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	subcommand := args[0]
	var err error

	switch subcommand {
	case "ping":
		err = ping.Run(configPath, versionArg(args))
	case "url":
		err = ping.URL(configPath, versionArg(args))
	case "show":
		err = show.Run(configPath)
	case "history":
		limit := 20
		if len(args) > 1 {
			limit, err = strconv.Atoi(args[1])
			if err != nil {
				err = fmt.Errorf("invalid history limit %q", args[1])
				break
			}
		}
		err = history.Run(configPath, limit)
	case "serve":
		err = serve.Run(configPath)
	case "edit":
		err = edit.Run(configPath)
	case "version":
		fmt.Printf("pingback v%s\n", version)
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionArg returns the version to report: the optional argument after the
// subcommand, or this binary's own version.
func versionArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return version
}

func printUsage() {
	fmt.Printf(`pingback v%s — startup version pingback and announcement cache

Usage:
  pingback <command> [--config <path>]

Commands:
  ping [version]   Report version and platform, cache the announcement
  url [version]    Print the URL a ping would request (nothing is sent)
  show             Print the cached announcement
  history [n]      List the last n pingback attempts (default 20)
  serve            Run a local announcement endpoint for testing
  edit             Edit the configuration file in your system editor
  version          Print version information
  help             Show this help message

Options:
  --config <path>  Path to config file (default: looks for ./config.toml, then %s)

Examples:
  pingback edit                 # Create and edit configuration
  pingback ping                 # Ping with this binary's version
  pingback ping "8.12 beta"     # Ping on behalf of another version
  pingback show                 # Print the latest announcement

`, version, defaultUserPath)
}
