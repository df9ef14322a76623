// Package main is the entry point for the restmon CLI.
//
// restmon can be used either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	restmon run -c config.yaml       # Sweep all endpoints once
//	restmon run -c config.yaml --every 30s
//	restmon validate -c config.yaml  # Validate configuration
//	restmon version                  # Show version info
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "restmon",
	Short: "A lightweight synthetic REST endpoint monitor",
	Long: `restmon actively polls a set of HTTP endpoints sharing one base URI,
measuring round-trip time and logging response content as structured
key=value records.

Quick start:
  1. Create a config file (restmon.yaml)
  2. Run: restmon run -c restmon.yaml
  3. Read the log records, one per endpoint

Example config:
  base_uri: https://api.example.com
  environment: staging
  endpoints:
    - /health
    - /status`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this restmon binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("restmon %s\n", version)
		cmd.Printf("  commit: %s\n", commit)
		cmd.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
