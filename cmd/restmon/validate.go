package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kkirsche/restmon/config"
)

// validateCmd validates a config file without polling anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a restmon configuration file without issuing any requests.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  restmon validate -c config.yaml
  restmon validate --config /etc/restmon/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	auth := "none"
	if !cfg.Auth.Empty() {
		auth = "basic (" + cfg.Auth.Username + ")"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Base URI:    %s\n", cfg.BaseURI)
	fmt.Printf("  Environment: %s\n", cfg.Environment)
	fmt.Printf("  Timeout:     %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Auth:        %s\n", auth)
	fmt.Printf("  Endpoints:   %d\n", len(cfg.Endpoints))

	return nil
}
