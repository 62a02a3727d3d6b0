// Package main provides the resume_optimizer command: the HTTP API server and
// one-shot commands for each optimization step.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_optimizer",
	Short: "Resume Optimizer CLI and HTTP API server",
	Long: `Resume Optimizer reads a job posting and a résumé, extracts their structured data,
scores their compatibility and writes an optimized résumé for the job.

Extraction uses the Gemini API when GEMINI_API_KEY is set and falls back to
deterministic local extractors otherwise.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

var (
	configPath string
	apiKey     string
	localOnly  bool
	verbose    bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	flags.BoolVar(&localOnly, "local", false, "Never call the LLM; use the local extractors only")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// initLogging sends logs to stderr so command output stays clean on stdout.
func initLogging(cmd *cobra.Command, _ []string) error {
	level := config.GetEnv(config.EnvLogLevel, "info")
	if verbose {
		level = "debug"
	}
	logging.InitWithWriter(cmd.ErrOrStderr(), level)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
