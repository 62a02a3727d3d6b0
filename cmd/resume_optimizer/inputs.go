package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-optimizer/internal/config"
	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/strategy"
	"github.com/spf13/cobra"
)

// Input flags shared by the one-shot commands.
var (
	jobPath    string
	jobURL     string
	resumePath string
	outputPath string
	useBrowser bool
)

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	cmd.Flags().StringVar(&jobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	cmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
}

func addResumeFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&resumePath, "resume", "r", "", "Path to résumé file (.txt, .md, .pdf, .docx)")
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Path to write the result to (defaults to stdout)")
}

// loadConfig layers command-line flags over the config file over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("job") {
		cfg.Job = jobPath
	}
	if flags.Changed("job-url") {
		cfg.JobURL = jobURL
	}
	if flags.Changed("resume") {
		cfg.Resume = resumePath
	}
	if flags.Changed("out") {
		cfg.Output = outputPath
	}
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = databaseURL
	}
	if flags.Changed("local") {
		cfg.LocalOnly = localOnly
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = useBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	cfg = cfg.MergeWithDefaults(env)
	if !flags.Changed("local") {
		cfg.LocalOnly = cfg.LocalOnly || env.LocalOnly
	}
	if !flags.Changed("use-browser") {
		cfg.UseBrowser = cfg.UseBrowser || env.UseBrowser
	}

	if cfg.Job != "" && cfg.JobURL != "" {
		return config.Config{}, fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if cfg.Verbose && !verbose {
		logging.InitWithWriter(cmd.ErrOrStderr(), "debug")
	}
	logging.Logger().Debug("configuration loaded", "config_file", configPath, "local_only", cfg.LocalOnly, "use_browser", cfg.UseBrowser)
	return cfg, nil
}

// requireJob checks that a job source was given.
func requireJob(cfg config.Config) error {
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	return nil
}

// requireResume checks that a résumé file was given.
func requireResume(cfg config.Config) error {
	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	return nil
}

func newStrategy(ctx context.Context, cfg config.Config) *strategy.Fallback {
	sc := cfg.StrategyConfig()
	sc.LLM = llm.ConfigFromEnv()
	sc.Logger = logging.Logger()
	return strategy.New(ctx, sc)
}

func closeStrategy(s *strategy.Fallback) {
	if err := s.Close(); err != nil {
		logging.Logger().Warn("failed to close strategy", "error", err)
	}
}

func urlOptions(cfg config.Config) ingestion.URLOptions {
	opts := ingestion.URLOptions{Fetch: fetch.JobPageOptions(), Logger: logging.Logger()}
	if cfg.UseBrowser {
		opts.Render = fetch.BrowserRenderer(fetch.DefaultBrowserTimeout, logging.Logger())
	}
	return opts
}

// readJobText returns the job posting file contents, or "" when a URL is used.
func readJobText(cfg config.Config) (string, error) {
	if cfg.Job == "" {
		return "", nil
	}
	data, err := os.ReadFile(cfg.Job)
	if err != nil {
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	return string(data), nil
}

// readResume converts a résumé file to text.
func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	return ingestion.ResumeText(filepath.Base(path), data)
}

// writeJSON writes v as indented JSON to path, or to the command output when
// path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return writeOutput(cmd, path, append(data, '\n'))
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
