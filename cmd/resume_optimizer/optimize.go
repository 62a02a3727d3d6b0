package main

import (
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/server"
	"github.com/spf13/cobra"
)

// Output formats of the optimize command.
const (
	formatJSON = "json"
	formatText = "text"
)

var optimizeFormat string

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Run the full optimization end-to-end",
	Long: `Orchestrates the whole process: job ingestion and profile extraction run
concurrently, then the compatibility assessment and the optimized résumé follow.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runOptimize,
}

func init() {
	addJobFlags(optimizeCmd)
	addResumeFlag(optimizeCmd)
	addOutputFlag(optimizeCmd)
	optimizeCmd.Flags().StringVar(&optimizeFormat, "format", formatJSON, "Output format: json (all artifacts) or text (the optimized résumé only)")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	if optimizeFormat != formatJSON && optimizeFormat != formatText {
		return fmt.Errorf("invalid --format %q: must be %s or %s", optimizeFormat, formatJSON, formatText)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := requireJob(cfg); err != nil {
		return err
	}
	if err := requireResume(cfg); err != nil {
		return err
	}
	jobText, err := readJobText(cfg)
	if err != nil {
		return err
	}
	resumeText, err := readResume(cfg.Resume)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := logging.Logger()
	s := newStrategy(ctx, cfg)
	defer closeStrategy(s)

	result, err := pipeline.Run(ctx, s, pipeline.RunOptions{
		JobText:    jobText,
		JobURL:     cfg.JobURL,
		ResumeText: resumeText,
		Ingestion:  urlOptions(cfg),
		Logger:     logger,
		OnProgress: func(event pipeline.ProgressEvent) {
			logger.Debug(event.Message, "step", event.Step)
		},
	})
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintJobPosting(result.Job, result.Extraction)
		printer.PrintProfile(result.Profile)
		printer.PrintAssessment(result.Assessment)
	}

	if optimizeFormat == formatText {
		return writeOutput(cmd, cfg.Output, []byte(result.Resume.Content+"\n"))
	}
	return writeJSON(cmd, cfg.Output, server.OptimizeResponse{
		Job:        result.Job,
		Extraction: result.Extraction,
		Profile:    result.Profile,
		Assessment: result.Assessment,
		Resume:     result.Resume,
	})
}
