package main

import (
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé against a job posting",
	Long:  "Extract the job posting, then print the compatibility score, matched and missing skills, strengths and improvements as JSON.",
	RunE:  runAnalyze,
}

func init() {
	addJobFlags(analyzeCmd)
	addResumeFlag(analyzeCmd)
	addOutputFlag(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
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
	s := newStrategy(ctx, cfg)
	defer closeStrategy(s)

	result, err := pipeline.ParseJob(ctx, s, pipeline.RunOptions{
		JobText:   jobText,
		JobURL:    cfg.JobURL,
		Ingestion: urlOptions(cfg),
	})
	if err != nil {
		return fmt.Errorf("failed to parse job: %w", err)
	}

	assessment, err := s.AssessCompatibility(ctx, resumeText, ranking.JobInputFrom(result.Job))
	if err != nil {
		return fmt.Errorf("failed to assess compatibility: %w", err)
	}
	return writeJSON(cmd, cfg.Output, assessment)
}
