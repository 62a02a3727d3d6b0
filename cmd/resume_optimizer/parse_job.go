package main

import (
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/server"
	"github.com/spf13/cobra"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Extract a structured job posting from a text file or a link",
	Long: `Read a job posting from a text file (--job) or fetch it from a link (--job-url)
and print the extracted title, company, skills and requirements as JSON. Links also
report the extraction source and confidence.`,
	RunE: runParseJob,
}

func init() {
	addJobFlags(parseJobCmd)
	addOutputFlag(parseJobCmd)
	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := requireJob(cfg); err != nil {
		return err
	}
	jobText, err := readJobText(cfg)
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
	return writeJSON(cmd, cfg.Output, server.ParseJobResponse{Job: result.Job, Extraction: result.Extraction})
}
