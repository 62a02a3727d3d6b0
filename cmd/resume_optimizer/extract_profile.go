package main

import (
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/profile"
	"github.com/jonathan/resume-optimizer/internal/server"
	"github.com/spf13/cobra"
)

var extractProfileCmd = &cobra.Command{
	Use:   "extract-profile",
	Short: "Extract the candidate profile from a résumé file",
	RunE:  runExtractProfile,
}

func init() {
	addResumeFlag(extractProfileCmd)
	addOutputFlag(extractProfileCmd)
	rootCmd.AddCommand(extractProfileCmd)
}

func runExtractProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := requireResume(cfg); err != nil {
		return err
	}
	text, err := readResume(cfg.Resume)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s := newStrategy(ctx, cfg)
	defer closeStrategy(s)

	p, err := s.ExtractProfile(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to extract profile: %w", err)
	}
	return writeJSON(cmd, cfg.Output, server.ExtractProfileResponse{Profile: p, Incomplete: profile.IsIncomplete(p)})
}
