package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"job_url": "https://example.com/vaga",
		"resume": "cv.txt",
		"local_only": true,
		"timeout_seconds": 5,
		"scoring": {"compatibility": {"skill": 0.7, "requirement": 0.3, "keyword_bonus": 2, "baseline": 40}}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/vaga", cfg.JobURL)
	assert.Equal(t, "cv.txt", cfg.Resume)
	assert.True(t, cfg.LocalOnly)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	require.NotNil(t, cfg.Scoring)
	require.NotNil(t, cfg.Scoring.Compatibility)
	assert.Equal(t, 40.0, cfg.Scoring.Compatibility.Baseline)
	assert.Nil(t, cfg.Scoring.Confidence)

	path = writeFile(t, "partial.json", `{"scoring": {"compatibility": {"skill": 0.7}}}`)
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ranking.Weights{Skill: 0.7, Requirement: 0.4, KeywordBonus: 5, Baseline: 50}, *cfg.Scoring.Compatibility)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"empty path", "", "config path is empty"},
		{"missing file", "/nonexistent/path/config.json", "failed to read config file"},
		{"invalid json", writeFile(t, "bad.json", "{ invalid json }"), "failed to parse config JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	jobFile := writeFile(t, "job.txt", "Vaga: Dev")
	negative := -1.0

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "job file exists", cfg: Config{Job: jobFile}},
		{name: "job and url", cfg: Config{Job: jobFile, JobURL: "https://example.com"}, wantErr: "mutually exclusive"},
		{name: "missing job file", cfg: Config{Job: "/nope/job.txt"}, wantErr: "job file not found"},
		{name: "missing resume file", cfg: Config{Resume: "/nope/cv.txt"}, wantErr: "resume file not found"},
		{name: "negative timeout", cfg: Config{TimeoutSeconds: -1}, wantErr: "timeout_seconds"},
		{name: "negative optimize timeout", cfg: Config{OptimizeSeconds: -1}, wantErr: "optimize_seconds"},
		{
			name:    "invalid scoring",
			cfg:     Config{Scoring: &Scoring{Compatibility: &ranking.Weights{Skill: negative}}},
			wantErr: "non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	scoring := &Scoring{}
	flags := Config{JobURL: "https://flag.example.com", Verbose: true}
	file := Config{
		JobURL:          "https://file.example.com",
		Resume:          "cv.txt",
		APIKey:          "file-key",
		TimeoutSeconds:  7,
		OptimizeSeconds: 9,
		Scoring:         scoring,
		LocalOnly:       true,
	}

	merged := flags.MergeWithDefaults(file)

	assert.Equal(t, "https://flag.example.com", merged.JobURL, "flag wins")
	assert.Equal(t, "cv.txt", merged.Resume)
	assert.Equal(t, "file-key", merged.APIKey)
	assert.Equal(t, 7, merged.TimeoutSeconds)
	assert.Equal(t, 9, merged.OptimizeSeconds)
	assert.Same(t, scoring, merged.Scoring)
	assert.True(t, merged.Verbose)
	assert.False(t, merged.LocalOnly, "bools are never merged")
	assert.Empty(t, flags.Resume, "receiver is not modified")
}

func TestStrategyConfig(t *testing.T) {
	cfg := Config{APIKey: "k", LocalOnly: true, TimeoutSeconds: 3, OptimizeSeconds: 4}
	sc := cfg.StrategyConfig()

	assert.Equal(t, "k", sc.APIKey)
	assert.True(t, sc.LocalOnly)
	assert.Equal(t, 3*time.Second, sc.Timeout)
	assert.Equal(t, 4*time.Second, sc.OptimizeTimeout)
	assert.Equal(t, strategy.DefaultScoring(), sc.Scoring)
}
