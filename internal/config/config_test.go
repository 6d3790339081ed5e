package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, "certprep.yaml", `
bank: /data/bank.json
db:
  driver: postgres
  dsn: postgres://localhost/certprep
log:
  level: debug
thresholds:
  part1: 0.75
  part3: 0.6
defaults:
  questions_per_exam: 50
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/data/bank.json", cfg.Bank)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 0.75, cfg.Thresholds["part1"])
	assert.Equal(t, 0.72, cfg.Thresholds["part2"])
	assert.Equal(t, 0.6, cfg.Thresholds["part3"])
	assert.Equal(t, 50, cfg.Defaults.QuestionsPerExam)
	assert.Equal(t, 1, cfg.Defaults.ExamCount)
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeFile(t, "certprep.yaml", "bank: /from/file.json\n")
	t.Setenv("CERTPREP_BANK", "/from/env.json")
	t.Setenv("CERTPREP_LOG_LEVEL", "info")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.json", cfg.Bank)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DB.Driver = "mysql"
	cfg.Thresholds["part1"] = 1.5
	cfg.Defaults.QuestionsPerExam = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db.driver must be sqlite or postgres")
	assert.Contains(t, err.Error(), "thresholds.part1 must be in (0, 1]")
	assert.Contains(t, err.Error(), "defaults.questions_per_exam must be >= 1")

	cfg = DefaultConfig()
	cfg.DB.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "db.dsn is required")
}
