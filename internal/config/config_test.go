package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadWithFile_Defaults(t *testing.T) {
	cfg, err := LoadWithFile(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.Accounting.MaxGapHours)
	assert.Equal(t, 1.0, cfg.Accounting.MaxGapCredit)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce.Duration())
	assert.False(t, cfg.GitHub.Token.IsSet())
}

func TestLoadWithFile_YAMLValues(t *testing.T) {
	path := writeConfigFile(t, `
accounting:
  max_gap_hours: 6.0
  max_gap_credit: 0.5
output:
  format: json
logging:
  level: debug
  format: json
`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 6.0, cfg.Accounting.MaxGapHours)
	assert.Equal(t, 0.5, cfg.Accounting.MaxGapCredit)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
accounting:
  max_gap_hours: 6.0
`)
	t.Setenv("SREDLOG_ACCOUNTING_MAX_GAP_HOURS", "8.0")
	t.Setenv("SREDLOG_GITHUB_TOKEN", "ghp_test")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, cfg.Accounting.MaxGapHours)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token.Value())
}

func TestLoadWithFile_RejectsInsecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0644))

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoadWithFile_RejectsBadFormat(t *testing.T) {
	path := writeConfigFile(t, "output:\n  format: xml\n")

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestLoadWithFile_ExplicitZeroGapCreditKept(t *testing.T) {
	path := writeConfigFile(t, `
accounting:
  max_gap_credit: 0
`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	// An explicit zero is a legal no-credit policy and must not be
	// rewritten to the default.
	assert.Equal(t, 0.0, cfg.Accounting.MaxGapCredit)
	assert.Equal(t, 4.0, cfg.Accounting.MaxGapHours)
}

func TestConfigValidate_GapPolicy(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg, koanf.New("."))
	require.NoError(t, cfg.Validate())

	cfg.Accounting.MaxGapHours = -1
	require.Error(t, cfg.Validate())
}

func TestSecret_RedactedInSerialization(t *testing.T) {
	s := Secret("ghp_supersecret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "ghp_supersecret", s.Value())

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "supersecret")
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	require.Error(t, d.UnmarshalText([]byte("-5s")))
	require.Error(t, d.UnmarshalText([]byte("bogus")))
}
