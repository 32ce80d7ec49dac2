package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
db:
  host: localhost
  user: habit
  name: habitdb
jwt:
  secret: file-secret
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.Lookahead.Duration)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.Period.Duration)
	assert.Equal(t, 5*time.Second, cfg.Scheduler.NotifyTimeout.Duration)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.DedupTTL.Duration)
	assert.Equal(t, 3, cfg.Scheduler.ReportUTCOffsetHours)
}

func TestLoadParsesDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
scheduler:
  lookahead: 15m
  period: 5m
  notify_timeout: 2s
  report_utc_offset_hours: -5
`))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Scheduler.Lookahead.Duration)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.Period.Duration)
	assert.Equal(t, 2*time.Second, cfg.Scheduler.NotifyTimeout.Duration)
	assert.Equal(t, -5, cfg.Scheduler.ReportUTCOffsetHours)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, minimalYAML+`
scheduler:
  period: soon
`))
	assert.Error(t, err)
}

func TestLoadRejectsMissingRequired(t *testing.T) {
	_, err := Load(writeConfig(t, `
db:
  host: localhost
  user: habit
  name: habitdb
`))
	assert.Error(t, err, "jwt secret is required")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("SERVER_PORT", ":9090")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReportZone(t *testing.T) {
	s := SchedulerConfig{ReportUTCOffsetHours: 3}

	utc := time.Date(2024, 1, 17, 7, 39, 0, 0, time.UTC)
	local := utc.In(s.ReportZone())
	assert.Equal(t, 10, local.Hour())
	assert.Equal(t, 39, local.Minute())
}
