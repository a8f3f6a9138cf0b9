package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inDir runs the test from an empty directory so no quizflow.yaml is picked up.
func inDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inDir(t)

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, []string{"*"}, c.HTTP.Origins)
	assert.Equal(t, BackendMemory, c.Store.Backend)
	assert.Equal(t, FormatFiles, c.Quizzes.Format)
	assert.Equal(t, 24*time.Hour, c.Store.Redis.TTL)
	assert.Equal(t, "en", c.Locale.Lang)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := inDir(t)
	cfg := filepath.Join(dir, "quizflow.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
log:
  level: debug
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 1h
quizzes:
  dir: decks
`), 0o644))

	t.Setenv("QUIZFLOW_QUIZZES_DIR", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level=warn"}))

	c, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Log.Level, "flag wins over file")
	assert.Equal(t, "from-env", c.Quizzes.Dir, "env wins over file")
	assert.Equal(t, BackendRedis, c.Store.Backend)
	assert.Equal(t, "redis:6379", c.Store.Redis.Addr)
	assert.Equal(t, time.Hour, c.Store.Redis.TTL)
}

func TestLoad_UnsetFlagKeepsDefault(t *testing.T) {
	inDir(t)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("store", "memory", "")
	flags.String("addr", ":8080", "")
	require.NoError(t, flags.Parse(nil))

	t.Setenv("QUIZFLOW_STORE_BACKEND", "sqlite")
	c, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, c.Store.Backend)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := inDir(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	inDir(t)
	t.Setenv("QUIZFLOW_STORE_BACKEND", "postgres")
	_, err := Load("", nil)
	assert.ErrorContains(t, err, "unknown store backend")
}
