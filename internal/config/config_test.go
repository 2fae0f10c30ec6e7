package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masterly/internal/llm"
)

func TestResolveOverridesWin(t *testing.T) {
	dir := t.TempDir()
	env := map[string]string{
		"MASTERLY_LOG_FILE":  filepath.Join(dir, "env.log"),
		"MASTERLY_LOG_LEVEL": "warn",
		"MASTERLY_LOG_MODE":  "dev",
	}
	cfg, err := resolve(Overrides{
		DBPath:   filepath.Join(dir, "nested", "m.db"),
		LogFile:  filepath.Join(dir, "flag.log"),
		LogLevel: "debug",
	}, func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "nested", "m.db"), cfg.DBPath)
	assert.DirExists(t, filepath.Join(dir, "nested"))
	assert.Equal(t, filepath.Join(dir, "flag.log"), cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "dev", cfg.Log.Mode)
	assert.False(t, cfg.LLMConfigured)
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MASTERLY_DB", "")
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	env := map[string]string{"XDG_STATE_HOME": filepath.Join(dir, "state")}

	cfg, err := resolve(Overrides{}, func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "masterly", "masterly.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "state", "masterly", "masterly.log"), cfg.Log.File)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestResolveLLM(t *testing.T) {
	dir := t.TempDir()
	base := map[string]string{"XDG_STATE_HOME": dir}

	t.Run("explicit provider", func(t *testing.T) {
		env := map[string]string{"MASTERLY_LLM_PROVIDER": "mock"}
		for k, v := range base {
			env[k] = v
		}
		cfg, err := resolve(Overrides{DBPath: filepath.Join(dir, "a.db")}, func(k string) string { return env[k] })
		require.NoError(t, err)
		assert.True(t, cfg.LLMConfigured)
		assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider)
	})

	t.Run("discovered vendor key", func(t *testing.T) {
		env := map[string]string{"GEMINI_API_KEY": "g"}
		for k, v := range base {
			env[k] = v
		}
		cfg, err := resolve(Overrides{DBPath: filepath.Join(dir, "b.db")}, func(k string) string { return env[k] })
		require.NoError(t, err)
		assert.True(t, cfg.LLMConfigured)
		assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
		assert.Equal(t, "g", cfg.LLM.Gemini.APIKey)
	})
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MASTERLY_LOG_LEVEL=error\n"), 0o644))
	t.Setenv("MASTERLY_LOG_LEVEL", "")
	os.Unsetenv("MASTERLY_LOG_LEVEL")
	t.Setenv("XDG_STATE_HOME", dir)

	cfg, err := Load(Overrides{DBPath: filepath.Join(dir, "x.db"), EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadMissingEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	_, err := Load(Overrides{DBPath: filepath.Join(dir, "x.db"), EnvFile: filepath.Join(dir, "absent.env")})
	assert.NoError(t, err)
}
