package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsm/pkg/config"
)

type defaultsConfig struct {
	Definition string `env:"FSM_TEST_DEFAULT_DEFINITION" envDefault:"fsm.yaml"`
	Verbose    bool   `env:"FSM_TEST_DEFAULT_VERBOSE" envDefault:"true"`
	Retries    int    `env:"FSM_TEST_DEFAULT_RETRIES" envDefault:"3"`
}

type successConfig struct {
	Definition string `env:"FSM_TEST_SUCCESS_DEFINITION"`
	Retries    int    `env:"FSM_TEST_SUCCESS_RETRIES"`
}

type cachedConfig struct {
	Value string `env:"FSM_TEST_CACHED" envDefault:"default"`
}

type requiredConfig struct {
	Required string `env:"FSM_TEST_REQUIRED,required"`
}

type envFileConfig struct {
	Definition   string   `env:"FSM_TEST_DEFINITION"`
	Level        string   `env:"FSM_TEST_LEVEL"`
	Tags         []string `env:"FSM_TEST_TAGS" envSeparator:","`
	Quoted       string   `env:"FSM_TEST_QUOTED"`
	OnlyOverride string   `env:"FSM_TEST_ONLY_OVERRIDE"`
}

func unsetEnvFileVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"FSM_TEST_DEFINITION", "FSM_TEST_LEVEL", "FSM_TEST_TAGS",
		"FSM_TEST_QUOTED", "FSM_TEST_ONLY_OVERRIDE",
	}
	unset := func() {
		for _, v := range vars {
			os.Unsetenv(v)
		}
	}
	unset()
	t.Cleanup(unset)
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("FSM_TEST_SUCCESS_DEFINITION", "custom.yaml")
	t.Setenv("FSM_TEST_SUCCESS_RETRIES", "7")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "custom.yaml", cfg.Definition)
	assert.Equal(t, 7, cfg.Retries)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("FSM_TEST_DEFAULT_DEFINITION")
	os.Unsetenv("FSM_TEST_DEFAULT_VERBOSE")
	os.Unsetenv("FSM_TEST_DEFAULT_RETRIES")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "fsm.yaml", cfg.Definition)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 3, cfg.Retries)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("FSM_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("FSM_TEST_CACHED", "second")

	var cached cachedConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "first", cached.Value, "Load should serve the cached copy")

	var reloaded cachedConfig
	require.NoError(t, config.ForceReload(&reloaded))
	assert.Equal(t, "second", reloaded.Value)

	var afterReload cachedConfig
	require.NoError(t, config.Load(&afterReload))
	assert.Equal(t, "second", afterReload.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("FSM_TEST_REQUIRED")
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrParsingConfig))

	// A failed parse is not cached.
	t.Setenv("FSM_TEST_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Required)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *successConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.ErrorIs(t, config.ForceReload(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("FSM_TEST_REQUIRED")
	config.ResetCache()

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
	assert.NotPanics(t, func() {
		var cfg defaultsConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	unsetEnvFileVars(t)

	require.NoError(t, config.LoadEnv("testdata/.env.base"))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_base.yaml", cfg.Definition)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Empty(t, cfg.OnlyOverride)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unsetEnvFileVars(t)

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_override.yaml", cfg.Definition)
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "yes", cfg.OnlyOverride)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/missing.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/missing.env")
	})
	assert.NotPanics(t, func() {
		unsetEnvFileVars(t)
		config.MustLoadEnv("testdata/.env.base")
	})
}
