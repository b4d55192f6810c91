package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dashkit/pkg/config"
)

type defaultsConfig struct {
	Addr    string        `env:"DASHBOARD_TEST_DEFAULT_ADDR" envDefault:":8080"`
	Buffer  int           `env:"DASHBOARD_TEST_DEFAULT_BUFFER" envDefault:"16"`
	Timeout time.Duration `env:"DASHBOARD_TEST_DEFAULT_TIMEOUT" envDefault:"5s"`
}

type overrideConfig struct {
	Addr    string        `env:"DASHBOARD_TEST_OVERRIDE_ADDR" envDefault:":8080"`
	Debug   bool          `env:"DASHBOARD_TEST_OVERRIDE_DEBUG" envDefault:"false"`
	Timeout time.Duration `env:"DASHBOARD_TEST_OVERRIDE_TIMEOUT" envDefault:"5s"`
}

type cachedConfig struct {
	Value string `env:"DASHBOARD_TEST_CACHED" envDefault:"default"`
}

type requiredConfig struct {
	Secret string `env:"DASHBOARD_TEST_REQUIRED,required"`
}

type fileConfig struct {
	Addr     string `env:"DASHBOARD_TEST_FILE_ADDR"`
	Env      string `env:"DASHBOARD_TEST_FILE_ENV"`
	Strategy string `env:"DASHBOARD_TEST_FILE_STRATEGY"`
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("DASHBOARD_TEST_DEFAULT_ADDR")
	os.Unsetenv("DASHBOARD_TEST_DEFAULT_BUFFER")
	os.Unsetenv("DASHBOARD_TEST_DEFAULT_TIMEOUT")

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 16, cfg.Buffer)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_TEST_OVERRIDE_ADDR", ":9000")
	t.Setenv("DASHBOARD_TEST_OVERRIDE_DEBUG", "true")
	t.Setenv("DASHBOARD_TEST_OVERRIDE_TIMEOUT", "250ms")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("DASHBOARD_TEST_CACHED", "first")
	config.ResetCache()

	var first cachedConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("DASHBOARD_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "cached value is returned")

	config.ResetCache()

	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value, "reset forces a fresh parse")
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DASHBOARD_TEST_REQUIRED")

	var cfg requiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrParsingConfig))
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("DASHBOARD_TEST_FILE_ADDR")
	os.Unsetenv("DASHBOARD_TEST_FILE_STRATEGY")
	t.Setenv("DASHBOARD_TEST_FILE_ENV", "production")
	t.Cleanup(func() {
		os.Unsetenv("DASHBOARD_TEST_FILE_ADDR")
		os.Unsetenv("DASHBOARD_TEST_FILE_STRATEGY")
	})
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.dashboard"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "uuid", cfg.Strategy)
	assert.Equal(t, "production", cfg.Env, "existing variables win over file values")
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
