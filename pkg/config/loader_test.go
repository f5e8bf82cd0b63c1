package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadkit/igbroker/pkg/config"
)

func TestLoad(t *testing.T) {
	type testConfig struct {
		Addr    string        `env:"TEST_ADDR" envDefault:":8080"`
		Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"20s"`
		Proxy   string        `env:"TEST_PROXY"`
	}

	t.Run("defaults", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 20*time.Second, cfg.Timeout)
		assert.Empty(t, cfg.Proxy)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("TEST_ADDR", ":9090")
		t.Setenv("TEST_PROXY", "socks5://localhost:1080")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "socks5://localhost:1080", cfg.Proxy)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("TEST_TIMEOUT", "not-a-duration")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}
