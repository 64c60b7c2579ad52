package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.PlatformFeePercent)
	assert.Equal(t, int64(50000), cfg.MinWithdrawalIDR)
}

func TestLoad_FeePercentOverride(t *testing.T) {
	t.Setenv("PLATFORM_FEE_PERCENT", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PlatformFeePercent)
}

func TestLoad_InvalidFeePercent(t *testing.T) {
	t.Setenv("PLATFORM_FEE_PERCENT", "150")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidMinWithdrawal(t *testing.T) {
	t.Setenv("MIN_WITHDRAWAL_IDR", "-1")

	_, err := Load()
	assert.Error(t, err)
}
