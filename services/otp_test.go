package services_test

import (
	"testing"

	"go-storefront/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtpCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := services.GenerateOtpCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[code] = true
	}
	// Twenty draws from a million values should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestHashAndCheckOtp(t *testing.T) {
	code, err := services.GenerateOtpCode()
	require.NoError(t, err)

	hash, err := services.HashOtp(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, services.CheckOtp(hash, code))
	assert.False(t, services.CheckOtp(hash, "000000a"))
	assert.False(t, services.CheckOtp("not-a-hash", code))
}
