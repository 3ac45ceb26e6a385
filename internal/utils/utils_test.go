package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), date)

	for _, bad := range []string{
		"2026-6-15",    // missing zero padding
		"15-06-2026",   // wrong order
		"2026-13-01",   // month out of range
		"2026-02-30",   // day out of range
		"2026-06-15T00:00:00Z",
		"tomorrow",
		"",
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	date, err := ParseDate("2026-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-02", FormatDate(date))
}

func TestFormatBookingRef(t *testing.T) {
	assert.Equal(t, "FR-2024-0001", FormatBookingRef("FR", 2024, 1))
	assert.Equal(t, "FR-2026-0042", FormatBookingRef("FR", 2026, 42))
	assert.Equal(t, "FR-2026-12345", FormatBookingRef("FR", 2026, 12345))
}

func TestGenerateSecureOTP(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateSecureOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "OTP should be numeric, got %q", code)
		}
		seen[code] = true
	}
	// 50 draws from a million values colliding every time would mean a
	// broken generator
	assert.Greater(t, len(seen), 1)
}

func TestValidSaudiPhone(t *testing.T) {
	assert.True(t, ValidSaudiPhone("966512345678"))
	assert.False(t, ValidSaudiPhone("+966512345678"))
	assert.False(t, ValidSaudiPhone("0512345678"))
	assert.False(t, ValidSaudiPhone("96651234567"))   // too short
	assert.False(t, ValidSaudiPhone("9665123456789")) // too long
	assert.False(t, ValidSaudiPhone("966412345678"))  // not a mobile prefix
	assert.False(t, ValidSaudiPhone(""))
}

func TestToday(t *testing.T) {
	today := Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, time.UTC, today.Location())
	assert.False(t, Today().Before(today))
}
