package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGroupsDigits(t *testing.T) {
	f, err := NewFormatter("NGN", "en")
	require.NoError(t, err)

	assert.Equal(t, "NGN", f.Code())
	assert.Contains(t, f.Format(decimal.NewFromInt(5_000_000)), "5,000,000")
	assert.Contains(t, f.Format(decimal.RequireFromString("8050000")), "8,050,000")
	assert.Contains(t, f.Format(decimal.RequireFromString("1234.5")), "1,234.50")
}

func TestFormatNegativeAmount(t *testing.T) {
	f, err := NewFormatter("USD", "en")
	require.NoError(t, err)

	got := f.Format(decimal.NewFromInt(-50_000))
	assert.True(t, len(got) > 0 && got[0] == '-', "got %q", got)
	assert.Contains(t, got, "50,000")
}

func TestNewFormatterRejectsBadInput(t *testing.T) {
	_, err := NewFormatter("NOPE", "en")
	assert.ErrorContains(t, err, "invalid currency code")

	_, err = NewFormatter("NGN", "!!")
	assert.ErrorContains(t, err, "invalid locale")
}
