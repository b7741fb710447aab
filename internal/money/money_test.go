package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tilly/internal/money"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "49.95", money.FormatCents(4995))
	assert.Equal(t, "0.00", money.FormatCents(0))
	assert.Equal(t, "0.05", money.FormatCents(5))
	assert.Equal(t, "-12.50", money.FormatCents(-1250))
}

func TestParseCents(t *testing.T) {
	got, err := money.ParseCents("9.99")
	require.NoError(t, err)
	assert.Equal(t, int64(999), got)

	got, err = money.ParseCents("10")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got)

	_, err = money.ParseCents("not a number")
	assert.Error(t, err)
}
