package commandxredis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/reactx/pkg/commandx/commandxredis"
	"github.com/Abraxas-365/reactx/pkg/errx"
)

func TestParseEnabled(t *testing.T) {
	cases := map[string]bool{
		"true":     true,
		"1":        true,
		" ON ":     true,
		"enabled":  true,
		"false":    false,
		"0":        false,
		"Off":      false,
		"disabled": false,
	}
	for raw, want := range cases {
		got, err := commandxredis.ParseEnabled(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseEnabled_Invalid(t *testing.T) {
	_, err := commandxredis.ParseEnabled("maybe")

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, commandxredis.ErrParse))
}

func TestFormatEnabledRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		got, err := commandxredis.ParseEnabled(commandxredis.FormatEnabled(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "commandx:enabled:report", commandxredis.KeyFor("commandx:enabled", "report"))
}
