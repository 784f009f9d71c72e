package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-duration-match/domain/model"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
	}{
		{input: "PT5M3S", expected: 5*time.Minute + 3*time.Second},
		{input: "PT20M22S", expected: 20*time.Minute + 22*time.Second},
		{input: "PT1H2M3S", expected: time.Hour + 2*time.Minute + 3*time.Second},
		{input: "PT45S", expected: 45 * time.Second},
		{input: "P1DT1S", expected: 24*time.Hour + time.Second},
		{input: "P0D", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseISODuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParseISODuration_Malformed(t *testing.T) {
	for _, input := range []string{"", "20:22", "5 minutes"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseISODuration(input)
			require.ErrorIs(t, err, model.ErrMalformedDuration)
		})
	}
}
