package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationToSeconds(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"5:05", 305, true},
		{"5:5", 305, true}, // unpadded seconds part
		{"0:45", 45, true},
		{"12:00", 720, true},
		{"90", 90, true}, // bare seconds
		{" 3:30 ", 210, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1:2:3", 0, false},
		{"-1:30", 0, false},
		{"-90", 0, false},
	}

	for _, tt := range tests {
		got, ok := DurationToSeconds(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestSecondsToDuration(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{305, "5:05"},
		{45, "0:45"},
		{720, "12:00"},
		{61, "1:01"},
		{0, ""},
		{-10, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondsToDuration(tt.input), "input %d", tt.input)
	}
}

// Encoding then decoding a duration must reproduce the seconds value, with
// the unpadded form normalizing ("5:5" -> 305 -> "5:05").
func TestDurationRoundTrip(t *testing.T) {
	inputs := map[string]string{
		"5:5":   "5:05",
		"5:05":  "5:05",
		"0:45":  "0:45",
		"10:30": "10:30",
		"90":    "1:30",
	}

	for raw, normalized := range inputs {
		seconds, ok := DurationToSeconds(raw)
		assert.True(t, ok, "input %q", raw)
		assert.Equal(t, normalized, SecondsToDuration(seconds), "input %q", raw)

		// Second trip is stable
		again, ok := DurationToSeconds(SecondsToDuration(seconds))
		assert.True(t, ok)
		assert.Equal(t, seconds, again)
	}
}
