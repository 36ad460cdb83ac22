package program

import (
	"fmt"
	"strconv"
	"strings"
)

// DurationToSeconds parses a video duration in "m:ss" form (or a bare seconds
// count) into seconds. Returns false for empty or unparsable input.
func DurationToSeconds(duration string) (int, bool) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, false
	}

	parts := strings.Split(duration, ":")
	if len(parts) == 2 {
		minutes, errM := strconv.Atoi(strings.TrimSpace(parts[0]))
		seconds, errS := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errM != nil || errS != nil || minutes < 0 || seconds < 0 {
			return 0, false
		}
		return minutes*60 + seconds, true
	}

	// Bare seconds, e.g. "305"
	total, err := strconv.Atoi(duration)
	if err != nil || total < 0 {
		return 0, false
	}
	return total, true
}

// SecondsToDuration formats seconds as "m:ss" with a zero-padded seconds part.
// Non-positive values render as the empty string.
func SecondsToDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}

	minutes := seconds / 60
	remaining := seconds % 60
	return fmt.Sprintf("%d:%02d", minutes, remaining)
}
