// Package timefmt converts the H:MM:SS clock strings workout sets carry
// to and from total seconds. A legacy MM:SS form is still accepted.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Seconds converts a clock string to total seconds. Three components are
// read as H:MM:SS, anything else as MM:SS. Missing or malformed
// components count as zero.
func Seconds(clock string) int {
	parts := strings.Split(clock, ":")
	if len(parts) == 3 {
		return atoi(parts[0])*3600 + atoi(parts[1])*60 + atoi(parts[2])
	}
	total := atoi(parts[0]) * 60
	if len(parts) > 1 {
		total += atoi(parts[1])
	}
	return total
}

// Format renders total seconds as H:MM:SS.
func Format(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// IsZero reports whether the clock string is empty or parses to zero
// seconds. A zero duration is the "not timed" sentinel.
func IsZero(clock string) bool {
	return clock == "" || Seconds(clock) == 0
}

// Normalize canonicalizes a clock string for persistence: zero values
// become empty, everything else is re-rendered as H:MM:SS.
func Normalize(clock string) string {
	if IsZero(clock) {
		return ""
	}
	return Format(Seconds(clock))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
