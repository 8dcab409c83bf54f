package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KostasZigo/gitcas/internal/constants"
)

// BuildDirPath constructs os-agnostic display direcotry path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}

// FormatTimezone renders an offset in seconds east of UTC as ±HHMM.
func FormatTimezone(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	hours := offset / constants.SecondsPerHour
	minutes := (offset % constants.SecondsPerHour) / constants.SecondsPerMinute
	return fmt.Sprintf("%c%02d%02d", sign, hours, minutes)
}

// ParseTimezone parses ±HHMM into an offset in seconds east of UTC.
func ParseTimezone(tz string) (int, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return 0, fmt.Errorf("invalid timezone %q", tz)
	}
	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return 0, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil || minutes >= 60 {
		return 0, fmt.Errorf("invalid timezone %q", tz)
	}

	offset := hours*constants.SecondsPerHour + minutes*constants.SecondsPerMinute
	if tz[0] == '-' {
		offset = -offset
	}
	return offset, nil
}
