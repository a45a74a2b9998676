package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimestamp renders milliseconds as HH:MM:SS.mmm. Hours grow past two
// digits when the value requires it.
func FormatTimestamp(ms uint64) string {
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	seconds := ms / 1_000
	millis := ms % 1_000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// ParseTimestamp is the exact inverse of FormatTimestamp.
func ParseTimestamp(value string) (uint64, error) {
	value = strings.TrimSpace(value)
	hmsPart, milliPart, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(hmsPart, ":")
	if len(hms) != 3 || len(milliPart) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.ParseUint(hms[0], 10, 64)
	minutes, errM := strconv.ParseUint(hms[1], 10, 64)
	seconds, errS := strconv.ParseUint(hms[2], 10, 64)
	millis, errMS := strconv.ParseUint(milliPart, 10, 64)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return hours*3_600_000 + minutes*60_000 + seconds*1_000 + millis, nil
}
