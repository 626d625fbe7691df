package ui

import (
	"fmt"
	"time"
)

// FormatBytes renders a byte count as a human-readable size.
func FormatBytes(bytes uint64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}

	size := float64(bytes)
	unitIndex := 0
	for size >= 1024.0 && unitIndex < len(units)-1 {
		size /= 1024.0
		unitIndex++
	}

	if unitIndex == 0 {
		return fmt.Sprintf("%d %s", bytes, units[unitIndex])
	}
	return fmt.Sprintf("%.1f %s", size, units[unitIndex])
}

// FormatDuration renders a duration the way build tooling usually does:
// milliseconds below a second, tenths of a second below a minute,
// minutes and seconds beyond.
func FormatDuration(d time.Duration) string {
	totalSeconds := int64(d.Seconds())
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	millis := d.Milliseconds() % 1000

	switch {
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	case totalSeconds > 0:
		return fmt.Sprintf("%d.%ds", seconds, millis/100)
	default:
		return fmt.Sprintf("%dms", millis)
	}
}
