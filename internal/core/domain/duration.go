package domain

import (
	"fmt"
	"time"
)

// FormatClock renders a duration as HH:MM:SS. Hours are not wrapped at 24.
func FormatClock(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}

	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
