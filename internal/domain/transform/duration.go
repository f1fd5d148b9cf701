package transform

import (
	"fmt"
	"time"
)

const microsPerDay = int64(24 * time.Hour / time.Microsecond)

// FormatDuration renders d as "H:MM:SS", prefixed by "N day(s), " when at
// least a day. Sub-second parts are dropped. Negative durations borrow a
// whole day so the clock part stays positive: -10m is "-1 day, 23:50:00".
func FormatDuration(d time.Duration) string {
	us := d.Microseconds()
	days := us / microsPerDay
	rem := us % microsPerDay
	if rem < 0 {
		days--
		rem += microsPerDay
	}

	secs := rem / int64(time.Second/time.Microsecond)
	clock := fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
	if days == 0 {
		return clock
	}

	unit := "days"
	if days == 1 || days == -1 {
		unit = "day"
	}
	return fmt.Sprintf("%d %s, %s", days, unit, clock)
}

// Between returns the formatted end-start difference, or nil when either
// endpoint is absent.
func Between(start, end *time.Time) *string {
	if start == nil || end == nil {
		return nil
	}
	s := FormatDuration(end.Sub(*start))
	return &s
}
