// Package timeutil provides timezone resolution and formatting for the
// notifier CLIs. Report timestamps are rendered in Western Indonesian Time
// (WIB, UTC+7) unless TZ points at another IANA zone.
package timeutil

import "time"

// DefaultZone is the zone used when TZ is unset or unresolvable.
const DefaultZone = "Asia/Jakarta"

// wibFallback keeps the WIB default usable even when the host has no
// timezone database (scratch containers in CI runners).
var wibFallback = time.FixedZone("WIB", 7*60*60)

// Common layouts for report timestamps.
const (
	// FormatSubjectDate is the date part of the email subject (30 Aug 2025).
	FormatSubjectDate = "02 Jan 2006"
	// FormatClock is the time part of the email subject (14:05).
	FormatClock = "15:04"
	// FormatStamp is the Telegram message timestamp (30 Aug 2025 | 14:05 WIB).
	FormatStamp = "02 Jan 2006 | 15:04 MST"
)

// Resolve walks the candidate zone names in order and returns the first one
// known to the timezone database. When none resolve it falls back to
// DefaultZone, and finally to a fixed UTC+7 zone. The second return value
// reports whether a candidate won, as opposed to a terminal fallback.
func Resolve(candidates ...string) (*time.Location, bool) {
	for _, name := range candidates {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, true
		}
	}
	if loc, err := time.LoadLocation(DefaultZone); err == nil {
		return loc, false
	}
	return wibFallback, false
}

// NowIn returns the current wall-clock time in loc.
func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
