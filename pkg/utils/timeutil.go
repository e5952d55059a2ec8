package utils

import "time"

// cycleLayout is the timestamp format written to the CSV sinks:
// European day-first date plus minutes, always UTC.
const cycleLayout = "02/01/2006 15:04"

// CycleTimestamp formats t as a cycle timestamp (DD/MM/YYYY HH:MM, UTC).
// The collector computes this once per cycle and stamps every record with
// the identical string so rows across categories stay correlatable.
func CycleTimestamp(t time.Time) string {
	return t.UTC().Format(cycleLayout)
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseCycleTimestamp parses a cycle timestamp back into a UTC time.
func ParseCycleTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(cycleLayout, s, time.UTC)
}
