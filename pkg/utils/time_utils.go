package utils

import (
	"fmt"
	"time"
)

// Nepal time location (NPT, +05:45)
var nptLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kathmandu"); err == nil {
		return loc
	}
	return time.FixedZone("NPT", 5*3600+45*60)
}()

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSecondsNPT returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsNPT(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(nptLoc)
}

func FormatRFC3339NPT(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(nptLoc).Format(time.RFC3339)
}

func FormatDisplayNPT(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(nptLoc).Format("2006-01-02 15:04:05 -0700 MST")
}

// ParseDate normalises a YYYY-MM-DD date string.
func ParseDate(s string) (string, error) {
	d, err := time.ParseInLocation(DateLayout, s, nptLoc)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return d.Format(DateLayout), nil
}

// ParseClock normalises a time of day to HH:MM. Seconds are accepted and dropped.
func ParseClock(s string) (string, error) {
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
}
