package binder

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrUnrecognizedTime is returned for text no supported layout accepts.
var ErrUnrecognizedTime = errors.New("unrecognized date/time format")

var epochDigits = regexp.MustCompile(`^-?\d+$`)

// temporalLayouts are tried in order after RFC 3339. Values without a zone
// are read as UTC; a bare time of day falls on 1970-01-01.
var temporalLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

const timeOfDay = "15:04:05.999999999"

// ParseEpochMillis reads a date, time or timestamp and returns milliseconds
// since the Unix epoch. It accepts epoch milliseconds as digits, RFC 3339,
// yyyy-MM-dd, yyyy-MM-dd HH:mm:ss[.SSS] and HH:mm:ss.
func ParseEpochMillis(s string) (int64, error) {
	if epochDigits.MatchString(s) {
		return strconv.ParseInt(s, 10, 64)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UnixMilli(), nil
	}
	for _, layout := range temporalLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli(), nil
		}
	}
	if t, err := time.ParseInLocation(timeOfDay, s, time.UTC); err == nil {
		d := time.Date(1970, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		return d.UnixMilli(), nil
	}
	return 0, ErrUnrecognizedTime
}
