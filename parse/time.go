package parse

import (
	"encoding/json"
	"strings"
	"time"
)

// GrocyTimeLayout is the timestamp form Grocy accepts in request bodies.
const GrocyTimeLayout = "2006-01-02 15:04:05"

const dateLayout = "2006-01-02"

// Time is a timestamp decoded from Grocy together with what the server
// actually said about it.
type Time struct {
	time.Time
	// DateOnly is set when the source was a plain calendar date.
	DateOnly bool
	// Naive is set when the source carried no UTC offset. The wall clock is
	// stored in UTC and means server local time.
	Naive bool
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Date parses an ISO-8601 date or date-time string. Non-strings, "" and
// unparseable text report ok=false.
func Date(raw any) (Time, bool) {
	s, ok := raw.(string)
	if !ok {
		return Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, false
	}
	if len(s) == len(dateLayout) {
		if t, err := time.Parse(dateLayout, s); err == nil {
			return Time{Time: t, DateOnly: true, Naive: true}, true
		}
		return Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{Time: t}, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{Time: t, Naive: true}, true
		}
	}
	return Time{}, false
}

// Localize attaches the machine's local zone to a naive timestamp, keeping
// its wall clock. Zoned and zero values are returned unchanged.
func Localize(t Time) Time {
	if t.IsZero() || !t.Naive {
		return t
	}
	y, mo, d := t.Time.Date()
	h, mi, s := t.Time.Clock()
	local := time.Date(y, mo, d, h, mi, s, t.Time.Nanosecond(), time.Local)
	return Time{Time: local, DateOnly: t.DateOnly}
}

// FormatGrocyTime renders t as "YYYY-MM-DD HH:MM:SS" in t's own zone.
func FormatGrocyTime(t time.Time) string {
	return t.Format(GrocyTimeLayout)
}

// String renders the value the way Grocy would: dates as dates, naive
// timestamps without an offset.
func (t Time) String() string {
	switch {
	case t.IsZero():
		return ""
	case t.DateOnly:
		return t.Format(dateLayout)
	case t.Naive:
		return t.Format(GrocyTimeLayout)
	default:
		return t.Format(time.RFC3339)
	}
}

// MarshalJSON keeps naive and date-only values free of a fake offset.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// MarshalText backs MarshalJSON for encoders that prefer text.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
