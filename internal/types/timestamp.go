package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Precision is the resolution every backend keeps for timestamps.
// PostgreSQL stores microseconds, so the other backends truncate to match.
const Precision = time.Microsecond

// acceptedLayouts lists the formats accepted for incoming dates.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a catalog date. MarshalJSON writes UTC RFC 3339 with up to
// microsecond fractions; UnmarshalJSON reads RFC 3339 or a bare YYYY-MM-DD
// date. Empty strings and null decode to the
// zero value, which stores treat as "not supplied".
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC at storage precision.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t.UTC().Truncate(Precision)}
}

// ParseTimestamp parses s using the accepted layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid date %q", s)
}

// MustParseTimestamp is ParseTimestamp for literals; it panics on error.
func MustParseTimestamp(s string) Timestamp {
	ts, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Truncate(Precision).Format(time.RFC3339Nano))
}
