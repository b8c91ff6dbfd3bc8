package changelog

import (
	"encoding/json"
	"time"
)

// timestampLayouts are tried in order when reading a stored timestamp
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
}

// Timestamp is the local time a change was recorded. The text read from the
// change log is written back verbatim, so rewriting the log never alters
// entries it did not add. Text that does not parse keeps a zero Time.
type Timestamp struct {
	time.Time
	raw string
}

// NewTimestamp stamps t in RFC 3339 form
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, raw: t.Format(time.RFC3339Nano)}
}

// ParseTimestamp keeps s as-is and parses it when it is a known layout
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{raw: s}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			ts.Time = parsed
			break
		}
	}
	return ts
}

// String returns the stored text
func (ts Timestamp) String() string {
	if ts.raw != "" {
		return ts.raw
	}
	return ts.Time.Format(time.RFC3339Nano)
}

// MarshalJSON implements json.Marshaler
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*ts = ParseTimestamp(s)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.String(), nil
}
