package normalizer

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalTimeLayout is how timestamps are written to normalized files and hashed.
// The fraction is dropped when zero.
const CanonicalTimeLayout = "2006-01-02 15:04:05.999999"

// Layouts seen across the published files. A fractional second after the
// seconds field is accepted by time.Parse without being declared.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ParseTimestamp parses a source timestamp as UTC wall time
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp renders t in the canonical layout
func FormatTimestamp(t time.Time) string {
	return t.Format(CanonicalTimeLayout)
}
