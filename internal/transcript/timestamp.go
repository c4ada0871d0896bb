package transcript

import "time"

// timestampLayouts are tried in order. RFC3339 accepts both the literal
// "Z" zone marker and an explicit numeric offset, so "...781Z" and
// "...781+00:00" parse to the same instant. The last layout tolerates
// records written without any zone at all.
var timestampLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601-style timestamp string. The zero time
// means absent: empty and malformed input both map to it, since records
// without a usable timestamp are an expected state rather than a fault.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
