package time_parser

import "time"

// ParseDate parses the date formats accepted on report query parameters.
// Returns the zero time when the value cannot be parsed.
func ParseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}
