package time_parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDate_WithSupportedFormats_ReturnsParsedTime(t *testing.T) {
	testCases := []struct {
		input    string
		expected time.Time
	}{
		{"2026-03-15T10:30:00Z", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15T10:30:00", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15 10:30:00", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, testCase := range testCases {
		parsed := ParseDate(testCase.input)
		assert.Equal(t, testCase.expected, parsed, "input: %s", testCase.input)
	}
}

func Test_ParseDate_WithInvalidValue_ReturnsZeroTime(t *testing.T) {
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("not-a-date").IsZero())
	assert.True(t, ParseDate("15/03/2026").IsZero())
}
