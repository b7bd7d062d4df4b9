package utils

import (
	"strings"
	"time"
)

// SplitAlternativeAnswers splits comma separated answer text, trimming each
// entry and dropping empty ones
func SplitAlternativeAnswers(text string) []string {
	answers := []string{}
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			answers = append(answers, trimmed)
		}
	}
	return answers
}

// ParseDate parses a YYYY-MM-DD date at midnight UTC
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
