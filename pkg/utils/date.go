package utils

import (
	"time"
)

// FormatTimestamp normalisiert einen GitLab-Zeitstempel auf RFC 3339 UTC.
// Unbekannte Formate werden unverändert durchgereicht statt die Zeile zu
// verwerfen.
func FormatTimestamp(gitlabDate string) string {
	if gitlabDate == "" {
		return ""
	}

	// Mögliche GitLab Formate
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05.000-07:00",
		"2006-01-02",
	}

	for _, format := range formats {
		if parsedTime, err := time.Parse(format, gitlabDate); err == nil {
			return parsedTime.UTC().Format(time.RFC3339)
		}
	}

	return gitlabDate
}

// FormatTimestampPtr formatiert einen optionalen Zeitstempel; nil wird
// zur leeren Spalte.
func FormatTimestampPtr(gitlabDate *string) string {
	if gitlabDate == nil {
		return ""
	}
	return FormatTimestamp(*gitlabDate)
}
