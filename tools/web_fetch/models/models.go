package models

import "unicode/utf8"

// Result is the normalized output of a page-extraction provider.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Status  int    `json:"status"`
	FetchMS int    `json:"fetch_ms"`
}

// Truncate caps s at max bytes without splitting a UTF-8 rune.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
