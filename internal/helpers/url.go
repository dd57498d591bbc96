package helpers

import "strings"

// ExtractURLs scans free text for http/https URLs and returns them
// deduplicated, in order of first appearance. The scan is a single linear
// pass: a URL starts at "http://" or "https://" and runs until whitespace
// or a quote character. Returns nil for input without URLs.
func ExtractURLs(text string) []string {
	if text == "" {
		return nil
	}

	var (
		urls []string
		seen map[string]struct{}
	)

	for i := 0; i < len(text); {
		start := indexSchemeAt(text, i)
		if start < 0 {
			break
		}
		end := start
		for end < len(text) && !isURLTerminator(text[end]) {
			end++
		}
		candidate := text[start:end]
		if hasHostPart(candidate) {
			if seen == nil {
				seen = make(map[string]struct{})
			}
			if _, dup := seen[candidate]; !dup {
				seen[candidate] = struct{}{}
				urls = append(urls, candidate)
			}
		}
		i = end
	}
	return urls
}

// FirstURL returns the first URL found in text, or "" when there is none.
func FirstURL(text string) string {
	urls := ExtractURLs(text)
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// indexSchemeAt finds the next position at or after i where an http(s)
// scheme begins, or -1.
func indexSchemeAt(text string, i int) int {
	for {
		idx := strings.Index(text[i:], "http")
		if idx < 0 {
			return -1
		}
		pos := i + idx
		rest := text[pos:]
		if strings.HasPrefix(rest, "https://") || strings.HasPrefix(rest, "http://") {
			return pos
		}
		i = pos + 4
		if i >= len(text) {
			return -1
		}
	}
}

func isURLTerminator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '"', '\'':
		return true
	}
	return false
}

// hasHostPart rejects bare schemes like "https://" with nothing after them.
func hasHostPart(candidate string) bool {
	idx := strings.Index(candidate, "://")
	return idx >= 0 && len(candidate) > idx+3
}
