// Package crisis implements detection of self-harm-indicating content.
package crisis

import (
	"strings"
)

// Keywords trigger automatic crisis escalation when detected in post
// content. Keep in sync with client-side detection.
var Keywords = []string{
	"end it all",
	"ending it",
	"kill myself",
	"going through it",
	"feeling down",
	"not feeling good",
	"suicide",
	"suicidal",
	"want to die",
	"harm myself",
}

// Detect reports whether content contains a crisis-indicating keyword.
// Matching is a case-insensitive substring check against the fixed list.
func Detect(content string) bool {
	lower := strings.ToLower(content)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
