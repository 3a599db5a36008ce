// Package tags derives keyword tags from note content.
//
// Tags travel with a note through the persistence contract; they are a
// cheap, deterministic stand-in for the hosted tagging the original
// service performed.
package tags

import (
	"strings"

	"github.com/orsinium-labs/stopwords"
)

var english = stopwords.MustGet("en")

const minTagLen = 3

// Extract returns up to max distinct keyword tags from content, in order
// of first appearance. Stop words, short tokens, and duplicates are
// dropped. Empty input yields no tags.
func Extract(content string, max int) []string {
	if max <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, word := range strings.Fields(strings.ToLower(content)) {
		word = strings.Trim(word, `.,:;!?"'()[]{}`)
		if len(word) < minTagLen || seen[word] || english.Contains(word) {
			continue
		}
		seen[word] = true
		out = append(out, word)
		if len(out) == max {
			break
		}
	}
	return out
}
