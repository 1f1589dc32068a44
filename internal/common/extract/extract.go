// Package extract pulls quoted string values out of raw JSON-like text
// without decoding it.
//
// The scan is deliberately naive: it finds the first `"<key>":` marker and
// returns whatever sits between the next two double quotes. Escaped quotes,
// non-string values and nesting are not understood, and nothing is unescaped.
// First-match, first-quote-pair semantics are part of the contract.
package extract

import "strings"

// Value returns the string found after the first `"<key>":` in text.
// ok is false when the marker is missing or no quote pair follows it.
func Value(text, key string) (string, bool) {
	start, end, ok := Span(text, key)
	if !ok {
		return "", false
	}
	return text[start:end], true
}

// Span returns the byte offsets of the value Value would return, so callers
// can rewrite exactly that region of text.
func Span(text, key string) (start, end int, ok bool) {
	marker := `"` + key + `":`
	at := strings.Index(text, marker)
	if at == -1 {
		return 0, 0, false
	}
	from := at + len(marker)

	open := strings.IndexByte(text[from:], '"')
	if open == -1 {
		return 0, 0, false
	}
	start = from + open + 1

	closing := strings.IndexByte(text[start:], '"')
	if closing == -1 {
		return 0, 0, false
	}
	return start, start + closing, true
}

// Fields runs Value for each key and returns the ones that were found.
func Fields(text string, keys ...string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := Value(text, key); ok {
			out[key] = v
		}
	}
	return out
}
