// Package suggest narrows autocomplete candidates against typed input.
package suggest

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLimit is the number of suggestions shown under the description field.
const DefaultLimit = 5

// Filter returns the candidates containing input case-insensitively at the
// start of a word, in their original order, capped at limit. A candidate
// equal to input (ignoring case) is left out since there is nothing left to
// complete. Empty input yields nothing.
func Filter(candidates []string, input string, limit int) []string {
	out := []string{}
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" || limit <= 0 {
		return out
	}

	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == needle || !containsAtWordStart(lc, needle) {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out
}

func containsAtWordStart(s, needle string) bool {
	for offset := 0; offset <= len(s)-len(needle); {
		i := strings.Index(s[offset:], needle)
		if i < 0 {
			return false
		}
		i += offset
		if i == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		offset = i + size
	}
	return false
}

// Merge appends extra to primary, skipping anything already present in
// primary (compared case-insensitively) or repeated within extra.
func Merge(primary, extra []string) []string {
	seen := make(map[string]struct{}, len(primary)+len(extra))
	out := make([]string, 0, len(primary)+len(extra))
	for _, p := range primary {
		seen[strings.ToLower(p)] = struct{}{}
		out = append(out, p)
	}
	for _, e := range extra {
		k := strings.ToLower(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
