// Package slug allocates collision-free URL slugs and usernames.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make normalizes s to a URL-safe lowercase token: letters and digits are
// kept, everything else collapses into single dashes. If normalization eats
// the whole input, the trimmed raw value is returned so callers never end up
// with an empty identifier.
func Make(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return strings.TrimSpace(s)
	}
	return out
}

// Allocate returns a slug derived from desired that exists reports as unused.
// The base slug is tried verbatim first, then disambiguated with an
// incrementing numeric suffix (base-1, base-2, ...). The storage layer's
// uniqueness constraint stays the authoritative guard; the exists pre-check
// only keeps the common path collision-free.
//
// Callers re-validating an edit must exclude the record's own identifier
// inside exists, so a record keeping its slug is not treated as a collision.
func Allocate(desired string, exists func(candidate string) bool) string {
	base := Make(desired)
	candidate := base
	for i := 1; exists(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}

// UsernameCandidate returns the i-th candidate for a desired username:
// the dash-stripped normalized base for i=1, then base2, base3, ...
func UsernameCandidate(desired string, i int) string {
	base := strings.ReplaceAll(Make(desired), "-", "")
	if base == "" {
		base = strings.TrimSpace(desired)
	}
	if i <= 1 {
		return base
	}
	return fmt.Sprintf("%s%d", base, i)
}

// AllocateUsername works like Allocate but produces bare numeric suffixes
// (name2, name3, ...) on a dash-stripped base, matching how usernames are
// suggested to registering users.
func AllocateUsername(desired string, exists func(candidate string) bool) string {
	candidate := UsernameCandidate(desired, 1)
	for i := 2; exists(candidate); i++ {
		candidate = UsernameCandidate(desired, i)
	}
	return candidate
}
