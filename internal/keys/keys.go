// =============================================================================
// Gift Aid Schedule Builder - Key Cleaning
// =============================================================================
//
// Bank statements render references with wildly inconsistent spacing,
// punctuation, and casing, so declaration identifiers are matched against
// references using a canonical letters-only form. This package produces that
// form for both sides of the match.
//
// =============================================================================

package keys

import "strings"

// Clean canonicalizes a free-text reference or declaration identifier for
// matching: the input is lower-cased and every character that is not a
// lowercase Latin letter is removed. Clean never fails; an input with no
// letters yields the empty string.
func Clean(referenceOrIdentifier string) string {
	var b strings.Builder
	b.Grow(len(referenceOrIdentifier))
	for _, r := range strings.ToLower(referenceOrIdentifier) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
