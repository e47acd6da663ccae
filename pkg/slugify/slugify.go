// Package slugify derives URL-safe identifiers from display titles.
package slugify

import "github.com/gosimple/slug"

const maxSlugLength = 100

// Make transliterates the title to lowercase ASCII, collapses
// whitespace and punctuation to hyphens, and truncates the result to
// the column limit. Deterministic; uniqueness is the caller's problem
// (the groups table enforces it with a constraint).
func Make(title string) string {
	s := slug.Make(title)
	if len(s) > maxSlugLength {
		s = s[:maxSlugLength]
		// don't end on the hyphen a cut can leave behind
		for len(s) > 0 && s[len(s)-1] == '-' {
			s = s[:len(s)-1]
		}
	}
	return s
}
