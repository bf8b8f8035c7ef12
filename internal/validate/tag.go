// tag.go implements tag name normalisation.
//
// Tags are free-form on the command line ("Foo Bar", "@web", "café") but
// stored as slugs made of ASCII letters, digits and single hyphens. Case is
// preserved so "API" and "api" are different tags.

package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^-a-zA-Z0-9]+`)
	hyphens    = regexp.MustCompile(`-{2,}`)
)

// Slug converts raw text into the tag alphabet without judging the result.
// Accented letters are folded to ASCII, every run of other characters
// becomes a single hyphen and hyphens are trimmed from both ends.
// The result may be empty.
func Slug(raw string) string {
	s := fold(raw)
	s = disallowed.ReplaceAllString(s, "-")
	s = hyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Tag normalises a tag and returns its canonical form.
//
// Validation rules:
//   - The slug must be non-empty
//   - The slug must contain at least one letter or digit
//
// A leading "@" is only a display marker and disappears during slugging.
func Tag(raw string) (string, error) {
	t := Slug(raw)
	if t == "" || !strings.ContainsFunc(t, isAlnum) {
		return "", fmt.Errorf("%w: %q has no letters or digits", ErrInvalidTag, raw)
	}
	return t, nil
}

// Tags normalises every entry, silently dropping the ones Tag rejects.
// The result is sorted and free of duplicates.
func Tags(raws []string) []string {
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		if t, err := Tag(raw); err == nil {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// TagList normalises every entry and fails on the first one Tag rejects.
// Used for tags the user typed explicitly, where silently dropping one
// would change what the command does. The result is sorted and free of
// duplicates.
func TagList(raws []string) ([]string, error) {
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		t, err := Tag(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Canonical reports whether t is already a normalised tag name.
// Stored tags must satisfy this; anything else was written by hand.
func Canonical(t string) bool {
	n, err := Tag(t)
	return err == nil && n == t
}

func isAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// fold strips combining marks so "é" becomes "e" rather than a hyphen.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
