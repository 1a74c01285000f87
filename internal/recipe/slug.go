package recipe

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL slug from a recipe name: lower-cased, diacritics
// stripped (å, ä and ö become a, a and o), whitespace runs replaced by a dash
// and everything outside [a-z0-9-] dropped.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	inSpace := false
	for _, c := range folded {
		if unicode.IsSpace(c) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Normalize fills in the slug from the name and the id from the slug when
// either is missing, the way the admin form assigns them on creation.
func Normalize(r *Recipe) {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
	r.ID = strings.TrimSpace(r.ID)
	if r.Slug == "" {
		r.Slug = Slugify(r.Name)
	}
	if r.ID == "" {
		r.ID = r.Slug
	}
}
