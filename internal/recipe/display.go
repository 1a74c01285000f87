package recipe

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var tagRe = regexp.MustCompile(`<[^>]*>?`)

// Minutes parses a PT<n>M duration. Only minutes are used by the site.
func Minutes(duration string) (int, bool) {
	s, ok := strings.CutPrefix(strings.TrimSpace(duration), "PT")
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, "M")
	if !ok || s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// FormatDuration renders PT35M as "35 min". Unparseable values are returned
// unchanged.
func FormatDuration(duration string) string {
	n, ok := Minutes(duration)
	if !ok {
		return duration
	}
	return strconv.Itoa(n) + " min"
}

// PlainDescription returns the description with inline markup removed.
func (r Recipe) PlainDescription() string {
	return tagRe.ReplaceAllString(r.Description, "")
}

// Excerpt returns at most n runes of the plain description followed by an
// ellipsis when it was cut.
func (r Recipe) Excerpt(n int) string {
	plain := r.PlainDescription()
	if utf8.RuneCountInString(plain) <= n {
		return plain
	}
	runes := []rune(plain)
	return string(runes[:n]) + "..."
}
