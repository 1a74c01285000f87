// Package password checks the strength of the admin password before it is
// hashed at startup.
package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	passwordvalidator "github.com/wagslane/go-password-validator"
)

const (
	MinLength      = 10
	MinEntropyBits = 60
)

var ErrTooWeak = errors.New("admin password is too weak")

// requirement is a character class the password must contain at least once.
type requirement struct {
	name string
	has  func(r rune) bool
}

var requirements = []requirement{
	{name: "an upper-case letter", has: unicode.IsUpper},
	{name: "a lower-case letter", has: unicode.IsLower},
	{name: "a digit", has: unicode.IsDigit},
	{name: "a symbol", has: func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }},
}

// Validate returns ErrTooWeak listing every requirement the password misses,
// followed by the entropy check.
func Validate(pw string) error {
	var missing []string
	if utf8.RuneCountInString(pw) < MinLength {
		missing = append(missing, fmt.Sprintf("at least %d characters", MinLength))
	}
	for _, req := range requirements {
		if !strings.ContainsFunc(pw, req.has) {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: needs %s", ErrTooWeak, strings.Join(missing, ", "))
	}

	if err := passwordvalidator.Validate(pw, MinEntropyBits); err != nil {
		return fmt.Errorf("%w: %w", ErrTooWeak, err)
	}
	return nil
}
