package recipe

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRecipe = errors.New("invalid recipe")

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", isSlug)
	return v
})

// isSlug rejects slugs that cannot be used as a single URL path segment.
func isSlug(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && !strings.ContainsAny(s, "/?# \t\n")
}

// Validate checks the required fields and the publish date format.
func Validate(r Recipe) error {
	if err := validate().Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	return nil
}
