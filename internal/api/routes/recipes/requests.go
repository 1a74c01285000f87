package recipes

import (
	"errors"
	"net/url"
	"strconv"
)

var errNotInteger = errors.New("expected an integer")

type ListRecipesRequest struct {
	Page      int    `validate:"gte=1"`
	Limit     int    `validate:"gte=1,lte=100"`
	Filters   string `validate:"omitempty"`
	OrderBy   string `validate:"omitempty"`
	Direction string `validate:"omitempty"`
}

// parseListRequest reads the listing query string. Missing values take the
// defaults; page and limit must be integers when present.
func parseListRequest(values url.Values, defaultLimit int) (ListRecipesRequest, error) {
	request := ListRecipesRequest{
		Page:      1,
		Limit:     defaultLimit,
		Filters:   values.Get("filters"),
		OrderBy:   values.Get("orderBy"),
		Direction: values.Get("direction"),
	}
	var err error
	if raw := values.Get("page"); raw != "" {
		if request.Page, err = strconv.Atoi(raw); err != nil {
			return request, errNotInteger
		}
	}
	if raw := values.Get("limit"); raw != "" {
		if request.Limit, err = strconv.Atoi(raw); err != nil {
			return request, errNotInteger
		}
	}
	return request, nil
}
