// Package json decodes request bodies.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrTrailingData = errors.New("unexpected data after JSON value")

// Decode reads exactly one JSON value from r into dst. Unknown object fields
// are rejected.
func Decode(r io.Reader, dst any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return DecodeJSON(dst, decoder)
}

// DecodeJSON decodes the next value of decoder and requires the stream to
// end after it.
func DecodeJSON(dst any, decoder *json.Decoder) error {
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}
