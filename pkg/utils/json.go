package utils

import (
	"bytes"
	"encoding/json"
	"io"
)

// ExtraDataAfterJSONError is returned when the input contains data after the
// first JSON value.
type ExtraDataAfterJSONError struct{}

func (e *ExtraDataAfterJSONError) Error() string {
	return "extra data after JSON object"
}

// FromJSON decodes a single JSON value from data. Unknown fields are rejected.
// Empty input yields the zero value without error.
//
//nolint:ireturn // Generic functions must return type parameter T
func FromJSON[T any](data []byte) (T, error) {
	var zero T
	if len(data) == 0 {
		return zero, nil
	}

	res, err := FromJSONStream[T](bytes.NewReader(data))
	if err != nil {
		return zero, err
	}

	return res, nil
}

// FromJSONStream decodes a single JSON value from r. Unknown fields are
// rejected, and anything other than trailing whitespace after the value is an
// ExtraDataAfterJSONError.
//
//nolint:ireturn // Generic functions must return type parameter T
func FromJSONStream[T any](r io.Reader) (T, error) {
	var res T

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&res); err != nil {
		var zero T

		return zero, err
	}

	// A second token means there is more than one JSON value in the input.
	if _, err := dec.Token(); err != io.EOF { //nolint:errorlint // Decoder returns bare io.EOF
		var zero T

		return zero, &ExtraDataAfterJSONError{}
	}

	return res, nil
}

// ToJSON serializes v without HTML escaping and without a trailing newline.
func ToJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ToJSONIndent serializes v with two-space indentation, without HTML escaping
// and without a trailing newline.
func ToJSONIndent(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ToJSONStream serializes v to w without HTML escaping.
func ToJSONStream(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

// ToJSONStreamIndent serializes v to w with two-space indentation and without
// HTML escaping.
func ToJSONStreamIndent(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
