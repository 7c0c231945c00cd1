package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedPayload marks a message value that is not a single JSON object.
var ErrMalformedPayload = errors.New("malformed payload")

// JSONHandler decodes the message value into a generic map. Numbers are kept
// as json.Number so integer fields stay distinguishable from fractions.
// Values that fail to decode go to reject instead of handle.
func JSONHandler(
	handle func(ctx context.Context, key []byte, payload map[string]any) error,
	reject func(ctx context.Context, key []byte, err error) error,
) Handler {
	return func(ctx context.Context, key, value []byte) error {
		payload, err := DecodeJSONObject(value)
		if err != nil {
			return reject(ctx, key, err)
		}
		return handle(ctx, key, payload)
	}
}

func DecodeJSONObject(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", ErrMalformedPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedPayload)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformedPayload)
	}
	return payload, nil
}
