package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONObject_KeepsNumbers(t *testing.T) {
	m, err := DecodeJSONObject([]byte(`{"resellerId": 1, "price": 1.5, "differences": {"to": 2}}` + "\n"))
	require.NoError(t, err)

	assert.Equal(t, json.Number("1"), m["resellerId"])
	assert.Equal(t, json.Number("1.5"), m["price"])
	diff, ok := m["differences"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("2"), diff["to"])
}

func TestDecodeJSONObject_Rejects(t *testing.T) {
	for _, raw := range []string{
		``,
		`null`,
		`[1,2]`,
		`{"a":`,
		`{"a":1} garbage`,
		`{"a":1}{"b":2}`,
		`{"a":1} 7`,
	} {
		_, err := DecodeJSONObject([]byte(raw))
		assert.ErrorIs(t, err, ErrMalformedPayload, raw)
	}
}

func TestJSONHandler(t *testing.T) {
	var got map[string]any
	h := JSONHandler(
		func(_ context.Context, key []byte, payload map[string]any) error {
			assert.Equal(t, []byte("k"), key)
			got = payload
			return nil
		},
		func(context.Context, []byte, error) error {
			t.Fatal("valid payload rejected")
			return nil
		},
	)

	require.NoError(t, h(context.Background(), []byte("k"), []byte(`{"clientId":10}`)))
	assert.Equal(t, json.Number("10"), got["clientId"])
}

func TestJSONHandler_RejectsMalformed(t *testing.T) {
	var rejected error
	h := JSONHandler(
		func(context.Context, []byte, map[string]any) error {
			t.Fatal("malformed payload handled")
			return nil
		},
		func(_ context.Context, key []byte, err error) error {
			assert.Equal(t, []byte("k"), key)
			rejected = err
			return nil
		},
	)

	require.NoError(t, h(context.Background(), []byte("k"), []byte(`{"resellerId":1`)))
	assert.ErrorIs(t, rejected, ErrMalformedPayload)
}
