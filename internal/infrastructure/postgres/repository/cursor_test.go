package repository

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	key := pageKey{
		ServiceTypeID: "ls_42",
		CreatedAt:     time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC),
		OrderID:       "order_abc",
	}

	cursor, err := encodeCursor(key)
	require.NoError(t, err)

	decoded := decodeCursor(cursor)
	require.NotNil(t, decoded)
	assert.Equal(t, key.ServiceTypeID, decoded.ServiceTypeID)
	assert.Equal(t, key.OrderID, decoded.OrderID)
	assert.True(t, key.CreatedAt.Equal(decoded.CreatedAt))
}

func TestDecodeCursorFailsClosed(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, decodeCursor(""))
	})

	t.Run("not base64", func(t *testing.T) {
		assert.Nil(t, decodeCursor("%%%not-base64%%%"))
	})

	t.Run("base64 but not json", func(t *testing.T) {
		cursor := base64.URLEncoding.EncodeToString([]byte("hello"))
		assert.Nil(t, decodeCursor(cursor))
	})

	t.Run("missing attributes", func(t *testing.T) {
		cursor := base64.URLEncoding.EncodeToString([]byte(`{"order_id":{"S":"order_abc"}}`))
		assert.Nil(t, decodeCursor(cursor))
	})

	t.Run("bad timestamp", func(t *testing.T) {
		cursor := base64.URLEncoding.EncodeToString([]byte(
			`{"service_type_id":{"S":"ls_1"},"order_id":{"S":"order_abc"},"created_at":{"S":"yesterday"}}`))
		assert.Nil(t, decodeCursor(cursor))
	})
}
