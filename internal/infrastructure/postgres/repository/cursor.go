package repository

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// pageKey is the minimal key needed to resume a keyset page: the owning
// live sight, the creation timestamp and the record id of the last item
// returned to the client.
type pageKey struct {
	ServiceTypeID string
	CreatedAt     time.Time
	OrderID       string
}

// The wire form is a self-describing typed attribute map, so the cursor
// stays opaque to clients and the format can grow new attribute types
// without breaking outstanding cursors.
type cursorAttr struct {
	S string `json:"S"`
}

const cursorTimeLayout = time.RFC3339Nano

// encodeCursor serializes a page key to its opaque client form:
// base64url over the typed-attribute JSON document.
func encodeCursor(key pageKey) (string, error) {
	doc := map[string]cursorAttr{
		"service_type_id": {S: key.ServiceTypeID},
		"created_at":      {S: key.CreatedAt.Format(cursorTimeLayout)},
		"order_id":        {S: key.OrderID},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}

// decodeCursor parses a client-held cursor. It fails closed: anything
// unparseable or incomplete yields nil, which restarts the listing from
// the top instead of erroring.
func decodeCursor(cursor string) *pageKey {
	if cursor == "" {
		return nil
	}

	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil
	}

	var doc map[string]cursorAttr
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	serviceTypeID, ok := doc["service_type_id"]
	if !ok || serviceTypeID.S == "" {
		return nil
	}
	orderID, ok := doc["order_id"]
	if !ok || orderID.S == "" {
		return nil
	}
	createdAtAttr, ok := doc["created_at"]
	if !ok {
		return nil
	}
	createdAt, err := time.Parse(cursorTimeLayout, createdAtAttr.S)
	if err != nil {
		return nil
	}

	return &pageKey{
		ServiceTypeID: serviceTypeID.S,
		CreatedAt:     createdAt,
		OrderID:       orderID.S,
	}
}
