package http

import "strings"

// fieldLabels maps wire field names to the labels used in validation
// messages. A static table, deliberately: the set of request fields is
// small and closed, and a lookup that falls back to the raw name beats
// deriving labels from struct introspection at request time.
var fieldLabels = map[string]string{
	"product_id":   "product id",
	"org_id":       "organization id",
	"namespace":    "namespace",
	"order_id":     "order id",
	"auth_type":    "auth type",
	"auth_type_id": "auth type id",
	"salt":         "salt",
	"redeem_code":  "redeem code",
	"staff_id":     "staff id",
	"access_token": "access token",
}

func fieldLabel(name string) string {
	if label, ok := fieldLabels[name]; ok {
		return label
	}
	return name
}

// requireFields returns a message naming every empty required field, or
// "" when all are present. Fields are checked in the given order so the
// message is stable.
func requireFields(fields []string, values map[string]string) string {
	var missing []string
	for _, name := range fields {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, fieldLabel(name))
		}
	}
	if len(missing) == 0 {
		return ""
	}
	return "missing required field(s): " + strings.Join(missing, ", ")
}
