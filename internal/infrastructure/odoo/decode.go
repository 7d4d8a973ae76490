package odoo

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// Odoo sends false for every empty field, whatever its type.

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func asBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

// asDecimal converts an Odoo float. Values are rounded through their shortest
// decimal representation, so 10.0 stays 10 and 0.1 stays 0.1.
func asDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// asMany2One converts a [id, display_name] pair
func asMany2One(v interface{}) *integration.Many2One {
	pair, ok := v.([]interface{})
	if !ok || len(pair) == 0 {
		return nil
	}
	id, ok := asInt64(pair[0])
	if !ok {
		return nil
	}
	ref := &integration.Many2One{ID: id}
	if len(pair) > 1 {
		ref.Name = asString(pair[1])
	}
	return ref
}

func rowID(row map[string]interface{}) int64 {
	id, _ := asInt64(row["id"])
	return id
}
