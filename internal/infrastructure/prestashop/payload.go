package prestashop

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// Payload is a decoded JSON list response. The webservice returns either a
// bare list or an object holding the list under the resource key; an empty
// result may also arrive as [] or {}.
type Payload[T any] struct {
	Items []T
}

// IsEmpty returns true when the payload carries no items
func (p Payload[T]) IsEmpty() bool {
	return len(p.Items) == 0
}

// First returns the first item and whether it exists
func (p Payload[T]) First() (T, bool) {
	var zero T
	if len(p.Items) == 0 {
		return zero, false
	}
	return p.Items[0], true
}

// DecodeList decodes a list response regardless of its shape
func DecodeList[T any](data []byte, key string) (Payload[T], error) {
	var p Payload[T]
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return p, nil
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &p.Items); err != nil {
			return p, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return p, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
		}
		raw, ok := wrapper[key]
		if !ok {
			return p, nil
		}
		if err := json.Unmarshal(raw, &p.Items); err != nil {
			return p, fmt.Errorf("%w: %s: %v", integration.ErrPlatformInvalidResponse, key, err)
		}
	default:
		return p, fmt.Errorf("%w: unexpected JSON payload", integration.ErrPlatformInvalidResponse)
	}
	return p, nil
}

// DecodeOne decodes a single-resource response such as {"order_payment": {...}}.
// A bare object without the key is decoded as the resource itself.
func DecodeOne[T any](data []byte, key string) (T, error) {
	var out T
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return out, fmt.Errorf("%w: %v", integration.ErrPlatformInvalidResponse, err)
	}
	raw, ok := wrapper[key]
	if !ok {
		raw = data
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %s: %v", integration.ErrPlatformInvalidResponse, key, err)
	}
	return out, nil
}
