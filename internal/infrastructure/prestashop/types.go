package prestashop

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// Resource keys used by the webservice
const (
	resourceProducts        = "products"
	resourceProduct         = "product"
	resourceStockAvailables = "stock_availables"
	resourceStockAvailable  = "stock_available"
	resourceOrders          = "orders"
	resourceCustomers       = "customers"
	resourceOrderPayments   = "order_payments"
	resourceOrderPayment    = "order_payment"
)

// flexString accepts JSON strings, numbers and booleans.
// The webservice is inconsistent about quoting ids and amounts.
type flexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
		return nil
	}
	*s = flexString(data)
	return nil
}

func (s flexString) String() string {
	return strings.TrimSpace(string(s))
}

// ParseDecimal parses the value. ok is false when it is empty or malformed.
func (s flexString) ParseDecimal() (d decimal.Decimal, ok bool) {
	d, err := decimal.NewFromString(s.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Decimal is ParseDecimal for display-only fields, zero when unreadable
func (s flexString) Decimal() decimal.Decimal {
	d, _ := s.ParseDecimal()
	return d
}

// localizedField is a text field sent either as a plain string or as a
// list of {id, value} language entries.
type localizedField integration.LocalizedText

// UnmarshalJSON implements json.Unmarshaler
func (f *localizedField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var entries []struct {
			ID    flexString `json:"id"`
			Value string     `json:"value"`
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return err
		}
		out := make(localizedField, 0, len(entries))
		for _, e := range entries {
			out = append(out, integration.LocalizedValue{LanguageID: e.ID.String(), Value: e.Value})
		}
		*f = out
		return nil
	}

	var plain flexString
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	*f = localizedField(integration.PlainText(string(plain)))
	return nil
}

// productRow is the JSON shape of a product read with display=full
type productRow struct {
	ID        flexString     `json:"id"`
	Reference flexString     `json:"reference"`
	Name      localizedField `json:"name"`
	Price     flexString     `json:"price"`
	Quantity  flexString     `json:"quantity"`
	Active    flexString     `json:"active"`
}

func (r productRow) toDomain() integration.StorefrontProduct {
	price, ok := r.Price.ParseDecimal()
	return integration.StorefrontProduct{
		ID:           r.ID.String(),
		Reference:    r.Reference.String(),
		Name:         integration.LocalizedText(r.Name),
		Price:        price,
		Quantity:     r.Quantity.Decimal(),
		Active:       r.Active.String() == "1",
		PriceInvalid: !ok,
	}
}

// orderRow is the JSON shape of an order read with display=full
type orderRow struct {
	ID           flexString `json:"id"`
	Reference    flexString `json:"reference"`
	TotalPaid    flexString `json:"total_paid"`
	DateAdd      flexString `json:"date_add"`
	CustomerID   flexString `json:"id_customer"`
	CurrentState flexString `json:"current_state"`
}

func (r orderRow) toDomain() integration.StorefrontOrder {
	return integration.StorefrontOrder{
		ID:           r.ID.String(),
		Reference:    r.Reference.String(),
		TotalPaid:    r.TotalPaid.Decimal(),
		DateAdd:      r.DateAdd.String(),
		CustomerID:   r.CustomerID.String(),
		CurrentState: r.CurrentState.String(),
	}
}
