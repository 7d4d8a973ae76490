package dto

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Localized labels
// ---------------------------------------------------------------------------

var supportedLocales = []language.Tag{
	language.Spanish,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Labels renders the localized flags shown in list responses
type Labels struct {
	Yes string
	No  string
}

// LabelsFor returns the labels for the locale that best matches locale.
// Unknown or empty locales fall back to Spanish.
func LabelsFor(locale string) Labels {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Spanish
	}
	return labelsForTag(tag)
}

// LabelsForRequest picks labels from an Accept-Language header, falling back to fallback
func LabelsForRequest(acceptLanguage string, fallback Labels) Labels {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return labelsForTag(supportedLocales[index])
}

func labelsForTag(tag language.Tag) Labels {
	_, index, _ := localeMatcher.Match(tag)
	if supportedLocales[index] == language.English {
		return Labels{Yes: "Yes", No: "No"}
	}
	return Labels{Yes: "Sí", No: "No"}
}

// Active returns the label for an active flag
func (l Labels) Active(active bool) string {
	if active {
		return l.Yes
	}
	return l.No
}

// ---------------------------------------------------------------------------
// Storefront rows
// ---------------------------------------------------------------------------

// ProductRow is a storefront product as shown in list responses
type ProductRow struct {
	ID        string          `json:"id"`
	Name      string          `json:"nombre"`
	Reference string          `json:"referencia"`
	Price     decimal.Decimal `json:"precio"`
	Stock     decimal.Decimal `json:"stock"`
	Active    string          `json:"activo"`
}

// NewProductRows shapes storefront products for display
func NewProductRows(products []integration.StorefrontProduct, labels Labels) []ProductRow {
	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductRow{
			ID:        p.ID,
			Name:      p.DisplayName(),
			Reference: p.Reference,
			Price:     p.Price,
			Stock:     p.Quantity,
			Active:    labels.Active(p.Active),
		})
	}
	return rows
}

// OrderRow is a storefront order as shown in list responses
type OrderRow struct {
	ID           string          `json:"id"`
	Reference    string          `json:"referencia"`
	TotalPaid    decimal.Decimal `json:"total_pagado"`
	Date         string          `json:"fecha"`
	CustomerID   string          `json:"id_cliente"`
	CurrentState string          `json:"estado_actual"`
}

// NewOrderRow shapes one storefront order
func NewOrderRow(o integration.StorefrontOrder) OrderRow {
	return OrderRow{
		ID:           o.ID,
		Reference:    o.Reference,
		TotalPaid:    o.TotalPaid,
		Date:         o.DateAdd,
		CustomerID:   o.CustomerID,
		CurrentState: o.CurrentState,
	}
}

// NewOrderRows shapes storefront orders
func NewOrderRows(orders []integration.StorefrontOrder) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, NewOrderRow(o))
	}
	return rows
}

// DeactivatedProduct is returned after a product was hidden
type DeactivatedProduct struct {
	ID        string `json:"id"`
	Reference string `json:"referencia"`
	Name      string `json:"nombre"`
	Active    string `json:"activo"`
}

// NewDeactivatedProduct shapes a deactivated product
func NewDeactivatedProduct(p integration.StorefrontProduct, labels Labels) DeactivatedProduct {
	return DeactivatedProduct{
		ID:        p.ID,
		Reference: p.Reference,
		Name:      p.DisplayName(),
		Active:    labels.Active(p.Active),
	}
}
