package prestashop

import (
	"context"
	"net/url"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ListOrders returns every storefront order
func (c *Client) ListOrders(ctx context.Context) ([]integration.StorefrontOrder, error) {
	data, err := c.getJSON(ctx, "/api/orders", nil)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeList[orderRow](data, resourceOrders)
	if err != nil {
		return nil, err
	}

	orders := make([]integration.StorefrontOrder, 0, len(payload.Items))
	for _, row := range payload.Items {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

// GetOrderByReference returns the first order with the given reference
func (c *Client) GetOrderByReference(ctx context.Context, reference string) (*integration.StorefrontOrder, error) {
	filter, err := filterValue(reference)
	if err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("filter[reference]", filter)

	data, err := c.getJSON(ctx, "/api/orders", query)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeList[orderRow](data, resourceOrders)
	if err != nil {
		return nil, err
	}
	row, ok := payload.First()
	if !ok {
		return nil, integration.ErrOrderNotFound
	}
	order := row.toDomain()
	return &order, nil
}

// ListCustomers returns every storefront customer as sent by the storefront
func (c *Client) ListCustomers(ctx context.Context) ([]integration.Record, error) {
	return c.listRecords(ctx, "/api/customers", resourceCustomers)
}

// ListPayments returns every order payment as sent by the storefront
func (c *Client) ListPayments(ctx context.Context) ([]integration.Record, error) {
	return c.listRecords(ctx, "/api/order_payments", resourceOrderPayments)
}

// GetPayment returns one order payment
func (c *Client) GetPayment(ctx context.Context, paymentID string) (integration.Record, error) {
	data, err := c.getJSON(ctx, "/api/order_payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, err
	}
	record, err := DecodeOne[integration.Record](data, resourceOrderPayment)
	if err != nil {
		return nil, err
	}
	if len(record) == 0 {
		return nil, integration.ErrPaymentNotFound
	}
	return record, nil
}

func (c *Client) listRecords(ctx context.Context, path, key string) ([]integration.Record, error) {
	data, err := c.getJSON(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	payload, err := DecodeList[integration.Record](data, key)
	if err != nil {
		return nil, err
	}
	return payload.Items, nil
}
