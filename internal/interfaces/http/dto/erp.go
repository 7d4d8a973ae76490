package dto

import (
	"github.com/shopspring/decimal"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ERPProduct is an ERP product row
type ERPProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	DefaultCode string          `json:"default_code"`
	ListPrice   decimal.Decimal `json:"list_price"`
}

// NewERPProducts shapes ERP products
func NewERPProducts(items []integration.CatalogItem) []ERPProduct {
	rows := make([]ERPProduct, 0, len(items))
	for _, item := range items {
		rows = append(rows, ERPProduct{
			ID:          item.ERPID,
			Name:        item.Name,
			DefaultCode: item.SKU,
			ListPrice:   item.Price,
		})
	}
	return rows
}

// ERPStockQuant is an ERP stock quantity row
type ERPStockQuant struct {
	ID       int64                 `json:"id"`
	Product  *integration.Many2One `json:"product_id"`
	Location *integration.Many2One `json:"location_id"`
	Quantity decimal.Decimal       `json:"quantity"`
}

// NewERPStockQuants shapes ERP stock quants
func NewERPStockQuants(quants []integration.StockQuant) []ERPStockQuant {
	rows := make([]ERPStockQuant, 0, len(quants))
	for _, q := range quants {
		rows = append(rows, ERPStockQuant{
			ID:       q.ID,
			Product:  q.Product,
			Location: q.Location,
			Quantity: q.Quantity,
		})
	}
	return rows
}

// ERPSupplier is an ERP supplier row
type ERPSupplier struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	Email          string `json:"email"`
	ContactAddress string `json:"contact_address"`
	Active         bool   `json:"active"`
	IsCompany      bool   `json:"is_company"`
}

// NewERPSuppliers shapes ERP suppliers
func NewERPSuppliers(suppliers []integration.Supplier) []ERPSupplier {
	rows := make([]ERPSupplier, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, ERPSupplier{
			ID:             s.ID,
			Name:           s.Name,
			DisplayName:    s.DisplayName,
			Email:          s.Email,
			ContactAddress: s.ContactAddress,
			Active:         s.Active,
			IsCompany:      s.IsCompany,
		})
	}
	return rows
}

// ERPSaleOrder is an ERP sales order row
type ERPSaleOrder struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	DateOrder   string                `json:"date_order"`
	State       string                `json:"state"`
	AmountTotal decimal.Decimal       `json:"amount_total"`
	Partner     *integration.Many2One `json:"partner_id"`
}

// NewERPSaleOrders shapes ERP sales orders
func NewERPSaleOrders(orders []integration.SaleOrder) []ERPSaleOrder {
	rows := make([]ERPSaleOrder, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, ERPSaleOrder{
			ID:          o.ID,
			Name:        o.Name,
			DateOrder:   o.DateOrder,
			State:       o.State,
			AmountTotal: o.AmountTotal,
			Partner:     o.Partner,
		})
	}
	return rows
}

// ERPCategory is an ERP product category row
type ERPCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// NewERPCategories shapes ERP categories
func NewERPCategories(categories []integration.ProductCategory) []ERPCategory {
	rows := make([]ERPCategory, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, ERPCategory{ID: c.ID, Name: c.Name, DisplayName: c.DisplayName})
	}
	return rows
}
