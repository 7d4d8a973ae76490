package router

import "github.com/gin-gonic/gin"

// ERPEndpoints serves the read-only Odoo listings.
type ERPEndpoints interface {
	ListProducts(c *gin.Context)
	ListStockQuants(c *gin.Context)
	ListSuppliers(c *gin.Context)
	ListSaleOrders(c *gin.Context)
	ListCategories(c *gin.Context)
}

// StorefrontEndpoints serves PrestaShop lookups and product deactivation.
type StorefrontEndpoints interface {
	ListProducts(c *gin.Context)
	GetProduct(c *gin.Context)
	DeactivateProduct(c *gin.Context)
	ListOrders(c *gin.Context)
	GetOrder(c *gin.Context)
	ListCustomers(c *gin.Context)
	ListPayments(c *gin.Context)
	GetPayment(c *gin.Context)
}

// SyncEndpoints triggers catalog pushes and ERP drift reconciliation.
type SyncEndpoints interface {
	SyncCatalog(c *gin.Context)
	SyncProduct(c *gin.Context)
	SyncERP(c *gin.Context)
	SyncERPReference(c *gin.Context)
}

// SystemEndpoints exposes process info and scheduler state.
type SystemEndpoints interface {
	GetSystemInfo(c *gin.Context)
	Ping(c *gin.Context)
	ListSyncJobs(c *gin.Context)
}

// Handlers groups everything the bridge API mounts.
type Handlers struct {
	ERP        ERPEndpoints
	Storefront StorefrontEndpoints
	Sync       SyncEndpoints
	System     SystemEndpoints
}

// Bridge lays out the /odoo, /prestashop and /system sections.
func Bridge(h Handlers) []*Section {
	odoo := NewSection("/odoo").
		GET("/products", h.ERP.ListProducts).
		GET("/productStock", h.ERP.ListStockQuants).
		GET("/suppliers", h.ERP.ListSuppliers).
		GET("/orders", h.ERP.ListSaleOrders).
		GET("/productCategories", h.ERP.ListCategories)

	prestashop := NewSection("/prestashop").
		GET("/product", h.Storefront.ListProducts).
		GET("/product/:sku", h.Storefront.GetProduct).
		GETOrPOST("/product/:sku/deactivate", h.Storefront.DeactivateProduct).
		GET("/orders", h.Storefront.ListOrders).
		GET("/order/:reference", h.Storefront.GetOrder).
		GET("/customers", h.Storefront.ListCustomers).
		GET("/payments", h.Storefront.ListPayments).
		GET("/payments/:id", h.Storefront.GetPayment)

	// "bulk" is a static segment so it wins over :reference
	prestashop.Sub("/products/from-odoo").
		GETOrPOST("/bulk", h.Sync.SyncCatalog).
		GET("/:reference", h.Sync.SyncProduct)

	prestashop.Sub("/sync/prestashop-to-odoo").
		GET("", h.Sync.SyncERP).
		GET("/:reference", h.Sync.SyncERPReference)

	system := NewSection("/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping).
		GET("/jobs", h.System.ListSyncJobs)

	return []*Section{odoo, prestashop, system}
}
