// Package integration contains the Integration bounded context.
// This context keeps the ERP catalog and the storefront catalog consistent.
//
// Key concepts:
//   - CatalogItem: a sellable ERP product keyed by SKU
//   - StorefrontProduct / StockRecord: the storefront's view of the same product and its inventory row
//   - SyncOutcome / BulkSyncReport: per-item results of pushing the ERP catalog to the storefront
//   - ERPChangeset / DriftReport: price and quantity drift pulled back from the storefront into the ERP
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (Odoo XML-RPC, PrestaShop webservice) are in the infrastructure layer
package integration
