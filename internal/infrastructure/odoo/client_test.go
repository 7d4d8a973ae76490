package odoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/syncbridge/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Fake XML-RPC server
// ---------------------------------------------------------------------------

type rpcRequest struct {
	Path string
	Body string
}

type fakeOdoo struct {
	mu       sync.Mutex
	requests []rpcRequest
	uid      string
	objects  func(body string) string
}

func (f *fakeOdoo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	body := string(data)

	f.mu.Lock()
	f.requests = append(f.requests, rpcRequest{Path: r.URL.Path, Body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "text/xml")
	switch r.URL.Path {
	case commonEndpoint:
		_, _ = io.WriteString(w, rpcResponse(f.uid))
	case objectEndpoint:
		_, _ = io.WriteString(w, f.objects(body))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeOdoo) requestsTo(path string) []rpcRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []rpcRequest
	for _, r := range f.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func newTestClient(t *testing.T, objects func(body string) string) (*Client, *fakeOdoo) {
	t.Helper()
	fake := &fakeOdoo{uid: "<int>2</int>", objects: objects}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := NewClient(&Config{
		URL:      server.URL + "/",
		DB:       "erp",
		Username: "admin",
		Password: "secret",
	})
	return client, fake
}

func rpcResponse(value string) string {
	return `<?xml version="1.0"?><methodResponse><params><param><value>` + value + `</value></param></params></methodResponse>`
}

func rpcFault(code int, message string) string {
	return fmt.Sprintf(`<?xml version="1.0"?><methodResponse><fault><value><struct>`+
		`<member><name>faultCode</name><value><int>%d</int></value></member>`+
		`<member><name>faultString</name><value><string>%s</string></value></member>`+
		`</struct></value></fault></methodResponse>`, code, message)
}

func rpcArray(values ...string) string {
	var b strings.Builder
	b.WriteString("<array><data>")
	for _, v := range values {
		b.WriteString("<value>" + v + "</value>")
	}
	b.WriteString("</data></array>")
	return b.String()
}

func rpcStruct(members map[string]string) string {
	var b strings.Builder
	b.WriteString("<struct>")
	for name, value := range members {
		b.WriteString("<member><name>" + name + "</name><value>" + value + "</value></member>")
	}
	b.WriteString("</struct>")
	return b.String()
}

func productStruct(id int, sku, name string, price, qty float64) string {
	code := "<boolean>0</boolean>"
	if sku != "" {
		code = "<string>" + sku + "</string>"
	}
	return rpcStruct(map[string]string{
		"id":            fmt.Sprintf("<int>%d</int>", id),
		"default_code":  code,
		"name":          "<string>" + name + "</string>",
		"list_price":    fmt.Sprintf("<double>%v</double>", price),
		"qty_available": fmt.Sprintf("<double>%v</double>", qty),
	})
}

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{name: "valid", config: &Config{URL: "https://erp.example.com/", DB: "erp", Username: "u", Password: "p"}},
		{name: "missing URL", config: &Config{DB: "erp", Username: "u", Password: "p"}, wantErr: ErrConfigMissingURL},
		{name: "missing DB", config: &Config{URL: "https://erp.example.com", Username: "u", Password: "p"}, wantErr: ErrConfigMissingDB},
		{name: "missing password", config: &Config{URL: "https://erp.example.com", DB: "erp", Username: "u"}, wantErr: ErrConfigMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://erp.example.com/xmlrpc/2/common", tt.config.commonURL())
			assert.Equal(t, DefaultTimeout, tt.config.Timeout)
		})
	}
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	client := NewClient(&Config{URL: "https://erp.example.com/", DB: "erp", Username: "u", Password: "p"})

	assert.Equal(t, "https://erp.example.com/xmlrpc/2/object", client.config.objectURL())
	assert.Equal(t, DefaultTimeout, client.config.Timeout)

	partial := NewClient(&Config{URL: "https://erp.example.com/"})
	assert.False(t, partial.IsConfigured())
	assert.Equal(t, DefaultTimeout, partial.config.Timeout)
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(&Config{URL: "http://127.0.0.1:1"})

	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, integration.ErrPlatformNotConfigured)
	assert.Equal(t, "Odoo not configured", err.Error())
}

// ---------------------------------------------------------------------------
// Authentication Tests
// ---------------------------------------------------------------------------

func TestClient_AuthenticatesEveryOperation(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		return rpcResponse(rpcArray())
	})

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	_, err = client.ListCategories(context.Background())
	require.NoError(t, err)

	auth := fake.requestsTo(commonEndpoint)
	require.Len(t, auth, 2)
	assert.Contains(t, auth[0].Body, "<methodName>authenticate</methodName>")
	assert.Contains(t, auth[0].Body, "<string>erp</string>")
	assert.Contains(t, auth[0].Body, "<string>admin</string>")
	assert.Contains(t, auth[0].Body, "<string>secret</string>")
}

func TestClient_AuthenticationRejected(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		return rpcResponse(rpcArray())
	})
	fake.uid = "<boolean>0</boolean>"

	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, integration.ErrPlatformAuthFailed)
	assert.Empty(t, fake.requestsTo(objectEndpoint))
}

func TestClient_Fault(t *testing.T) {
	client, _ := newTestClient(t, func(body string) string {
		return rpcFault(2, "Access Denied")
	})

	_, err := client.ListSuppliers(context.Background())
	assert.ErrorIs(t, err, integration.ErrPlatformRequestFailed)
	assert.Contains(t, err.Error(), "Access Denied")
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	client := NewClient(&Config{URL: addr, DB: "erp", Username: "u", Password: "p"})
	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
}

func TestClient_ContextTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(body string) string {
		time.Sleep(500 * time.Millisecond)
		return rpcResponse(rpcArray())
	})

	ctx := integration.WithUpstreamTimeout(context.Background(), 50*time.Millisecond)
	start := time.Now()
	_, err := client.ListProducts(ctx)
	assert.ErrorIs(t, err, integration.ErrPlatformUnavailable)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

// ---------------------------------------------------------------------------
// Product Tests
// ---------------------------------------------------------------------------

func TestClient_ListProducts(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		return rpcResponse(rpcArray(
			productStruct(7, "ABC-1", "Widget", 10.0, 5.0),
			productStruct(8, "", "No code", 0, 0),
		))
	})

	items, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(7), items[0].ERPID)
	assert.Equal(t, "ABC-1", items[0].SKU)
	assert.Equal(t, "Widget", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.True(t, items[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.False(t, items[1].HasSKU())

	calls := fake.requestsTo(objectEndpoint)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Body, "<methodName>execute_kw</methodName>")
	assert.Contains(t, calls[0].Body, "<string>product.product</string>")
	assert.Contains(t, calls[0].Body, "<string>search_read</string>")
	assert.Contains(t, calls[0].Body, "<string>qty_available</string>")
}

func TestClient_FindProductBySKU(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		if strings.Contains(body, "<string>ABC-1</string>") {
			return rpcResponse(rpcArray(productStruct(7, "ABC-1", "Widget", 10.0, 5.0)))
		}
		return rpcResponse(rpcArray())
	})

	item, err := client.FindProductBySKU(context.Background(), "ABC-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ERPID)

	calls := fake.requestsTo(objectEndpoint)
	assert.Contains(t, calls[0].Body, "<string>default_code</string>")
	assert.Contains(t, calls[0].Body, "<string>=</string>")

	_, err = client.FindProductBySKU(context.Background(), "MISSING")
	assert.ErrorIs(t, err, integration.ErrProductNotFound)
}

func TestClient_WriteProduct(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		return rpcResponse("<boolean>1</boolean>")
	})

	price := decimal.RequireFromString("12.5")
	err := client.WriteProduct(context.Background(), 7, integration.ERPChangeset{ListPrice: &price})
	require.NoError(t, err)

	calls := fake.requestsTo(objectEndpoint)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Body, "<string>write</string>")
	assert.Contains(t, calls[0].Body, "<string>product.product</string>")
	assert.Contains(t, calls[0].Body, "list_price")
	assert.Contains(t, calls[0].Body, "12.5")
	assert.NotContains(t, calls[0].Body, "qty_available")
}

func TestClient_WriteProduct_EmptyChangesetSkipsCall(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		return rpcResponse("<boolean>1</boolean>")
	})

	require.NoError(t, client.WriteProduct(context.Background(), 7, integration.ERPChangeset{}))
	assert.Empty(t, fake.requestsTo(commonEndpoint))
	assert.Empty(t, fake.requestsTo(objectEndpoint))
}

func TestClient_WriteProduct_Fault(t *testing.T) {
	client, _ := newTestClient(t, func(body string) string {
		return rpcFault(1, "ValidationError")
	})

	qty := decimal.NewFromInt(3)
	err := client.WriteProduct(context.Background(), 7, integration.ERPChangeset{QtyAvailable: &qty})
	assert.ErrorIs(t, err, integration.ErrERPWriteFailed)
}

// ---------------------------------------------------------------------------
// Directory Tests
// ---------------------------------------------------------------------------

func TestClient_ListStockQuants(t *testing.T) {
	client, _ := newTestClient(t, func(body string) string {
		return rpcResponse(rpcArray(rpcStruct(map[string]string{
			"id":          "<int>1</int>",
			"product_id":  rpcArray("<int>7</int>", "<string>[ABC-1] Widget</string>"),
			"location_id": "<boolean>0</boolean>",
			"quantity":    "<double>4.5</double>",
		})))
	})

	quants, err := client.ListStockQuants(context.Background())
	require.NoError(t, err)
	require.Len(t, quants, 1)
	require.NotNil(t, quants[0].Product)
	assert.Equal(t, int64(7), quants[0].Product.ID)
	assert.Equal(t, "[ABC-1] Widget", quants[0].Product.Name)
	assert.Nil(t, quants[0].Location)
	assert.True(t, quants[0].Quantity.Equal(decimal.RequireFromString("4.5")))
}

func TestClient_ListSuppliers(t *testing.T) {
	client, fake := newTestClient(t, func(body string) string {
		return rpcResponse(rpcArray(rpcStruct(map[string]string{
			"id":              "<int>3</int>",
			"name":            "<string>Acme</string>",
			"display_name":    "<string>Acme</string>",
			"email":           "<boolean>0</boolean>",
			"contact_address": "<string>Main St 1</string>",
			"active":          "<boolean>1</boolean>",
			"is_company":      "<boolean>1</boolean>",
		})))
	})

	suppliers, err := client.ListSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Acme", suppliers[0].Name)
	assert.Equal(t, "", suppliers[0].Email)
	assert.True(t, suppliers[0].Active)
	assert.True(t, suppliers[0].IsCompany)

	body := fake.requestsTo(objectEndpoint)[0].Body
	assert.Contains(t, body, "<string>res.partner</string>")
	assert.Contains(t, body, "<string>supplier_rank</string>")
	assert.Contains(t, body, "<string>&gt;</string>")
}

func TestClient_ListSaleOrders(t *testing.T) {
	client, _ := newTestClient(t, func(body string) string {
		return rpcResponse(rpcArray(rpcStruct(map[string]string{
			"id":           "<int>9</int>",
			"name":         "<string>S00009</string>",
			"date_order":   "<string>2024-03-01 12:00:00</string>",
			"state":        "<string>sale</string>",
			"amount_total": "<double>99.9</double>",
			"partner_id":   rpcArray("<int>3</int>", "<string>Acme</string>"),
		})))
	})

	orders, err := client.ListSaleOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "S00009", orders[0].Name)
	assert.True(t, orders[0].AmountTotal.Equal(decimal.RequireFromString("99.9")))
	assert.Equal(t, &integration.Many2One{ID: 3, Name: "Acme"}, orders[0].Partner)
}

// ---------------------------------------------------------------------------
// Decode Tests
// ---------------------------------------------------------------------------

func TestDecodeHelpers(t *testing.T) {
	assert.Equal(t, "", asString(false))
	assert.Equal(t, "ABC-1", asString(" ABC-1 "))

	id, ok := asInt64(int64(4))
	assert.True(t, ok)
	assert.Equal(t, int64(4), id)
	_, ok = asInt64(false)
	assert.False(t, ok)

	assert.True(t, asDecimal(0.1).Equal(decimal.RequireFromString("0.1")))
	assert.True(t, asDecimal(false).IsZero())
	assert.Nil(t, asMany2One(false))
	assert.False(t, asBool(nil))
}
