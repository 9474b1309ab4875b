package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addictonline/orderprint/internal/cargo"
	"github.com/addictonline/orderprint/internal/config"
	"github.com/addictonline/orderprint/internal/shopify"
)

func testSender() config.SenderConfig {
	return config.SenderConfig{
		Company: "ADDICT",
		Street1: "5",
		Street2: "יוחנן הסנדלר",
		City:    "הרצליה",
		Phone:   "035017825",
	}
}

func testOrder(itemCount int) shopify.RESTOrder {
	items := make([]shopify.RESTLineItem, itemCount)
	for i := range items {
		items[i] = shopify.RESTLineItem{Name: "Item", SKU: "SKU-1", Quantity: 1}
	}
	return shopify.RESTOrder{
		Name: "#212725",
		ShippingAddress: &shopify.RESTAddress{
			FirstName: "דנה",
			LastName:  "כהן",
			Address1:  "הרצל 10",
			City:      "תל אביב",
			Phone:     "0541234567",
		},
		LineItems: items,
	}
}

func testTag() cargo.TrackingTag {
	return cargo.TrackingTag{
		TrackingNumber: "12345",
		LineNumber:     "7",
		ReplyCode:      "RR0000000021B",
	}
}

func TestRenderOrder(t *testing.T) {
	r, err := NewRenderer(testSender())
	require.NoError(t, err)

	html, err := r.RenderOrder(testOrder(2), testTag())
	require.NoError(t, err)

	assert.Contains(t, html, "#212725")
	assert.Contains(t, html, "12345")
	assert.Contains(t, html, "RR0000000021B")
	assert.Contains(t, html, "דנה")
	assert.Contains(t, html, "ADDICT")
	// Barcodes are embedded, not fetched.
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestRenderOrderPageCount(t *testing.T) {
	r, err := NewRenderer(testSender())
	require.NoError(t, err)

	tests := []struct {
		items     int
		pageTotal string
	}{
		{items: 1, pageTotal: "3"},
		{items: 6, pageTotal: "3"},
		{items: 7, pageTotal: "4"},
		{items: 13, pageTotal: "5"},
	}

	for _, tt := range tests {
		html, err := r.RenderOrder(testOrder(tt.items), testTag())
		require.NoError(t, err)
		// The page counter renders as "<n> מתוך <total>".
		assert.Contains(t, html, "מתוך "+tt.pageTotal, "items=%d", tt.items)
	}
}

func TestRenderOrderMissingAddress(t *testing.T) {
	r, err := NewRenderer(testSender())
	require.NoError(t, err)

	order := testOrder(1)
	order.ShippingAddress = nil

	html, err := r.RenderOrder(order, testTag())
	require.NoError(t, err)
	assert.Contains(t, html, "#212725")
}

func TestRenderDocument(t *testing.T) {
	r, err := NewRenderer(testSender())
	require.NoError(t, err)

	doc := r.RenderDocument([]string{"<div>a</div>", "<div>b</div>"})

	assert.True(t, strings.HasPrefix(doc, documentHeader))
	assert.Less(t, strings.Index(doc, "<div>a</div>"), strings.Index(doc, "<div>b</div>"))
}
