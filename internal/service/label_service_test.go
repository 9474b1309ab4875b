package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/cargo"
	"github.com/addictonline/orderprint/internal/config"
	"github.com/addictonline/orderprint/internal/shopify"
)

type fakeFetcher struct {
	orders []shopify.RESTOrder
	err    error
}

func (f *fakeFetcher) OrdersByIDs(_ context.Context, _ []int64) ([]shopify.RESTOrder, error) {
	return f.orders, f.err
}

type fakeTagWriter struct {
	mu    sync.Mutex
	calls map[string][]string
	err   error
}

func (f *fakeTagWriter) AddOrderTags(_ context.Context, orderGID string, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string][]string{}
	}
	f.calls[orderGID] = tags
	return f.err
}

type fakeFulfiller struct {
	mu     sync.Mutex
	gids   []string
	failOn string
}

func (f *fakeFulfiller) CreateFulfillment(_ context.Context, gid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gids = append(f.gids, gid)
	if gid == f.failOn {
		return errors.New("fulfillment rejected")
	}
	return nil
}

type fakeCarrier struct {
	mu       sync.Mutex
	requests []cargo.ShipmentRequest
	result   *cargo.ShipmentResult
	err      error
}

func (f *fakeCarrier) CreateShipment(_ context.Context, req cargo.ShipmentRequest) (*cargo.ShipmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeRenderer produces one recognizable fragment per order.
type fakeRenderer struct{}

func (fakeRenderer) RenderOrder(order shopify.RESTOrder, tag cargo.TrackingTag) (string, error) {
	return "[" + order.Name + ":" + tag.TrackingNumber + ":" + tag.ReplyCode + "]", nil
}

func (fakeRenderer) RenderDocument(fragments []string) string {
	return "<doc>" + strings.Join(fragments, "") + "</doc>"
}

func labelTestConfig() config.CargoConfig {
	return config.CargoConfig{
		CustomerCode: "125",
		CarrierID:    1,
		Sender: config.SenderConfig{
			Company: "ADDICT",
			Street1: "5",
			Street2: "יוחנן הסנדלר",
			City:    "הרצליה",
			Phone:   "035017825",
		},
	}
}

func restOrder(name, tags string) shopify.RESTOrder {
	return shopify.RESTOrder{
		Name:              name,
		Tags:              tags,
		AdminGraphQLAPIID: "gid://shopify/Order/" + strings.TrimPrefix(name, "#"),
		AppID:             580111,
		ContactEmail:      "buyer@example.com",
		TotalPriceSet: shopify.RESTPriceSet{
			ShopMoney: shopify.RESTMoney{Amount: decimal.NewFromInt(150)},
		},
		ShippingAddress: &shopify.RESTAddress{
			FirstName: "דנה",
			LastName:  "כהן",
			Address1:  "הרצל 10",
			City:      "תל אביב",
			Zip:       "6100000",
			Country:   "Israel",
			Phone:     "0541234567",
		},
	}
}

func TestIssueLabelsTaggedOrderSkipsCarrier(t *testing.T) {
	carrier := &fakeCarrier{}
	tags := &fakeTagWriter{}
	fetcher := &fakeFetcher{orders: []shopify.RESTOrder{
		restOrder("#212725", "Cargo Tracking:12345, LineNumber:7, RRcode:RRSTALE"),
	}}
	svc := NewLabelService(fetcher, tags, nil, carrier, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	doc, failures, err := svc.IssueLabels(context.Background(), []int64{212725})
	require.NoError(t, err)
	assert.Empty(t, failures)

	// Already-shipped orders never hit the carrier or rewrite their tag.
	assert.Empty(t, carrier.requests)
	assert.Empty(t, tags.calls)

	// The reply code comes from the order name, not the stored tag.
	assert.Equal(t, "<doc>[#212725:12345:RR0000000021B]</doc>", doc)
}

func TestIssueLabelsUntaggedOrderShipsAndTags(t *testing.T) {
	carrier := &fakeCarrier{result: &cargo.ShipmentResult{
		ShipmentID: json.Number("12345"),
		LineText:   json.Number("7"),
	}}
	tags := &fakeTagWriter{}
	fetcher := &fakeFetcher{orders: []shopify.RESTOrder{restOrder("#212725", "vip")}}
	svc := NewLabelService(fetcher, tags, nil, carrier, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	doc, failures, err := svc.IssueLabels(context.Background(), []int64{212725})
	require.NoError(t, err)
	assert.Empty(t, failures)

	require.Len(t, carrier.requests, 1)
	req := carrier.requests[0]
	assert.Equal(t, "#212725", req.TransactionID)
	assert.Equal(t, int64(580111), req.OrderID)
	assert.Equal(t, "125", req.CustomerCode)
	assert.Equal(t, "דנה כהן", req.ToAddress.Name)
	assert.Equal(t, "ADDICT", req.FromAddress.Company)
	// The carrier wants the destination zip on both endpoints.
	assert.Equal(t, "6100000", req.FromAddress.Zip)

	written := tags.calls["gid://shopify/Order/212725"]
	require.Len(t, written, 1)
	assert.Equal(t, "Cargo Tracking:12345, LineNumber:7, RRcode:RR0000000021B", written[0])

	assert.Equal(t, "<doc>[#212725:12345:RR0000000021B]</doc>", doc)
}

func TestIssueLabelsCarrierFailureReported(t *testing.T) {
	carrier := &fakeCarrier{err: errors.New("carrier unavailable")}
	fetcher := &fakeFetcher{orders: []shopify.RESTOrder{restOrder("#212725", "")}}
	svc := NewLabelService(fetcher, &fakeTagWriter{}, nil, carrier, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	doc, failures, err := svc.IssueLabels(context.Background(), []int64{212725})
	require.NoError(t, err)

	// No document on partial failure; the failure names the order.
	assert.Empty(t, doc)
	require.Len(t, failures, 1)
	assert.Equal(t, "#212725", failures[0].OrderName)
	assert.Contains(t, failures[0].Error, "carrier unavailable")
}

func TestIssueLabelsFragmentsKeepOrder(t *testing.T) {
	carrier := &fakeCarrier{result: &cargo.ShipmentResult{
		ShipmentID: json.Number("99"),
		LineText:   json.Number("1"),
	}}
	fetcher := &fakeFetcher{orders: []shopify.RESTOrder{
		restOrder("#212725", "Cargo Tracking:1, LineNumber:1, RRcode:RR0000000021B"),
		restOrder("#212726", "Cargo Tracking:2, LineNumber:2, RRcode:RR0000000031B"),
		restOrder("#212727", "Cargo Tracking:3, LineNumber:3, RRcode:RR0000000041B"),
	}}
	svc := NewLabelService(fetcher, &fakeTagWriter{}, nil, carrier, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	doc, failures, err := svc.IssueLabels(context.Background(), []int64{212725, 212726, 212727})
	require.NoError(t, err)
	assert.Empty(t, failures)

	// Fragments appear in selection order regardless of goroutine scheduling.
	assert.Equal(t, "<doc>[#212725:1:RR0000000021B][#212726:2:RR0000000031B][#212727:3:RR0000000041B]</doc>", doc)
}

func TestIssueLabelsNoOrdersFound(t *testing.T) {
	svc := NewLabelService(&fakeFetcher{}, &fakeTagWriter{}, nil, &fakeCarrier{}, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	_, _, err := svc.IssueLabels(context.Background(), []int64{42})
	assert.Error(t, err)
}

func TestFulfillOrders(t *testing.T) {
	fulfiller := &fakeFulfiller{}
	svc := NewLabelService(nil, nil, fulfiller, nil, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	failures := svc.FulfillOrders(context.Background(), []string{"gid://shopify/FulfillmentOrder/1", "gid://shopify/FulfillmentOrder/2"})
	assert.Empty(t, failures)
	assert.Len(t, fulfiller.gids, 2)
}

func TestFulfillOrdersReportsFailures(t *testing.T) {
	fulfiller := &fakeFulfiller{failOn: "gid://shopify/FulfillmentOrder/2"}
	svc := NewLabelService(nil, nil, fulfiller, nil, fakeRenderer{}, labelTestConfig(), zap.NewNop())

	failures := svc.FulfillOrders(context.Background(), []string{
		"gid://shopify/FulfillmentOrder/1",
		"gid://shopify/FulfillmentOrder/2",
	})

	require.Len(t, failures, 1)
	assert.Equal(t, "gid://shopify/FulfillmentOrder/2", failures[0].OrderName)
	assert.Contains(t, failures[0].Error, "fulfillment rejected")
}
