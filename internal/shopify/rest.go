package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/config"
)

// orderFields is the field list requested when resolving full order records
// for label printing.
const orderFields = "billing_address,shipping_address,note,name,order_number,contact_email,tags,line_items,admin_graphql_api_id,created_at,total_price_set,shipping_lines,app_id"

// RESTClient talks to the Shopify REST Admin API: the order-count oracle and
// the bulk order fetch used by label issuance.
type RESTClient struct {
	shopDomain  string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewRESTClient creates a new Shopify REST client
func NewRESTClient(cfg config.ShopifyConfig, logger *zap.Logger) *RESTClient {
	return &RESTClient{
		shopDomain:  normalizeShopDomain(cfg.ShopDomain),
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CountFilter narrows the order count. Zero values are omitted from the query.
type CountFilter struct {
	Status            string
	FulfillmentStatus string
	FinancialStatus   string
	CreatedAtMin      string
}

// CountOrders returns the number of orders matching the filter.
func (c *RESTClient) CountOrders(ctx context.Context, filter CountFilter) (int, error) {
	params := url.Values{}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.FulfillmentStatus != "" {
		params.Set("fulfillment_status", filter.FulfillmentStatus)
	}
	if filter.FinancialStatus != "" {
		params.Set("financial_status", filter.FinancialStatus)
	}
	if filter.CreatedAtMin != "" {
		params.Set("created_at_min", filter.CreatedAtMin)
	}

	var result struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "orders/count.json", params, &result); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return result.Count, nil
}

// OrdersByIDs fetches full order records for the given numeric order ids.
func (c *RESTClient) OrdersByIDs(ctx context.Context, ids []int64) ([]RESTOrder, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = strconv.FormatInt(id, 10)
	}

	params := url.Values{}
	params.Set("status", "any")
	params.Set("ids", strings.Join(idStrs, ","))
	params.Set("fields", orderFields)

	var result struct {
		Orders []RESTOrder `json:"orders"`
	}
	if err := c.get(ctx, "orders.json", params, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch orders by ids: %w", err)
	}

	return result.Orders, nil
}

func (c *RESTClient) get(ctx context.Context, resource string, params url.Values, out interface{}) error {
	u := fmt.Sprintf("https://%s/admin/api/%s/%s", c.shopDomain, apiVersion, resource)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("shopify API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// RESTOrder is the REST representation of an order, restricted to the fields
// label issuance needs. Tags arrive as one comma-separated string here,
// unlike the GraphQL tag list.
type RESTOrder struct {
	Name              string          `json:"name"`
	OrderNumber       int64           `json:"order_number"`
	Note              string          `json:"note"`
	ContactEmail      string          `json:"contact_email"`
	Tags              string          `json:"tags"`
	AdminGraphQLAPIID string          `json:"admin_graphql_api_id"`
	AppID             int64           `json:"app_id"`
	CreatedAt         time.Time       `json:"created_at"`
	TotalPriceSet     RESTPriceSet    `json:"total_price_set"`
	ShippingAddress   *RESTAddress    `json:"shipping_address"`
	BillingAddress    *RESTAddress    `json:"billing_address"`
	LineItems         []RESTLineItem  `json:"line_items"`
	ShippingLines     []RESTShipLine  `json:"shipping_lines"`
}

type RESTPriceSet struct {
	ShopMoney RESTMoney `json:"shop_money"`
}

type RESTMoney struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

type RESTAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
}

type RESTLineItem struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type RESTShipLine struct {
	Source string `json:"source"`
	Title  string `json:"title"`
}
