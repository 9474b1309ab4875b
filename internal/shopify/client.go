package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/config"
)

const apiVersion = "2024-01"

type Client struct {
	shopDomain  string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Shopify GraphQL client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		shopDomain:  normalizeShopDomain(cfg.ShopDomain),
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// normalizeShopDomain removes https://, http://, and trailing slashes
func normalizeShopDomain(shopDomain string) string {
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	return strings.TrimSuffix(shopDomain, "/")
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string      `json:"query"`
	Variables interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// Execute executes a GraphQL query/mutation
func (c *Client) Execute(ctx context.Context, query string, variables interface{}) (*GraphQLResponse, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.shopDomain, apiVersion)

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shopify API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(graphQLResp.Errors) > 0 {
		return nil, fmt.Errorf("graphQL errors: %v", graphQLResp.Errors)
	}

	return &graphQLResp, nil
}

// QueryOrders runs the order list query and decodes the orders connection.
func (c *Client) QueryOrders(ctx context.Context, vars OrderListVariables) (*OrdersConnection, error) {
	resp, err := c.Execute(ctx, OrderListQuery, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	var result struct {
		Orders OrdersConnection `json:"orders"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse orders response: %w", err)
	}

	return &result.Orders, nil
}

// AddOrderTags appends tags to an order's tag collection via tagsAdd.
// Existing tags are never replaced; the mutation only merges.
func (c *Client) AddOrderTags(ctx context.Context, orderGID string, tags []string) error {
	resp, err := c.Execute(ctx, TagsAddMutation, map[string]interface{}{
		"id":   orderGID,
		"tags": tags,
	})
	if err != nil {
		return fmt.Errorf("failed to add order tags: %w", err)
	}

	var result struct {
		TagsAdd struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"tagsAdd"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse tagsAdd response: %w", err)
	}
	if len(result.TagsAdd.UserErrors) > 0 {
		return fmt.Errorf("shopify user errors: %v", result.TagsAdd.UserErrors)
	}

	return nil
}

// CreateFulfillment creates a fulfillment for a single fulfillment order.
func (c *Client) CreateFulfillment(ctx context.Context, fulfillmentOrderGID string) error {
	resp, err := c.Execute(ctx, FulfillmentCreateMutation, map[string]interface{}{
		"fulfillment": map[string]interface{}{
			"lineItemsByFulfillmentOrder": map[string]interface{}{
				"fulfillmentOrderId": fulfillmentOrderGID,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create fulfillment: %w", err)
	}

	var result struct {
		FulfillmentCreateV2 struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"fulfillmentCreateV2"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse fulfillmentCreateV2 response: %w", err)
	}
	if len(result.FulfillmentCreateV2.UserErrors) > 0 {
		return fmt.Errorf("shopify user errors: %v", result.FulfillmentCreateV2.UserErrors)
	}

	return nil
}

// UserError is the userErrors element Shopify mutations return.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func (e UserError) String() string {
	return fmt.Sprintf("%s: %s", strings.Join(e.Field, "."), e.Message)
}
