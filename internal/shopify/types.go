package shopify

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderListVariables parameterizes the order list query. Forward paging sets
// First/After, backward paging sets Last/Before; the remote cursor values are
// opaque and must never be interpreted.
type OrderListVariables struct {
	First   *int    `json:"ordersFirst,omitempty"`
	Last    *int    `json:"ordersLast,omitempty"`
	After   *string `json:"after,omitempty"`
	Before  *string `json:"before,omitempty"`
	SortKey string  `json:"sortKey,omitempty"`
	Reverse bool    `json:"reverse"`
	Query   string  `json:"query,omitempty"`
}

// OrdersConnection is one page of the remote order store.
type OrdersConnection struct {
	Edges    []OrderEdge `json:"edges"`
	PageInfo PageInfo    `json:"pageInfo"`
}

type OrderEdge struct {
	Cursor string    `json:"cursor"`
	Node   OrderNode `json:"node"`
}

type PageInfo struct {
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	HasNextPage     bool   `json:"hasNextPage"`
	EndCursor       string `json:"endCursor"`
}

type OrderNode struct {
	ID                               string       `json:"id"`
	Name                             string       `json:"name"`
	CreatedAt                        time.Time    `json:"createdAt"`
	ProcessedAt                      time.Time    `json:"processedAt"`
	Note                             string       `json:"note"`
	DisplayFinancialStatus           string       `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus         string       `json:"displayFulfillmentStatus"`
	LineItems                        LineItems    `json:"lineItems"`
	ShippingAddress                  *Address     `json:"shippingAddress"`
	BillingAddress                   *Address     `json:"billingAddress"`
	CurrentTotalPriceSet             PriceSet     `json:"currentTotalPriceSet"`
	FulfillmentOrders                NodeIDEdges  `json:"fulfillmentOrders"`
	CurrentSubtotalLineItemsQuantity int          `json:"currentSubtotalLineItemsQuantity"`
	Tags                             []string     `json:"tags"`
	Customer                         *Customer    `json:"customer"`
	ShippingLine                     *ShippingLineNode `json:"shippingLine"`
}

type LineItems struct {
	Nodes []LineItemNode `json:"nodes"`
}

type LineItemNode struct {
	Name         string   `json:"name"`
	Quantity     int      `json:"quantity"`
	Variant      *Variant `json:"variant"`
	VariantTitle string   `json:"variantTitle"`
}

type Variant struct {
	Price decimal.Decimal `json:"price"`
}

type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
}

type PriceSet struct {
	ShopMoney Money `json:"shopMoney"`
}

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type NodeIDEdges struct {
	Edges []struct {
		Node struct {
			ID string `json:"id"`
		} `json:"node"`
	} `json:"edges"`
}

type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ShippingLineNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
