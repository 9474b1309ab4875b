package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/addictonline/orderprint/internal/shopify"
)

// OrderListRequest is the order index payload. Variables carry the composed
// search query and paging cursors; CreatedAt is the floor date used by the
// processing-count oracle.
type OrderListRequest struct {
	Variables shopify.OrderListVariables `json:"variables"`
	CreatedAt string                     `json:"createdAt"`
}

// OrderListResponse feeds the order index tabs. Count field names mirror the
// frontend contract.
type OrderListResponse struct {
	Orders          *shopify.OrdersConnection `json:"ordersList"`
	AllCount        int                       `json:"allCnt"`
	ProcessingCount int                       `json:"proCnt"`
	FulfilledCount  int                       `json:"comCnt"`
}

type PhoneSearchRequest struct {
	Variables shopify.OrderListVariables `json:"variables"`
	Phone     string                     `json:"phone"`
}

type PhoneSearchResponse struct {
	Orders []shopify.OrderEdge `json:"orders"`
}

// ReportListRequest narrows the report by an optional numeric order-number
// range; empty strings leave a bound open.
type ReportListRequest struct {
	Variables shopify.OrderListVariables `json:"variables"`
	Start     string                     `json:"start"`
	End       string                     `json:"end"`
}

type ReportListResponse struct {
	Orders []shopify.OrderEdge `json:"orders"`
	Report []ReportLine        `json:"report"`
}

type FulfillmentRequest struct {
	FulfillmentIDs []string `json:"fulfillmentIds"`
}

type PrintLabelRequest struct {
	SelIDs []SelectedOrder `json:"selIds"`
}

type SelectedOrder struct {
	ID string `json:"id"`
}

type PrintLabelResponse struct {
	Content string `json:"content"`
}

// ParseOrderID resolves a UI-selected order id to its numeric form. Selected
// rows arrive as "<orderGID>#<fulfillmentOrderGID>" composites or as plain
// numeric ids; the fulfillment suffix and any GID prefix are stripped.
func ParseOrderID(raw string) (int64, error) {
	id := raw
	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[:i]
	}
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}

	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q: %w", raw, err)
	}
	return n, nil
}

// parseRangeBound parses an optional numeric range bound; "" means open.
func parseRangeBound(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid range bound %q: %w", s, err)
	}
	return &n, nil
}
