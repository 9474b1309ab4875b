package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/config"
	"github.com/addictonline/orderprint/internal/shopify"
)

// Look-ahead pagination: one logical page served to the UI merges the
// caller's fetch plus up to four extra fetches of this size, so a "page" is
// at most 5x the nominal size.
const (
	lookaheadFetches  = 4
	lookaheadPageSize = 10
	lookaheadSortKey  = "PROCESSED_AT"

	phoneSearchSortKey = "ID"
)

type orderQuerier interface {
	QueryOrders(ctx context.Context, vars shopify.OrderListVariables) (*shopify.OrdersConnection, error)
}

type orderCounter interface {
	CountOrders(ctx context.Context, filter shopify.CountFilter) (int, error)
}

type orderService struct {
	gql    orderQuerier
	rest   orderCounter
	pager  config.PagerConfig
	logger *zap.Logger
}

// NewOrderService creates a new order aggregation service
func NewOrderService(gql orderQuerier, rest orderCounter, pager config.PagerConfig, logger *zap.Logger) *orderService {
	return &orderService{
		gql:    gql,
		rest:   rest,
		pager:  pager,
		logger: logger,
	}
}

// ListOrders runs one look-ahead-merged page fetch. Forward paging appends
// look-ahead edges and advances the tail cursor; backward paging prepends
// earlier batches and (by default) keeps the first response's tail cursor so
// "Previous" stays repeatable.
func (s *orderService) ListOrders(ctx context.Context, vars shopify.OrderListVariables) (*shopify.OrdersConnection, error) {
	conn, err := s.gql.QueryOrders(ctx, vars)
	if err != nil {
		return nil, err
	}

	if vars.Before != nil {
		return s.mergeBackward(ctx, conn, vars)
	}
	return s.mergeForward(ctx, conn, vars)
}

func (s *orderService) mergeForward(ctx context.Context, conn *shopify.OrdersConnection, vars shopify.OrderListVariables) (*shopify.OrdersConnection, error) {
	pageSize := lookaheadPageSize

	for i := 0; i < lookaheadFetches && conn.PageInfo.HasNextPage; i++ {
		after := conn.PageInfo.EndCursor
		next, err := s.gql.QueryOrders(ctx, shopify.OrderListVariables{
			First:   &pageSize,
			After:   &after,
			SortKey: lookaheadSortKey,
			Query:   vars.Query,
			Reverse: vars.Reverse,
		})
		if err != nil {
			return nil, err
		}

		conn.Edges = append(conn.Edges, next.Edges...)
		// The merged page exposes the cursor of the last fetch performed.
		conn.PageInfo.EndCursor = next.PageInfo.EndCursor
		conn.PageInfo.HasNextPage = next.PageInfo.HasNextPage
	}

	return conn, nil
}

func (s *orderService) mergeBackward(ctx context.Context, conn *shopify.OrdersConnection, vars shopify.OrderListVariables) (*shopify.OrdersConnection, error) {
	pageSize := lookaheadPageSize
	anchorEndCursor := conn.PageInfo.EndCursor
	anchorHasNext := conn.PageInfo.HasNextPage

	for i := 0; i < lookaheadFetches && conn.PageInfo.HasPreviousPage; i++ {
		before := conn.PageInfo.StartCursor
		prev, err := s.gql.QueryOrders(ctx, shopify.OrderListVariables{
			Last:    &pageSize,
			Before:  &before,
			SortKey: lookaheadSortKey,
			Query:   vars.Query,
			Reverse: vars.Reverse,
		})
		if err != nil {
			return nil, err
		}

		// Earlier batches go in front; the head cursor follows the newest
		// fetch while the tail cursor stays anchored.
		conn.Edges = append(prev.Edges, conn.Edges...)
		conn.PageInfo.StartCursor = prev.PageInfo.StartCursor
		conn.PageInfo.HasPreviousPage = prev.PageInfo.HasPreviousPage
		if !s.pager.AnchorBackwardCursor {
			conn.PageInfo.EndCursor = prev.PageInfo.EndCursor
			conn.PageInfo.HasNextPage = prev.PageInfo.HasNextPage
		}
	}

	if s.pager.AnchorBackwardCursor {
		conn.PageInfo.EndCursor = anchorEndCursor
		conn.PageInfo.HasNextPage = anchorHasNext
	}

	return conn, nil
}

// OrderCounts drives the order index tab counters.
type OrderCounts struct {
	All        int
	Processing int
	Fulfilled  int
}

// Counts queries the count oracle for the tab counters. Processing means
// unshipped or partial, paid, created after the floor date; fulfilled is
// derived, not queried.
func (s *orderService) Counts(ctx context.Context, createdAtMin string) (OrderCounts, error) {
	all, err := s.rest.CountOrders(ctx, shopify.CountFilter{Status: "any"})
	if err != nil {
		return OrderCounts{}, fmt.Errorf("failed to count all orders: %w", err)
	}

	processing, err := s.rest.CountOrders(ctx, shopify.CountFilter{
		FulfillmentStatus: "unshipped,partial",
		FinancialStatus:   "paid",
		CreatedAtMin:      createdAtMin,
	})
	if err != nil {
		return OrderCounts{}, fmt.Errorf("failed to count processing orders: %w", err)
	}

	return OrderCounts{
		All:        all,
		Processing: processing,
		Fulfilled:  all - processing,
	}, nil
}

// PhoneSearch walks every page of the query and keeps orders whose shipping
// phone contains the requested substring. The remote query grammar cannot
// express this, so the filter is a linear scan.
func (s *orderService) PhoneSearch(ctx context.Context, query, phone string) ([]shopify.OrderEdge, error) {
	pageSize := lookaheadPageSize
	vars := shopify.OrderListVariables{
		First:   &pageSize,
		SortKey: phoneSearchSortKey,
		Reverse: true,
		Query:   query,
	}

	matched := []shopify.OrderEdge{}
	for {
		conn, err := s.gql.QueryOrders(ctx, vars)
		if err != nil {
			return nil, err
		}

		for _, edge := range conn.Edges {
			if edge.Node.ShippingAddress == nil {
				continue
			}
			if strings.Contains(edge.Node.ShippingAddress.Phone, phone) {
				matched = append(matched, edge)
			}
		}

		if !conn.PageInfo.HasNextPage {
			return matched, nil
		}
		after := conn.PageInfo.EndCursor
		vars.After = &after
	}
}
