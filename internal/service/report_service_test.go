package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/shopify"
)

func line(name string, orderNum int64, qty int) ReportLine {
	return ReportLine{ItemName: name, OrderNumber: orderNum, Quantity: qty}
}

func quantities(lines []ReportLine) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l.Quantity
	}
	return out
}

func TestAggregateLinesMergesAdjacentRuns(t *testing.T) {
	lines := []ReportLine{
		line("Shirt", 1001, 2),
		line("Shirt", 1002, 3),
		line("Shirt", 1003, 1),
		line("Socks", 1001, 4),
	}

	got := AggregateLines(lines)

	// Only the last line of each run carries the total.
	assert.Equal(t, []int{0, 0, 6, 4}, quantities(got))
	// Input is untouched.
	assert.Equal(t, []int{2, 3, 1, 4}, quantities(lines))
}

func TestAggregateLinesPreservesTotal(t *testing.T) {
	lines := []ReportLine{
		line("A", 1, 2),
		line("A", 2, 5),
		line("B", 3, 1),
		line("B", 4, 1),
		line("C", 5, 7),
	}

	got := ZeroFiltered(AggregateLines(lines))

	total := 0
	for _, l := range got {
		total += l.Quantity
	}
	assert.Equal(t, 16, total)
	assert.Equal(t, []int{7, 2, 7}, quantities(got))
}

func TestAggregateLinesIdempotent(t *testing.T) {
	lines := []ReportLine{
		line("Shirt", 1001, 2),
		line("Shirt", 1002, 3),
		line("Socks", 1003, 4),
	}

	once := AggregateLines(lines)
	twice := AggregateLines(once)

	assert.Equal(t, once, twice)
}

func TestAggregateLinesEmpty(t *testing.T) {
	assert.Empty(t, AggregateLines(nil))
	assert.Empty(t, AggregateLines([]ReportLine{}))
}

func TestAggregateLinesSingleLine(t *testing.T) {
	got := AggregateLines([]ReportLine{line("Shirt", 1001, 2)})
	assert.Equal(t, []int{2}, quantities(got))
}

func TestSortLinesStable(t *testing.T) {
	lines := []ReportLine{
		line("B", 2, 1),
		line("A", 3, 1),
		line("B", 1, 1),
		line("A", 4, 1),
	}

	SortLines(lines)

	// Sorted by item name; equal names keep their relative order.
	assert.Equal(t, "A", lines[0].ItemName)
	assert.Equal(t, int64(3), lines[0].OrderNumber)
	assert.Equal(t, int64(4), lines[1].OrderNumber)
	assert.Equal(t, int64(2), lines[2].OrderNumber)
	assert.Equal(t, int64(1), lines[3].OrderNumber)
}

func TestFilterRange(t *testing.T) {
	lines := []ReportLine{
		line("A", 1000, 1),
		line("B", 1005, 1),
		line("C", 1010, 1),
	}

	lo := int64(1001)
	hi := int64(1009)

	assert.Len(t, FilterRange(lines, &lo, &hi), 1)
	assert.Len(t, FilterRange(lines, &lo, nil), 2)
	assert.Len(t, FilterRange(lines, nil, &hi), 2)
	assert.Len(t, FilterRange(lines, nil, nil), 3)
}

func reportEdge(name string, tags []string, items ...shopify.LineItemNode) shopify.OrderEdge {
	return shopify.OrderEdge{
		Cursor: "cur-" + name,
		Node: shopify.OrderNode{
			Name:      name,
			Tags:      tags,
			LineItems: shopify.LineItems{Nodes: items},
		},
	}
}

func TestFlattenOrders(t *testing.T) {
	price := decimal.NewFromInt(50)
	edges := []shopify.OrderEdge{
		reportEdge("#1007",
			[]string{"Cargo Tracking:12345, LineNumber:7, RRcode:RR0000000011B"},
			shopify.LineItemNode{Name: "Shirt", Quantity: 2, Variant: &shopify.Variant{Price: price}},
			shopify.LineItemNode{Name: "Socks", Quantity: 1},
		),
		reportEdge("#1008", nil,
			shopify.LineItemNode{Name: "Shirt", Quantity: 3},
		),
	}

	lines := FlattenOrders(edges)
	require.Len(t, lines, 3)

	assert.Equal(t, "Shirt", lines[0].ItemName)
	assert.Equal(t, int64(1007), lines[0].OrderNumber)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, lines[0].UnitPrice.Equal(price))
	assert.Equal(t, "12345", lines[0].ShippingNumber)

	// No variant means zero price; no tag means empty shipping number.
	assert.True(t, lines[1].UnitPrice.IsZero())
	assert.Empty(t, lines[2].ShippingNumber)
	assert.Equal(t, int64(1008), lines[2].OrderNumber)
}

func TestListReportAggregates(t *testing.T) {
	gql := &fakeQuerier{pages: []*shopify.OrdersConnection{
		{
			Edges: []shopify.OrderEdge{
				reportEdge("#1001", nil, shopify.LineItemNode{Name: "Shirt", Quantity: 2}),
				reportEdge("#1002", nil, shopify.LineItemNode{Name: "Shirt", Quantity: 3}),
			},
			PageInfo: shopify.PageInfo{HasNextPage: true, EndCursor: "cur-#1002"},
		},
		{
			Edges: []shopify.OrderEdge{
				reportEdge("#1003", nil, shopify.LineItemNode{Name: "Socks", Quantity: 1}),
			},
			PageInfo: shopify.PageInfo{HasNextPage: false},
		},
	}}
	svc := NewReportService(gql, zap.NewNop())

	resp, err := svc.ListReport(context.Background(), ReportListRequest{
		Variables: shopify.OrderListVariables{Query: "status:open"},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Orders, 3)
	require.Len(t, resp.Report, 3)
	assert.Equal(t, []int{0, 5, 1}, quantities(resp.Report))

	// The walk resumed from the first page's tail cursor.
	require.Len(t, gql.calls, 2)
	require.NotNil(t, gql.calls[1].After)
	assert.Equal(t, "cur-#1002", *gql.calls[1].After)
}

func TestListReportRangeFilter(t *testing.T) {
	gql := &fakeQuerier{pages: []*shopify.OrdersConnection{
		{
			Edges: []shopify.OrderEdge{
				reportEdge("#1001", nil, shopify.LineItemNode{Name: "Shirt", Quantity: 2}),
				reportEdge("#1005", nil, shopify.LineItemNode{Name: "Shirt", Quantity: 3}),
			},
			PageInfo: shopify.PageInfo{HasNextPage: false},
		},
	}}
	svc := NewReportService(gql, zap.NewNop())

	resp, err := svc.ListReport(context.Background(), ReportListRequest{Start: "1002", End: "1009"})
	require.NoError(t, err)

	require.Len(t, resp.Report, 1)
	assert.Equal(t, int64(1005), resp.Report[0].OrderNumber)
	assert.Equal(t, 3, resp.Report[0].Quantity)
}

func TestListReportInvalidRange(t *testing.T) {
	gql := &fakeQuerier{pages: []*shopify.OrdersConnection{
		{PageInfo: shopify.PageInfo{HasNextPage: false}},
	}}
	svc := NewReportService(gql, zap.NewNop())

	_, err := svc.ListReport(context.Background(), ReportListRequest{Start: "abc"})
	assert.Error(t, err)
}

func TestExportExcelWorkbook(t *testing.T) {
	gql := &fakeQuerier{pages: []*shopify.OrdersConnection{
		{
			Edges: []shopify.OrderEdge{
				reportEdge("#1001",
					[]string{"Cargo Tracking:555, LineNumber:3, RRcode:RR0000000011B"},
					shopify.LineItemNode{Name: "Shirt", Quantity: 2, Variant: &shopify.Variant{Price: decimal.NewFromInt(50)}},
				),
				reportEdge("#1002", nil, shopify.LineItemNode{Name: "Shirt", Quantity: 3}),
			},
			PageInfo: shopify.PageInfo{HasNextPage: false},
		},
	}}
	svc := NewReportService(gql, zap.NewNop())

	f, err := svc.ExportExcel(context.Background(), ReportListRequest{})
	require.NoError(t, err)

	rows, err := f.GetRows(reportSheetName)
	require.NoError(t, err)

	// Header plus one merged row; the zeroed line is suppressed.
	require.Len(t, rows, 2)
	assert.Equal(t, "כמות", rows[0][2])
	assert.Equal(t, "5", rows[1][2])
	assert.Equal(t, "1002", rows[1][3])
	assert.Equal(t, "Shirt", rows[1][4])
}
