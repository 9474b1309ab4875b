package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/cargo"
	"github.com/addictonline/orderprint/internal/shopify"
)

// excelWalkQuery is the query the export uses for every page after the
// first: open shipments that already carry a tracking tag.
const excelWalkQuery = `Cargo Tracking: fulfillment_status:"unshipped"`

const reportSheetName = "reports"

// ReportLine is one flattened line item. After aggregation only the last
// line of each item-name run carries the summed quantity; the others are
// zeroed and must be suppressed before display.
type ReportLine struct {
	ItemName       string          `json:"there"`
	OrderNumber    int64           `json:"order_num"`
	Quantity       int             `json:"qty"`
	UnitPrice      decimal.Decimal `json:"price"`
	ShippingNumber string          `json:"shipping_num"`
}

type reportService struct {
	gql    orderQuerier
	logger *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(gql orderQuerier, logger *zap.Logger) *reportService {
	return &reportService{
		gql:    gql,
		logger: logger,
	}
}

// walkOrders pages through the remote store until it reports no next page.
// The first fetch uses the caller's variables; subsequent fetches use the
// given follow-up query, unbounded by the look-ahead cap.
func (s *reportService) walkOrders(ctx context.Context, vars shopify.OrderListVariables, followQuery string) ([]shopify.OrderEdge, error) {
	pageSize := lookaheadPageSize

	var edges []shopify.OrderEdge
	for {
		conn, err := s.gql.QueryOrders(ctx, vars)
		if err != nil {
			return nil, err
		}
		edges = append(edges, conn.Edges...)

		if !conn.PageInfo.HasNextPage {
			return edges, nil
		}
		after := conn.PageInfo.EndCursor
		vars = shopify.OrderListVariables{
			First:   &pageSize,
			After:   &after,
			SortKey: phoneSearchSortKey,
			Reverse: false,
			Query:   followQuery,
		}
	}
}

// ListReport walks all pages for the query and returns the raw edges plus the
// range-filtered, aggregated report rows.
func (s *reportService) ListReport(ctx context.Context, req ReportListRequest) (*ReportListResponse, error) {
	edges, err := s.walkOrders(ctx, req.Variables, req.Variables.Query)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(edges, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	return &ReportListResponse{
		Orders: edges,
		Report: AggregateLines(lines),
	}, nil
}

// ExportExcel walks the remote store and writes the aggregated report into a
// five-column workbook.
func (s *reportService) ExportExcel(ctx context.Context, req ReportListRequest) (*excelize.File, error) {
	edges, err := s.walkOrders(ctx, req.Variables, excelWalkQuery)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(edges, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	return buildWorkbook(ZeroFiltered(AggregateLines(lines)))
}

func (s *reportService) buildLines(edges []shopify.OrderEdge, start, end string) ([]ReportLine, error) {
	startBound, err := parseRangeBound(start)
	if err != nil {
		return nil, err
	}
	endBound, err := parseRangeBound(end)
	if err != nil {
		return nil, err
	}

	lines := FilterRange(FlattenOrders(edges), startBound, endBound)
	SortLines(lines)
	return lines, nil
}

// FlattenOrders expands every order's line items into flat report lines.
func FlattenOrders(edges []shopify.OrderEdge) []ReportLine {
	lines := []ReportLine{}
	for _, edge := range edges {
		node := edge.Node

		shippingNum := ""
		if tag, err := cargo.ParseTag(strings.Join(node.Tags, ", ")); err == nil {
			shippingNum = tag.TrackingNumber
		}

		orderNum := orderNumber(node.Name)

		for _, item := range node.LineItems.Nodes {
			line := ReportLine{
				ItemName:       item.Name,
				OrderNumber:    orderNum,
				Quantity:       item.Quantity,
				ShippingNumber: shippingNum,
			}
			if item.Variant != nil {
				line.UnitPrice = item.Variant.Price
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// orderNumber extracts the numeric part of an order display name like
// "#1007"; 0 when there is none.
func orderNumber(name string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, name)
	n, _ := strconv.ParseInt(digits, 10, 64)
	return n
}

// SortLines orders lines by item name ascending.
func SortLines(lines []ReportLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].ItemName < lines[j].ItemName
	})
}

// FilterRange keeps lines whose order number falls in [start, end]; either
// bound may be nil (open).
func FilterRange(lines []ReportLine, start, end *int64) []ReportLine {
	if start == nil && end == nil {
		return lines
	}
	filtered := make([]ReportLine, 0, len(lines))
	for _, line := range lines {
		if start != nil && line.OrderNumber < *start {
			continue
		}
		if end != nil && line.OrderNumber > *end {
			continue
		}
		filtered = append(filtered, line)
	}
	return filtered
}

// AggregateLines merges adjacent lines sharing an item name by summation.
// Only the last line of each run carries the total; earlier lines are
// zeroed. Consumers must drop zero-quantity lines before display (see
// ZeroFiltered). Re-running on aggregated output is a no-op.
func AggregateLines(lines []ReportLine) []ReportLine {
	if len(lines) == 0 {
		return lines
	}

	out := make([]ReportLine, len(lines))
	copy(out, lines)

	name := out[0].ItemName
	qty := out[0].Quantity
	for i := 1; i < len(out); i++ {
		if out[i].ItemName == name {
			qty += out[i].Quantity
			out[i-1].Quantity = 0
			out[i].Quantity = qty
		} else {
			out[i-1].Quantity = qty
			name = out[i].ItemName
			qty = out[i].Quantity
		}
	}

	return out
}

// ZeroFiltered drops the zero-quantity lines AggregateLines leaves behind.
func ZeroFiltered(lines []ReportLine) []ReportLine {
	filtered := make([]ReportLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity != 0 {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

// buildWorkbook writes report lines into the fixed five-column layout the
// warehouse expects: shipping number, unit price, quantity, order number,
// item name, all right-aligned.
func buildWorkbook(lines []ReportLine) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheetName); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	if err := f.SetColWidth(reportSheetName, "A", "D", 11); err != nil {
		return nil, fmt.Errorf("failed to set column widths: %w", err)
	}
	if err := f.SetColWidth(reportSheetName, "E", "E", 39); err != nil {
		return nil, fmt.Errorf("failed to set column widths: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "bottom"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cell style: %w", err)
	}
	for _, col := range []string{"A", "B", "C", "D", "E"} {
		if err := f.SetColStyle(reportSheetName, col, style); err != nil {
			return nil, fmt.Errorf("failed to style column %s: %w", col, err)
		}
	}

	headers := []interface{}{" מספר משלוח", "מחיר ליחידה", "כמות", "מספר הזמנה", " שם הפריט"}
	if err := f.SetSheetRow(reportSheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, line := range lines {
		row := []interface{}{
			line.ShippingNumber,
			line.UnitPrice.String(),
			line.Quantity,
			line.OrderNumber,
			line.ItemName,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(reportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write report row: %w", err)
		}
	}

	return f, nil
}
