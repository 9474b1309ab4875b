package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/addictonline/orderprint/internal/cargo"
	"github.com/addictonline/orderprint/internal/config"
	"github.com/addictonline/orderprint/internal/shopify"
)

type orderFetcher interface {
	OrdersByIDs(ctx context.Context, ids []int64) ([]shopify.RESTOrder, error)
}

type tagWriter interface {
	AddOrderTags(ctx context.Context, orderGID string, tags []string) error
}

type fulfillmentCreator interface {
	CreateFulfillment(ctx context.Context, fulfillmentOrderGID string) error
}

type shipmentCreator interface {
	CreateShipment(ctx context.Context, shipment cargo.ShipmentRequest) (*cargo.ShipmentResult, error)
}

type labelRenderer interface {
	RenderOrder(order shopify.RESTOrder, tag cargo.TrackingTag) (string, error)
	RenderDocument(fragments []string) string
}

type labelService struct {
	rest         orderFetcher
	tags         tagWriter
	fulfillments fulfillmentCreator
	carrier      shipmentCreator
	renderer     labelRenderer
	cfg          config.CargoConfig
	logger       *zap.Logger
}

// NewLabelService creates a new label issuance service
func NewLabelService(
	rest orderFetcher,
	tags tagWriter,
	fulfillments fulfillmentCreator,
	carrier shipmentCreator,
	renderer labelRenderer,
	cfg config.CargoConfig,
	logger *zap.Logger,
) *labelService {
	return &labelService{
		rest:         rest,
		tags:         tags,
		fulfillments: fulfillments,
		carrier:      carrier,
		renderer:     renderer,
		cfg:          cfg,
		logger:       logger,
	}
}

// IssueFailure reports one order whose label could not be produced.
type IssueFailure struct {
	OrderName string `json:"order_name"`
	Error     string `json:"error"`
}

// IssueLabels resolves the selected orders, ships the untagged ones through
// the carrier (writing the tracking tag back), and renders the concatenated
// label document. Per-order work fans out concurrently and joins before any
// output is assembled; fragments keep input order. If any order fails, no
// document is returned and the failures identify the orders, preserving the
// all-or-nothing output while making failure visible.
func (s *labelService) IssueLabels(ctx context.Context, ids []int64) (string, []IssueFailure, error) {
	orders, err := s.rest.OrdersByIDs(ctx, ids)
	if err != nil {
		return "", nil, err
	}
	if len(orders) == 0 {
		return "", nil, fmt.Errorf("no orders found for ids %v", ids)
	}

	fragments := make([]string, len(orders))
	errs := make([]error, len(orders))

	g, gctx := errgroup.WithContext(ctx)
	for i := range orders {
		i := i
		order := orders[i]
		g.Go(func() error {
			frag, err := s.issueOne(gctx, order)
			if err != nil {
				errs[i] = err
				return err
			}
			fragments[i] = frag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var failures []IssueFailure
		for i, e := range errs {
			if e != nil {
				s.logger.Error("Label issuance failed",
					zap.String("order", orders[i].Name),
					zap.Error(e),
				)
				failures = append(failures, IssueFailure{
					OrderName: orders[i].Name,
					Error:     e.Error(),
				})
			}
		}
		return "", failures, nil
	}

	return s.renderer.RenderDocument(fragments), nil, nil
}

// issueOne produces the label fragment for a single order, creating a
// shipment first if the order has not been through the carrier yet.
func (s *labelService) issueOne(ctx context.Context, order shopify.RESTOrder) (string, error) {
	// The reply code is derived, never read back from the tag.
	reply, err := cargo.ReplyCode(order.Name)
	if err != nil {
		return "", err
	}

	var tag cargo.TrackingTag
	if cargo.HasTag(order.Tags) {
		tag, err = cargo.ParseTag(order.Tags)
		if err != nil {
			return "", fmt.Errorf("order %s has malformed tracking tag: %w", order.Name, err)
		}
		tag.ReplyCode = reply
	} else {
		result, err := s.carrier.CreateShipment(ctx, s.shipmentRequest(order))
		if err != nil {
			return "", fmt.Errorf("failed to create shipment for order %s: %w", order.Name, err)
		}

		tag = cargo.TrackingTag{
			TrackingNumber: result.ShipmentID.String(),
			LineNumber:     result.LineText.String(),
			ReplyCode:      reply,
		}
		if err := s.tags.AddOrderTags(ctx, order.AdminGraphQLAPIID, []string{tag.String()}); err != nil {
			return "", fmt.Errorf("failed to tag order %s: %w", order.Name, err)
		}
	}

	return s.renderer.RenderOrder(order, tag)
}

// shipmentRequest maps an order onto the carrier's shipment payload. The
// sender block comes from config; destination zip/country are mirrored onto
// the sender side as the carrier requires both populated.
func (s *labelService) shipmentRequest(order shopify.RESTOrder) cargo.ShipmentRequest {
	var to cargo.AddressBlock
	if addr := order.ShippingAddress; addr != nil {
		to = cargo.AddressBlock{
			Name:    addr.FirstName + " " + addr.LastName,
			Company: addr.Company,
			Street1: addr.Address1,
			Street2: addr.Address2,
			City:    addr.City,
			State:   "IL",
			Zip:     addr.Zip,
			Country: addr.Country,
			Phone:   addr.Phone,
			Email:   order.ContactEmail,
		}
	}

	sender := s.cfg.Sender
	from := cargo.AddressBlock{
		Name:    sender.Company,
		Company: sender.Company,
		Street1: sender.Street1,
		Street2: sender.Street2,
		City:    sender.City,
		State:   "IL",
		Zip:     to.Zip,
		Country: to.Country,
		Phone:   sender.Phone,
		Email:   order.ContactEmail,
	}

	return cargo.ShipmentRequest{
		ShippingType:   1,
		ToAddress:      to,
		FromAddress:    from,
		DoubleDelivery: 1,
		TotalValue:     order.TotalPriceSet.ShopMoney.Amount,
		TransactionID:  order.Name,
		CarrierID:      s.cfg.CarrierID,
		OrderID:        order.AppID,
		Note:           order.Note,
		CustomerCode:   s.cfg.CustomerCode,
	}
}

// FulfillOrders creates fulfillments for the given fulfillment-order GIDs,
// concurrently, reporting per-id failures instead of dropping them.
func (s *labelService) FulfillOrders(ctx context.Context, fulfillmentOrderGIDs []string) []IssueFailure {
	errs := make([]error, len(fulfillmentOrderGIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i := range fulfillmentOrderGIDs {
		i := i
		gid := fulfillmentOrderGIDs[i]
		g.Go(func() error {
			if err := s.fulfillments.CreateFulfillment(gctx, gid); err != nil {
				errs[i] = err
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err == nil {
		return nil
	}

	var failures []IssueFailure
	for i, e := range errs {
		if e != nil {
			s.logger.Error("Fulfillment creation failed",
				zap.String("fulfillment_order", fulfillmentOrderGIDs[i]),
				zap.Error(e),
			)
			failures = append(failures, IssueFailure{
				OrderName: fulfillmentOrderGIDs[i],
				Error:     e.Error(),
			})
		}
	}
	return failures
}
