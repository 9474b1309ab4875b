package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/config"
)

// Client calls the external cargo-carrier shipment API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new carrier API client
func NewClient(cfg config.CargoConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// AddressBlock is one endpoint of a shipment.
type AddressBlock struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Street1    string `json:"street1"`
	Street2    string `json:"street2"`
	Entrance   string `json:"entrance"`
	Floor      string `json:"floor"`
	Appartment string `json:"appartment"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// ShipmentRequest is the carrier's shipment-creation payload. Field names and
// casing follow the carrier's wire format.
type ShipmentRequest struct {
	ShippingType       int             `json:"shipping_type"`
	ToAddress          AddressBlock    `json:"to_address"`
	FromAddress        AddressBlock    `json:"from_address"`
	NoOfParcel         int             `json:"noOfParcel"`
	Barcode            string          `json:"barcode"`
	ReturnOrder        string          `json:"return_order"`
	DoubleDelivery     int             `json:"doubleDelivery"`
	TotalValue         decimal.Decimal `json:"TotalValue"`
	TransactionID      string          `json:"TransactionID"`
	ContentDescription string          `json:"ContentDescription"`
	CashOnDelivery     int             `json:"CashOnDeliveryTypes"`
	CarrierName        string          `json:"CarrierName"`
	CarrierService     string          `json:"CarrierService"`
	CarrierID          int             `json:"CarrierID"`
	OrderID            int64           `json:"OrderID"`
	PaymentMethod      string          `json:"PaymentMethod"`
	Note               string          `json:"Note"`
	CustomerCode       string          `json:"customerCode"`
}

// ShipmentResult is the carrier's reply: the tracking number and the line
// code printed on the label.
type ShipmentResult struct {
	ShipmentID json.Number `json:"shipmentId"`
	LineText   json.Number `json:"linetext"`
}

type createShipmentEnvelope struct {
	Method string          `json:"Method"`
	Params ShipmentRequest `json:"Params"`
}

// CreateShipment registers a shipment with the carrier and returns its
// tracking identifiers.
func (c *Client) CreateShipment(ctx context.Context, shipment ShipmentRequest) (*ShipmentResult, error) {
	jsonData, err := json.Marshal(createShipmentEnvelope{
		Method: "Ship",
		Params: shipment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipment request: %w", err)
	}

	url := c.baseURL + "/Webservice/CreateShipment"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return nil, fmt.Errorf("carrier API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result ShipmentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipment response: %w", err)
	}

	if result.ShipmentID.String() == "" {
		return nil, fmt.Errorf("carrier returned no shipment id, body: %s", string(body))
	}

	return &result, nil
}
