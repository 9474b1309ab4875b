// Package label renders the printable three-part shipping document: the
// courier label, the return slip (one page per six line items) and the postal
// reply card. The layout targets 100mm x 150mm sticker stock and reads
// right-to-left.
package label

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/addictonline/orderprint/internal/cargo"
	"github.com/addictonline/orderprint/internal/config"
	"github.com/addictonline/orderprint/internal/shopify"
)

// returnItemsPerPage is how many line items fit on one return-slip page.
const returnItemsPerPage = 6

// Renderer assembles label documents for print popups.
type Renderer struct {
	sender config.SenderConfig
	tmpl   *template.Template
}

// NewRenderer creates a label renderer with the configured sender block.
func NewRenderer(sender config.SenderConfig) (*Renderer, error) {
	tmpl, err := template.New("label").Parse(orderTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label template: %w", err)
	}
	return &Renderer{sender: sender, tmpl: tmpl}, nil
}

type returnPage struct {
	PageNumber int
	Items      []shopify.RESTLineItem
}

type orderData struct {
	OrderName       string
	FirstName       string
	LastName        string
	Address1        string
	Address2        string
	City            string
	Phone           string
	Note            string
	TrackingNumber  string
	LineNumber      string
	ReplyCode       string
	TrackingBarcode template.URL
	ReplyBarcode    template.URL
	Date            string
	PageTotal       int
	ReturnPages     []returnPage
	SenderCompany   string
	SenderAddress   string
}

// RenderOrder renders the three label parts for one order.
func (r *Renderer) RenderOrder(order shopify.RESTOrder, tag cargo.TrackingTag) (string, error) {
	trackingURI, err := barcodeDataURI(tag.TrackingNumber)
	if err != nil {
		return "", err
	}
	replyURI, err := barcodeDataURI(tag.ReplyCode)
	if err != nil {
		return "", err
	}

	// Part 1 and part 3 are one page each; the return slip grows with the
	// item count.
	pageTotal := 3
	if len(order.LineItems) > returnItemsPerPage {
		pageTotal = 2 + (len(order.LineItems)+returnItemsPerPage-1)/returnItemsPerPage
	}

	var pages []returnPage
	pageNum := 2
	for start := 0; start < len(order.LineItems); start += returnItemsPerPage {
		end := start + returnItemsPerPage
		if end > len(order.LineItems) {
			end = len(order.LineItems)
		}
		pages = append(pages, returnPage{PageNumber: pageNum, Items: order.LineItems[start:end]})
		pageNum++
	}

	data := orderData{
		OrderName:       order.Name,
		Note:            order.Note,
		TrackingNumber:  tag.TrackingNumber,
		LineNumber:      tag.LineNumber,
		ReplyCode:       tag.ReplyCode,
		TrackingBarcode: template.URL(trackingURI),
		ReplyBarcode:    template.URL(replyURI),
		Date:            time.Now().Format("01/02/2006"),
		PageTotal:       pageTotal,
		ReturnPages:     pages,
		SenderCompany:   r.sender.Company,
		SenderAddress:   fmt.Sprintf("%s %s %s", r.sender.Street2, r.sender.Street1, r.sender.City),
	}
	if addr := order.ShippingAddress; addr != nil {
		data.FirstName = addr.FirstName
		data.LastName = addr.LastName
		data.Address1 = addr.Address1
		data.Address2 = addr.Address2
		data.City = addr.City
		data.Phone = addr.Phone
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render label for order %s: %w", order.Name, err)
	}

	return sb.String(), nil
}

// RenderDocument wraps per-order fragments into the final standalone HTML
// document, in input order.
func (r *Renderer) RenderDocument(fragments []string) string {
	var sb strings.Builder
	sb.WriteString(documentHeader)
	for _, frag := range fragments {
		sb.WriteString(frag)
	}
	return sb.String()
}
