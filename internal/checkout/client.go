// Package checkout talks to the order side of the backend API (voucher
// validation, cashback balance, order creation, order feeds) and validates
// the checkout form before submission.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

// ErrVoucherNotFound is returned when the API rejects a voucher code.
var ErrVoucherNotFound = errors.New("checkout: voucher not found")

// Client issues checkout calls against the backend API. When baseURL is
// empty, the client serves deterministic sample responses.
type Client struct {
	baseURL string
	http    *http.Client
}

// OrderItem is one line of an order request.
type OrderItem struct {
	ProductID string   `json:"product_id"`
	VariantID string   `json:"variant_id,omitempty"`
	Quantity  int      `json:"quantity"`
	AddonIDs  []string `json:"addon_ids,omitempty"`
}

// OrderRequest is the order-creation payload. Delivery fields are free-form
// text; the backend stores them JSON-encoded as received.
type OrderRequest struct {
	Items           []OrderItem `json:"items"`
	CustomerName    string      `json:"customer_name"`
	ContactNumber   string      `json:"contact_number"`
	Fulfillment     string      `json:"fulfillment"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	DeliveryNotes   string      `json:"delivery_notes,omitempty"`
	PaymentMethod   string      `json:"payment_method"`
	VoucherCode     string      `json:"voucher_code,omitempty"`
	CashbackUsed    int64       `json:"cashback_used,omitempty"`
	MarginAmount    int64       `json:"margin_amount,omitempty"`
	GuestReference  string      `json:"guest_reference,omitempty"`

	// Proof is the payment receipt; when set the request goes out as
	// multipart. Never serialized into the JSON body.
	Proof *ProofFile `json:"-"`
}

// ProofFile is an uploaded transfer receipt.
type ProofFile struct {
	Filename string
	Content  io.Reader
}

// OrderResponse is the backend's acknowledgement of a created order.
type OrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Total   int64  `json:"total"`
}

// OrderSummary is a read-model row for the role dashboards.
type OrderSummary struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	Status          string    `json:"status"`
	Total           int64     `json:"total"`
	MarginAmount    int64     `json:"margin_amount,omitempty"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	Fulfillment     string    `json:"fulfillment,omitempty"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at,omitempty"`
	Items           []struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	} `json:"items,omitempty"`
}

// NewClient constructs a checkout client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ValidateVoucher resolves a voucher code into its discount terms.
func (c *Client) ValidateVoucher(ctx context.Context, code string) (*pricing.Voucher, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrVoucherNotFound
	}
	if c == nil || c.baseURL == "" {
		return fakeVoucher(code)
	}

	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return nil, err
	}
	endpoint, err := url.JoinPath(c.baseURL, "vouchers", "validate")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVoucherNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("checkout: voucher status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var payload voucherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.toVoucher(code), nil
}

// CashbackBalance fetches the buyer's cashback balance.
func (c *Client) CashbackBalance(ctx context.Context) (int64, error) {
	if c == nil || c.baseURL == "" {
		return fakeCashbackBalance, nil
	}
	endpoint, err := url.JoinPath(c.baseURL, "cashback", "balance")
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("checkout: cashback status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var payload struct {
		Balance int64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}
	return payload.Balance, nil
}

// CreateOrder submits an order for an authenticated buyer.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (OrderResponse, error) {
	return c.createOrder(ctx, req, "orders")
}

// CreateGuestOrder submits an order without a buyer account.
func (c *Client) CreateGuestOrder(ctx context.Context, req OrderRequest) (OrderResponse, error) {
	return c.createOrder(ctx, req, "orders", "guest")
}

func (c *Client) createOrder(ctx context.Context, order OrderRequest, parts ...string) (OrderResponse, error) {
	if len(order.Items) == 0 {
		return OrderResponse{}, fmt.Errorf("checkout: order has no items")
	}
	if c == nil || c.baseURL == "" {
		return fakeOrderResponse(), nil
	}

	endpoint, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return OrderResponse{}, err
	}

	var req *http.Request
	if order.Proof != nil {
		req, err = c.newMultipartOrderRequest(ctx, endpoint, order)
	} else {
		req, err = c.newJSONOrderRequest(ctx, endpoint, order)
	}
	if err != nil {
		return OrderResponse{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyHeader, ulid.Make().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return OrderResponse{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return OrderResponse{}, fmt.Errorf("checkout: order status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var out OrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

func (c *Client) newJSONOrderRequest(ctx context.Context, endpoint string, order OrderRequest) (*http.Request, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) newMultipartOrderRequest(ctx context.Context, endpoint string, order OrderRequest) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	if err := mw.WriteField("payload", string(payload)); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(order.Proof.Filename)
	if name == "" {
		name = "payment_proof"
	}
	part, err := mw.CreateFormFile("payment_proof", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, order.Proof.Content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}

// Orders fetches the dashboard feed for a scope ("all", "incoming",
// "kitchen", "deliveries", "mine", "margin").
func (c *Client) Orders(ctx context.Context, scope string) ([]OrderSummary, error) {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		scope = "mine"
	}
	if c == nil || c.baseURL == "" {
		return fakeOrders(scope), nil
	}

	endpoint, err := url.JoinPath(c.baseURL, "orders")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("scope", scope)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("checkout: orders status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var out []OrderSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

type voucherPayload struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
	MinPurchase   int64   `json:"min_purchase"`
	MaxDiscount   int64   `json:"max_discount"`
}

func (p voucherPayload) toVoucher(fallbackCode string) *pricing.Voucher {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		code = fallbackCode
	}
	return &pricing.Voucher{
		Code:          code,
		DiscountType:  strings.ToLower(strings.TrimSpace(p.DiscountType)),
		DiscountValue: p.DiscountValue,
		MinPurchase:   p.MinPurchase,
		MaxDiscount:   p.MaxDiscount,
	}
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
