package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
)

func TestValidateVoucherAgainstAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vouchers/validate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body["code"] {
		case "HEMAT10":
			_, _ = w.Write([]byte(`{"code":"HEMAT10","discount_type":"percentage","discount_value":10,"min_purchase":150000,"max_discount":15000}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	v, err := c.ValidateVoucher(context.Background(), " hemat10 ")
	if err != nil {
		t.Fatalf("ValidateVoucher: %v", err)
	}
	if v.DiscountType != pricing.VoucherPercentage || v.MaxDiscount != 15000 {
		t.Errorf("unexpected voucher: %+v", v)
	}

	if _, err := c.ValidateVoucher(context.Background(), "NOPE"); !errors.Is(err, ErrVoucherNotFound) {
		t.Errorf("expected ErrVoucherNotFound, got %v", err)
	}
	if _, err := c.ValidateVoucher(context.Background(), "  "); !errors.Is(err, ErrVoucherNotFound) {
		t.Errorf("expected ErrVoucherNotFound for blank code, got %v", err)
	}
}

func TestCashbackBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cashback/balance" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"balance":42000}`))
	}))
	defer srv.Close()

	bal, err := NewClient(srv.URL).CashbackBalance(context.Background())
	if err != nil {
		t.Fatalf("CashbackBalance: %v", err)
	}
	if bal != 42000 {
		t.Errorf("balance = %d", bal)
	}
}

func TestCreateOrderSendsJSONWithIdempotencyKey(t *testing.T) {
	var gotKey, gotCT string
	var gotBody OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		gotCT = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"order_id":"ord_9","status":"awaiting_payment","total":180000}`))
	}))
	defer srv.Close()

	req := OrderRequest{
		Items:         []OrderItem{{ProductID: "prd_nasi_box", Quantity: 2}},
		CustomerName:  "Bu Ratna",
		PaymentMethod: "cod",
		CashbackUsed:  20000,
		MarginAmount:  5000,
	}
	resp, err := NewClient(srv.URL).CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.OrderID != "ord_9" {
		t.Errorf("order id = %q", resp.OrderID)
	}
	if gotKey == "" {
		t.Error("missing Idempotency-Key header")
	}
	if gotCT != "application/json" {
		t.Errorf("content type = %q", gotCT)
	}
	if gotBody.CashbackUsed != 20000 || gotBody.MarginAmount != 5000 {
		t.Errorf("payload not propagated: %+v", gotBody)
	}
}

func TestCreateGuestOrderMultipartWithProof(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/guest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		var payload OrderRequest
		if err := json.Unmarshal([]byte(r.FormValue("payload")), &payload); err != nil {
			t.Fatalf("decode payload field: %v", err)
		}
		if payload.VoucherCode != "HEMAT10" {
			t.Errorf("voucher = %q", payload.VoucherCode)
		}
		file, header, err := r.FormFile("payment_proof")
		if err != nil {
			t.Fatalf("payment_proof part: %v", err)
		}
		defer file.Close()
		if header.Filename != "bukti.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		b, _ := io.ReadAll(file)
		if string(b) != "fake-jpeg-bytes" {
			t.Errorf("file content = %q", b)
		}
		_, _ = w.Write([]byte(`{"order_id":"ord_10","status":"awaiting_verification","total":165000}`))
	}))
	defer srv.Close()

	req := OrderRequest{
		Items:       []OrderItem{{ProductID: "prd_nasi_box", Quantity: 2}},
		VoucherCode: "HEMAT10",
		Proof:       &ProofFile{Filename: "bukti.jpg", Content: strings.NewReader("fake-jpeg-bytes")},
	}
	resp, err := NewClient(srv.URL).CreateGuestOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateGuestOrder: %v", err)
	}
	if resp.Status != "awaiting_verification" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	if _, err := NewClient("").CreateOrder(context.Background(), OrderRequest{}); err == nil {
		t.Fatal("expected error for empty order")
	}
}

func TestCreateOrderSurfacesAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stok habis", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateOrder(context.Background(), OrderRequest{
		Items: []OrderItem{{ProductID: "prd_nasi_box", Quantity: 99}},
	})
	if err == nil || !strings.Contains(err.Error(), "409") {
		t.Fatalf("expected status error, got %v", err)
	}
	if !strings.Contains(err.Error(), "stok habis") {
		t.Errorf("expected drained body in error, got %v", err)
	}
}

func TestOrdersScopeQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("scope"); got != "kitchen" {
			t.Errorf("scope = %q", got)
		}
		_, _ = w.Write([]byte(`[{"id":"ord_1","customer_name":"Bu Ratna","status":"preparing","total":540000}]`))
	}))
	defer srv.Close()

	orders, err := NewClient(srv.URL).Orders(context.Background(), "kitchen")
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	if len(orders) != 1 || orders[0].Status != "preparing" {
		t.Errorf("unexpected orders: %+v", orders)
	}
}

func TestFakeFallbacksWithoutBaseURL(t *testing.T) {
	c := NewClient("")

	v, err := c.ValidateVoucher(context.Background(), "HEMAT10")
	if err != nil || v.MaxDiscount != 15000 {
		t.Fatalf("fake voucher: %+v err=%v", v, err)
	}
	bal, err := c.CashbackBalance(context.Background())
	if err != nil || bal <= 0 {
		t.Fatalf("fake balance: %d err=%v", bal, err)
	}
	if orders, _ := c.Orders(context.Background(), "deliveries"); len(orders) == 0 {
		t.Error("expected fake deliveries feed")
	}
}
