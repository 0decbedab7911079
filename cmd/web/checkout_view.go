package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cecepns/al-hakim-catering-sub001/internal/checkout"
	"github.com/cecepns/al-hakim-catering-sub001/internal/config"
	mw "github.com/cecepns/al-hakim-catering-sub001/internal/middleware"
	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
	"github.com/cecepns/al-hakim-catering-sub001/internal/rbac"
	"github.com/cecepns/al-hakim-catering-sub001/internal/store"

	"github.com/cecepns/al-hakim-catering-sub001/internal/format"
)

// BreakdownView formats a pricing breakdown for display.
type BreakdownView struct {
	BaseUnitPrice       string
	DiscountedUnitPrice string
	AddonTotal          string
	Subtotal            string
	VoucherDiscount     string
	CashbackApplied     string
	MarginAdded         string
	FinalTotal          string
	HasDiscount         bool
	HasVoucher          bool
	HasCashback         bool
	HasMargin           bool
}

// CheckoutView is the full checkout page model.
type CheckoutView struct {
	Lang           string
	Product        ProductView
	Form           checkout.Form
	Errors         map[string]string
	PaymentMethods []config.PaymentMethod
	DeliveryZones  []config.DeliveryZone
	Breakdown      BreakdownView
	VoucherStatus  VoucherStatusView
	Cashback       CashbackView
	CanAddMargin   bool
	CutoffPassed   bool
	WhatsApp       string
	CSRFToken      string
}

// VoucherStatusView renders the voucher apply result inline.
type VoucherStatusView struct {
	Lang       string
	Attempt    string
	Applied    bool
	Code       string
	Discount   string
	StatusTone string
	StatusText string
}

// CashbackView shows the available balance next to the cashback input.
type CashbackView struct {
	Available bool
	Balance   int64
	Display   string
}

func buildBreakdownView(b pricing.Breakdown, lang string) BreakdownView {
	return BreakdownView{
		BaseUnitPrice:       format.Currency(b.BaseUnitPrice, lang),
		DiscountedUnitPrice: format.Currency(b.DiscountedUnitPrice, lang),
		AddonTotal:          format.Currency(b.AddonTotal, lang),
		Subtotal:            format.Currency(b.Subtotal, lang),
		VoucherDiscount:     format.Currency(b.VoucherDiscount, lang),
		CashbackApplied:     format.Currency(b.CashbackApplied, lang),
		MarginAdded:         format.Currency(b.MarginAdded, lang),
		FinalTotal:          format.Currency(b.FinalTotal, lang),
		HasDiscount:         b.DiscountedUnitPrice < b.BaseUnitPrice,
		HasVoucher:          b.VoucherDiscount > 0,
		HasCashback:         b.CashbackApplied > 0,
		HasMargin:           b.MarginAdded > 0,
	}
}

// parseCheckoutForm reads the submitted checkout fields. It accepts both
// urlencoded and multipart bodies; the proof file rides along separately.
func parseCheckoutForm(r *http.Request) checkout.Form {
	f := checkout.Form{
		ProductID:       strings.TrimSpace(r.FormValue("product_id")),
		VariantID:       strings.TrimSpace(r.FormValue("variant_id")),
		Quantity:        checkout.ParseQuantity(r.FormValue("quantity")),
		CustomerName:    strings.TrimSpace(r.FormValue("customer_name")),
		ContactNumber:   strings.TrimSpace(r.FormValue("contact_number")),
		Fulfillment:     strings.TrimSpace(r.FormValue("fulfillment")),
		DeliveryAddress: strings.TrimSpace(r.FormValue("delivery_address")),
		DeliveryNotes:   strings.TrimSpace(r.FormValue("delivery_notes")),
		PaymentMethod:   strings.TrimSpace(r.FormValue("payment_method")),
		VoucherCode:     strings.TrimSpace(r.FormValue("voucher_code")),
		CashbackUsed:    checkout.ParseAmount(r.FormValue("cashback_used")),
		MarginAmount:    checkout.ParseAmount(r.FormValue("margin_amount")),
		Confirmed:       r.FormValue("confirm") != "",
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["payment_proof"]; len(files) > 0 {
			f.HasProof = true
		}
	}
	for _, id := range r.Form["addon_ids"] {
		id = strings.TrimSpace(id)
		if id != "" {
			f.AddonIDs = append(f.AddonIDs, id)
		}
	}
	return f
}

// resolveVoucher validates a code against the backend. A blank code means no
// voucher; an unknown code is reported, not fatal.
func resolveVoucher(ctx context.Context, code string) (*pricing.Voucher, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, true
	}
	v, err := checkoutClient.ValidateVoucher(ctx, code)
	if err != nil {
		if errors.Is(err, checkout.ErrVoucherNotFound) {
			return nil, false
		}
		return nil, false
	}
	return v, true
}

// quoteFromForm recomputes the breakdown for the submitted form state.
// Margin is only honored for staff who may add one; cashback is capped by
// the signed-in buyer's balance (anonymous visitors have none).
func quoteFromForm(r *http.Request, f checkout.Form, product pricing.Product) (pricing.Breakdown, *pricing.Voucher, bool) {
	voucher, voucherOK := resolveVoucher(r.Context(), f.VoucherCode)

	var balance int64
	if hasCashbackAccount(r) {
		if b, err := checkoutClient.CashbackBalance(r.Context()); err == nil {
			balance = b
		}
	}

	margin := int64(0)
	if canAddMargin(r) {
		margin = f.MarginAmount
	}

	return pricing.Quote(pricing.Input{
		Product:           product,
		VariantID:         f.VariantID,
		AddonIDs:          f.AddonIDs,
		Quantity:          f.Quantity,
		Voucher:           voucher,
		CashbackBalance:   balance,
		CashbackRequested: f.CashbackUsed,
		Margin:            margin,
	}), voucher, voucherOK
}

func canAddMargin(r *http.Request) bool {
	staff := mw.StaffFromContext(r.Context())
	if staff == nil {
		return false
	}
	return rbac.HasCapability(staff.Roles, rbac.CapMarginAdd)
}

func hasCashbackAccount(r *http.Request) bool {
	if staff := mw.StaffFromContext(r.Context()); staff != nil {
		return true
	}
	if sess := mw.GetSession(r); sess != nil && sess.UserID != "" {
		return true
	}
	return false
}

func buildCashbackView(r *http.Request, lang string) CashbackView {
	if !hasCashbackAccount(r) {
		return CashbackView{}
	}
	balance, err := checkoutClient.CashbackBalance(r.Context())
	if err != nil || balance <= 0 {
		return CashbackView{}
	}
	return CashbackView{Available: true, Balance: balance, Display: format.Currency(balance, lang)}
}

func fieldErrorMap(lang string, errs []checkout.FieldError) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = i18nBundle.T(lang, e.Key)
	}
	return out
}

// rememberCheckout persists form progress into the session so a reload keeps
// what the customer typed.
func rememberCheckout(r *http.Request, f checkout.Form) {
	sess := mw.GetSession(r)
	if sess == nil {
		return
	}
	sess.Checkout = mw.CheckoutState{
		CustomerName:    f.CustomerName,
		ContactNumber:   f.ContactNumber,
		Fulfillment:     f.Fulfillment,
		DeliveryAddress: f.DeliveryAddress,
		DeliveryNotes:   f.DeliveryNotes,
		PaymentMethod:   f.PaymentMethod,
		VoucherCode:     f.VoucherCode,
		CashbackUsed:    f.CashbackUsed,
	}
	if f.ProductID != "" {
		sess.Cart = []mw.CartLine{{
			ProductID: f.ProductID,
			VariantID: f.VariantID,
			AddonIDs:  f.AddonIDs,
			Quantity:  f.Quantity,
		}}
	}
	sess.MarkDirty()
}

func checkoutFormFromSession(r *http.Request) checkout.Form {
	f := checkout.Form{Quantity: 1, Fulfillment: checkout.FulfillmentDelivery}
	sess := mw.GetSession(r)
	if sess == nil {
		return f
	}
	cs := sess.Checkout
	if cs.CustomerName != "" {
		f.CustomerName = cs.CustomerName
	}
	f.ContactNumber = cs.ContactNumber
	if cs.Fulfillment != "" {
		f.Fulfillment = cs.Fulfillment
	}
	f.DeliveryAddress = cs.DeliveryAddress
	f.DeliveryNotes = cs.DeliveryNotes
	f.PaymentMethod = cs.PaymentMethod
	f.VoucherCode = cs.VoucherCode
	f.CashbackUsed = cs.CashbackUsed
	if len(sess.Cart) > 0 {
		line := sess.Cart[0]
		f.ProductID = line.ProductID
		f.VariantID = line.VariantID
		f.AddonIDs = line.AddonIDs
		if line.Quantity > 0 {
			f.Quantity = line.Quantity
		}
	}
	return f
}

func productForCheckout(ctx context.Context, productID string) (store.Product, pricing.Product, error) {
	if productID == "" {
		// default to the first catalog item so the page stays usable
		products, err := catalogClient.Products(ctx)
		if err != nil || len(products) == 0 {
			return store.Product{}, pricing.Product{}, store.ErrNotFound
		}
		productID = products[0].ID
	}
	return loadPricingProduct(ctx, productID)
}
