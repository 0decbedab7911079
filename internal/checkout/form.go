package checkout

import (
	"strconv"
	"strings"

	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
)

// Fulfillment modes accepted by the form.
const (
	FulfillmentDelivery = "delivery"
	FulfillmentPickup   = "pickup"
)

// Form is the checkout form state gathered from the request.
type Form struct {
	ProductID       string
	VariantID       string
	AddonIDs        []string
	Quantity        int
	CustomerName    string
	ContactNumber   string
	Fulfillment     string
	DeliveryAddress string
	DeliveryNotes   string
	PaymentMethod   string
	VoucherCode     string
	CashbackUsed    int64
	MarginAmount    int64
	Confirmed       bool
	HasProof        bool
}

// FieldError points at a form field with an i18n message key; templates
// translate the key next to the field.
type FieldError struct {
	Field string
	Key   string
}

// Validate checks the form against the selected product, the resolved
// voucher with the quoted subtotal, and the payment method. It returns one
// error per failing field; an empty slice means the form may be submitted.
func (f Form) Validate(product pricing.Product, voucher *pricing.Voucher, subtotal int64, requiresProof bool) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(f.CustomerName) == "" {
		errs = append(errs, FieldError{Field: "customer_name", Key: "checkout.err.name"})
	}
	if strings.TrimSpace(f.ContactNumber) == "" {
		errs = append(errs, FieldError{Field: "contact_number", Key: "checkout.err.contact"})
	}
	if f.Fulfillment == FulfillmentDelivery && strings.TrimSpace(f.DeliveryAddress) == "" {
		errs = append(errs, FieldError{Field: "delivery_address", Key: "checkout.err.address"})
	}
	if strings.TrimSpace(f.PaymentMethod) == "" {
		errs = append(errs, FieldError{Field: "payment_method", Key: "checkout.err.payment"})
	}
	if requiresProof && !f.HasProof {
		errs = append(errs, FieldError{Field: "payment_proof", Key: "checkout.err.proof"})
	}
	if !f.Confirmed {
		errs = append(errs, FieldError{Field: "confirm", Key: "checkout.err.confirm"})
	}

	if f.Quantity < 1 {
		errs = append(errs, FieldError{Field: "quantity", Key: "checkout.err.qty_min"})
	} else if avail := pricing.AvailableStock(product, f.VariantID); f.Quantity > avail {
		errs = append(errs, FieldError{Field: "quantity", Key: "checkout.err.qty_stock"})
	} else if exceedsAddonLimit(product, f.AddonIDs, f.Quantity) {
		errs = append(errs, FieldError{Field: "addon_ids", Key: "checkout.err.addon_qty"})
	}

	if voucher != nil && subtotal < voucher.MinPurchase {
		errs = append(errs, FieldError{Field: "voucher_code", Key: "checkout.err.voucher_min"})
	}

	return errs
}

// exceedsAddonLimit reports whether any selected add-on caps the number of
// units it can accompany below the ordered quantity.
func exceedsAddonLimit(product pricing.Product, selected []string, qty int) bool {
	if len(selected) == 0 {
		return false
	}
	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[strings.TrimSpace(id)] = struct{}{}
	}
	for _, a := range product.Addons {
		if a.MaxQuantity <= 0 {
			continue
		}
		if _, ok := chosen[a.ID]; ok && qty > a.MaxQuantity {
			return true
		}
	}
	return false
}

// OrderRequest converts the validated form into the API payload.
func (f Form) OrderRequest() OrderRequest {
	return OrderRequest{
		Items: []OrderItem{{
			ProductID: f.ProductID,
			VariantID: f.VariantID,
			Quantity:  f.Quantity,
			AddonIDs:  f.AddonIDs,
		}},
		CustomerName:    strings.TrimSpace(f.CustomerName),
		ContactNumber:   strings.TrimSpace(f.ContactNumber),
		Fulfillment:     f.Fulfillment,
		DeliveryAddress: strings.TrimSpace(f.DeliveryAddress),
		DeliveryNotes:   strings.TrimSpace(f.DeliveryNotes),
		PaymentMethod:   f.PaymentMethod,
		VoucherCode:     strings.ToUpper(strings.TrimSpace(f.VoucherCode)),
		CashbackUsed:    f.CashbackUsed,
		MarginAmount:    f.MarginAmount,
	}
}

// ParseAmount reads a rupiah amount from form input. Anything non-numeric or
// negative counts as zero.
func ParseAmount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseQuantity reads a quantity from form input, defaulting to zero.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ClampPercent bounds a discount percentage to [0,100] at the form boundary;
// the pure calculator deliberately does not sanitize out-of-range values.
func ClampPercent(pct float64) float64 {
	if pct < 0 || pct != pct { // NaN
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
