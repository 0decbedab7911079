// Package pricing computes order price breakdowns for the storefront.
//
// All amounts are rupiah expressed as int64. Every function is total over
// its numeric domain: negative or missing inputs are treated as zero and
// nothing here panics or performs I/O. The backend recomputes totals at
// order creation; these results are display values only.
package pricing

import (
	"math"
	"strings"
)

// Voucher discount types accepted from the voucher API.
const (
	VoucherPercentage = "percentage"
	VoucherFixed      = "fixed"
)

// Product is the subset of the catalog payload the calculator needs.
type Product struct {
	ID              string
	Name            string
	BasePrice       int64
	DiscountPercent float64 // 0-100
	Stock           int
	Variants        []Variant
	Addons          []Addon
}

// Variant is a mutually-exclusive option whose price replaces the base price.
type Variant struct {
	ID            string
	Name          string
	PriceOverride int64
	Stock         int
}

// Addon is an additive optional extra charged per unit.
type Addon struct {
	ID          string
	Name        string
	Price       int64
	MaxQuantity int
}

// Voucher is a code-redeemable discount with a minimum-purchase threshold
// and an optional maximum-discount cap (0 means uncapped).
type Voucher struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	MinPurchase   int64
	MaxDiscount   int64
}

// Input carries everything needed to quote a single-product order.
type Input struct {
	Product           Product
	VariantID         string
	AddonIDs          []string
	Quantity          int
	Voucher           *Voucher
	CashbackBalance   int64
	CashbackRequested int64
	Margin            int64
}

// Breakdown is the derived price breakdown shown next to the checkout form.
// It is recomputed on every input change and never persisted.
type Breakdown struct {
	BaseUnitPrice       int64
	DiscountedUnitPrice int64
	AddonTotal          int64
	Subtotal            int64
	VoucherDiscount     int64
	CashbackApplied     int64
	MarginAdded         int64
	FinalTotal          int64
}

// UnitPrice returns the selected variant's price override, or the product
// base price when no variant matches. Variant prices replace the base price,
// they never add to it.
func UnitPrice(p Product, variantID string) int64 {
	variantID = strings.TrimSpace(variantID)
	if variantID != "" {
		for _, v := range p.Variants {
			if v.ID == variantID {
				return clampAmount(v.PriceOverride)
			}
		}
	}
	return clampAmount(p.BasePrice)
}

// ApplyDiscount returns round(unit * (1 - pct/100)). Percentages below zero
// (and NaN) count as no discount. Values above 100 are passed through
// unchanged; callers clamp at the form boundary.
func ApplyDiscount(unit int64, pct float64) int64 {
	unit = clampAmount(unit)
	if math.IsNaN(pct) || pct <= 0 {
		return unit
	}
	return int64(math.Round(float64(unit) * (1 - pct/100)))
}

// SumAddons totals the prices of selected add-on ids. Ids that do not belong
// to the product contribute nothing, and duplicates count once.
func SumAddons(p Product, selected []string) int64 {
	if len(selected) == 0 {
		return 0
	}
	byID := make(map[string]int64, len(p.Addons))
	for _, a := range p.Addons {
		byID[a.ID] = clampAmount(a.Price)
	}
	seen := make(map[string]struct{}, len(selected))
	var sum int64
	for _, id := range selected {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		sum += byID[id]
	}
	return sum
}

// Subtotal is (discounted unit + addon sum) * quantity.
func Subtotal(discountedUnit, addonSum int64, qty int) int64 {
	if qty < 0 {
		qty = 0
	}
	return (discountedUnit + clampAmount(addonSum)) * int64(qty)
}

// VoucherDiscount evaluates a voucher against the subtotal. The discount is
// zero while the subtotal is below the minimum purchase; reaching it exactly
// qualifies. Both voucher types are capped at MaxDiscount when it is
// positive, and neither exceeds the subtotal.
func VoucherDiscount(subtotal int64, v *Voucher) int64 {
	if v == nil {
		return 0
	}
	subtotal = clampAmount(subtotal)
	if subtotal < clampAmount(v.MinPurchase) {
		return 0
	}
	switch strings.ToLower(strings.TrimSpace(v.DiscountType)) {
	case VoucherPercentage:
		pct := v.DiscountValue
		if math.IsNaN(pct) || pct <= 0 {
			return 0
		}
		d := int64(math.Round(float64(subtotal) * pct / 100))
		if max := clampAmount(v.MaxDiscount); max > 0 && d > max {
			d = max
		}
		if d > subtotal {
			d = subtotal
		}
		return d
	case VoucherFixed:
		d := int64(math.Round(v.DiscountValue))
		if d < 0 {
			return 0
		}
		if max := clampAmount(v.MaxDiscount); max > 0 && d > max {
			d = max
		}
		if d > subtotal {
			d = subtotal
		}
		return d
	default:
		return 0
	}
}

// CashbackApplied caps a requested cashback deduction at the buyer's balance
// and at the amount still payable after the voucher discount.
func CashbackApplied(balance, requested, payable int64) int64 {
	requested = clampAmount(requested)
	if b := clampAmount(balance); requested > b {
		requested = b
	}
	if p := clampAmount(payable); requested > p {
		requested = p
	}
	return requested
}

// FinalTotal is max(0, subtotal - voucherDiscount - cashback + margin).
func FinalTotal(subtotal, voucherDiscount, cashback, margin int64) int64 {
	total := clampAmount(subtotal) - clampAmount(voucherDiscount) - clampAmount(cashback) + clampAmount(margin)
	if total < 0 {
		return 0
	}
	return total
}

// Quote runs the whole pipeline: base price, variant override, percentage
// discount, add-ons, quantity, voucher, cashback, marketing margin.
func Quote(in Input) Breakdown {
	base := UnitPrice(in.Product, in.VariantID)
	discounted := ApplyDiscount(base, in.Product.DiscountPercent)
	addons := SumAddons(in.Product, in.AddonIDs)
	subtotal := Subtotal(discounted, addons, in.Quantity)
	voucher := VoucherDiscount(subtotal, in.Voucher)
	cashback := CashbackApplied(in.CashbackBalance, in.CashbackRequested, subtotal-voucher)
	margin := clampAmount(in.Margin)

	return Breakdown{
		BaseUnitPrice:       base,
		DiscountedUnitPrice: discounted,
		AddonTotal:          addons,
		Subtotal:            subtotal,
		VoucherDiscount:     voucher,
		CashbackApplied:     cashback,
		MarginAdded:         margin,
		FinalTotal:          FinalTotal(subtotal, voucher, cashback, margin),
	}
}

// AvailableStock returns the stock bound for the current selection: the
// variant's stock when one is selected, the product's otherwise.
func AvailableStock(p Product, variantID string) int {
	variantID = strings.TrimSpace(variantID)
	if variantID != "" {
		for _, v := range p.Variants {
			if v.ID == variantID {
				if v.Stock < 0 {
					return 0
				}
				return v.Stock
			}
		}
	}
	if p.Stock < 0 {
		return 0
	}
	return p.Stock
}

func clampAmount(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
