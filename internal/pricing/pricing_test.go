package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nasiBox() Product {
	return Product{
		ID:              "prd_nasi_box",
		Name:            "Nasi Box Komplit",
		BasePrice:       100000,
		DiscountPercent: 10,
		Stock:           50,
		Variants: []Variant{
			{ID: "var_ayam", Name: "Ayam Bakar", PriceOverride: 120000, Stock: 30},
			{ID: "var_rendang", Name: "Rendang", PriceOverride: 150000, Stock: 12},
		},
		Addons: []Addon{
			{ID: "add_kerupuk", Name: "Kerupuk Udang", Price: 5000},
			{ID: "add_es_teh", Name: "Es Teh Manis", Price: 8000},
		},
	}
}

func TestUnitPriceVariantReplacesBase(t *testing.T) {
	p := nasiBox()

	assert.Equal(t, int64(100000), UnitPrice(p, ""))
	// variant price replaces, never adds to, the base price
	assert.Equal(t, int64(120000), UnitPrice(p, "var_ayam"))
	assert.Equal(t, int64(150000), UnitPrice(p, "var_rendang"))
	// unknown variant falls back to base price
	assert.Equal(t, int64(100000), UnitPrice(p, "var_nope"))
}

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		name string
		unit int64
		pct  float64
		want int64
	}{
		{"zero percent", 100000, 0, 100000},
		{"ten percent", 100000, 10, 90000},
		{"rounds half up", 99999, 10, 89999},
		{"full discount", 100000, 100, 0},
		{"negative percent ignored", 100000, -5, 100000},
		{"negative unit coerced", -500, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplyDiscount(tc.unit, tc.pct))
		})
	}
}

func TestApplyDiscountNeverExceedsUnit(t *testing.T) {
	for pct := 0.0; pct <= 100; pct += 2.5 {
		got := ApplyDiscount(175000, pct)
		assert.LessOrEqual(t, got, int64(175000), "pct=%v", pct)
		assert.GreaterOrEqual(t, got, int64(0), "pct=%v", pct)
	}
}

func TestSumAddons(t *testing.T) {
	p := nasiBox()

	assert.Equal(t, int64(0), SumAddons(p, nil))
	assert.Equal(t, int64(13000), SumAddons(p, []string{"add_kerupuk", "add_es_teh"}))
	// foreign ids contribute nothing
	assert.Equal(t, int64(5000), SumAddons(p, []string{"add_kerupuk", "add_other"}))
	// duplicates count once
	assert.Equal(t, int64(8000), SumAddons(p, []string{"add_es_teh", "add_es_teh"}))
}

func TestVoucherDiscountMinPurchase(t *testing.T) {
	v := &Voucher{Code: "HEMAT10", DiscountType: VoucherPercentage, DiscountValue: 10, MinPurchase: 180000}

	assert.Equal(t, int64(0), VoucherDiscount(179999, v))
	// equality to min_purchase qualifies
	assert.Equal(t, int64(18000), VoucherDiscount(180000, v))
}

func TestVoucherDiscountPercentageCap(t *testing.T) {
	v := &Voucher{Code: "HEMAT10", DiscountType: VoucherPercentage, DiscountValue: 10, MaxDiscount: 15000}

	for _, subtotal := range []int64{150000, 180000, 1000000, 25000000} {
		got := VoucherDiscount(subtotal, v)
		assert.LessOrEqual(t, got, int64(15000), "subtotal=%d", subtotal)
	}
	// MaxDiscount == 0 means uncapped
	uncapped := &Voucher{DiscountType: VoucherPercentage, DiscountValue: 10}
	assert.Equal(t, int64(100000), VoucherDiscount(1000000, uncapped))
}

func TestVoucherDiscountFixed(t *testing.T) {
	v := &Voucher{Code: "POTONG25", DiscountType: VoucherFixed, DiscountValue: 25000}

	assert.Equal(t, int64(25000), VoucherDiscount(180000, v))
	// fixed discount never exceeds the subtotal
	assert.Equal(t, int64(10000), VoucherDiscount(10000, v))

	// max_discount caps fixed vouchers too
	capped := &Voucher{DiscountType: VoucherFixed, DiscountValue: 25000, MaxDiscount: 15000}
	assert.Equal(t, int64(15000), VoucherDiscount(200000, capped))
}

func TestVoucherDiscountUnknownTypeOrNil(t *testing.T) {
	assert.Equal(t, int64(0), VoucherDiscount(500000, nil))
	assert.Equal(t, int64(0), VoucherDiscount(500000, &Voucher{DiscountType: "bogus", DiscountValue: 50}))
}

func TestCashbackApplied(t *testing.T) {
	// capped by balance
	assert.Equal(t, int64(15000), CashbackApplied(15000, 20000, 165000))
	// capped by remaining payable
	assert.Equal(t, int64(165000), CashbackApplied(500000, 400000, 165000))
	// negative request coerced to zero
	assert.Equal(t, int64(0), CashbackApplied(50000, -100, 165000))
}

func TestFinalTotalNeverNegative(t *testing.T) {
	cases := []struct {
		subtotal, voucher, cashback, margin int64
	}{
		{0, 0, 0, 0},
		{100000, 200000, 0, 0},
		{100000, 50000, 80000, 0},
		{100000, 50000, 80000, 10000},
		{-500, 0, 0, 0},
	}
	for _, tc := range cases {
		got := FinalTotal(tc.subtotal, tc.voucher, tc.cashback, tc.margin)
		assert.GreaterOrEqual(t, got, int64(0), "%+v", tc)
	}
}

// The four scenarios walk one order through each stage of the pipeline.
func TestQuoteScenarioPipeline(t *testing.T) {
	p := nasiBox()

	in := Input{Product: p, Quantity: 2}
	b := Quote(in)
	require.Equal(t, int64(100000), b.BaseUnitPrice)
	require.Equal(t, int64(90000), b.DiscountedUnitPrice)
	require.Equal(t, int64(180000), b.Subtotal)
	require.Equal(t, int64(180000), b.FinalTotal)

	in.Voucher = &Voucher{Code: "HEMAT10", DiscountType: VoucherPercentage, DiscountValue: 10, MaxDiscount: 15000}
	b = Quote(in)
	require.Equal(t, int64(15000), b.VoucherDiscount, "min(18000, 15000)")
	require.Equal(t, int64(165000), b.FinalTotal)

	in.CashbackBalance = 20000
	in.CashbackRequested = 20000
	b = Quote(in)
	require.Equal(t, int64(20000), b.CashbackApplied)
	require.Equal(t, int64(145000), b.FinalTotal)

	in.Margin = 5000
	b = Quote(in)
	require.Equal(t, int64(5000), b.MarginAdded)
	require.Equal(t, int64(150000), b.FinalTotal)
}

func TestQuoteWithVariantAndAddons(t *testing.T) {
	p := nasiBox()
	b := Quote(Input{
		Product:   p,
		VariantID: "var_ayam",
		AddonIDs:  []string{"add_kerupuk", "add_es_teh"},
		Quantity:  3,
	})

	// 120000 - 10% = 108000; +13000 addons; *3
	assert.Equal(t, int64(120000), b.BaseUnitPrice)
	assert.Equal(t, int64(108000), b.DiscountedUnitPrice)
	assert.Equal(t, int64(13000), b.AddonTotal)
	assert.Equal(t, int64(363000), b.Subtotal)
	assert.Equal(t, int64(363000), b.FinalTotal)
}

func TestQuoteIsIdempotent(t *testing.T) {
	in := Input{
		Product:           nasiBox(),
		VariantID:         "var_rendang",
		AddonIDs:          []string{"add_kerupuk"},
		Quantity:          4,
		Voucher:           &Voucher{DiscountType: VoucherFixed, DiscountValue: 30000},
		CashbackBalance:   12000,
		CashbackRequested: 12000,
		Margin:            7500,
	}
	assert.Equal(t, Quote(in), Quote(in))
}

func TestQuoteZeroQuantity(t *testing.T) {
	b := Quote(Input{Product: nasiBox(), Quantity: 0})
	assert.Equal(t, int64(0), b.Subtotal)
	assert.Equal(t, int64(0), b.FinalTotal)
}

func TestAvailableStock(t *testing.T) {
	p := nasiBox()
	assert.Equal(t, 50, AvailableStock(p, ""))
	assert.Equal(t, 12, AvailableStock(p, "var_rendang"))
	assert.Equal(t, 50, AvailableStock(p, "var_unknown"))
}
