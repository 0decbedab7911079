package checkout

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
)

// Sample responses served when no API base URL is configured.

const fakeCashbackBalance = int64(20000)

func fakeVoucher(code string) (*pricing.Voucher, error) {
	switch code {
	case "HEMAT10":
		return &pricing.Voucher{
			Code:          "HEMAT10",
			DiscountType:  pricing.VoucherPercentage,
			DiscountValue: 10,
			MinPurchase:   150000,
			MaxDiscount:   15000,
		}, nil
	case "POTONG25":
		return &pricing.Voucher{
			Code:          "POTONG25",
			DiscountType:  pricing.VoucherFixed,
			DiscountValue: 25000,
			MinPurchase:   200000,
		}, nil
	default:
		return nil, ErrVoucherNotFound
	}
}

func fakeOrderResponse() OrderResponse {
	return OrderResponse{
		OrderID: "ord_" + ulid.Make().String(),
		Status:  "awaiting_payment",
		Total:   180000,
	}
}

func fakeOrders(scope string) []OrderSummary {
	base := []OrderSummary{
		{
			ID:              "ord_001",
			CustomerName:    "Bu Ratna",
			Status:          "confirmed",
			Total:           540000,
			PaymentMethod:   "transfer_bca",
			Fulfillment:     "delivery",
			DeliveryAddress: "Jl. Melati No. 3",
			ScheduledAt:     time.Now().Add(24 * time.Hour),
		},
		{
			ID:            "ord_002",
			CustomerName:  "Pak Dedi",
			Status:        "preparing",
			Total:         180000,
			MarginAmount:  5000,
			PaymentMethod: "cod",
			Fulfillment:   "pickup",
			ScheduledAt:   time.Now().Add(4 * time.Hour),
		},
		{
			ID:              "ord_003",
			CustomerName:    "Ibu Sari",
			Status:          "out_for_delivery",
			Total:           350000,
			Fulfillment:     "delivery",
			DeliveryAddress: "Perum Griya Asri B7",
			ScheduledAt:     time.Now().Add(2 * time.Hour),
		},
	}

	switch scope {
	case "kitchen":
		return filterOrders(base, "confirmed", "preparing")
	case "deliveries":
		return filterOrders(base, "out_for_delivery")
	case "incoming":
		return filterOrders(base, "confirmed")
	case "margin":
		var out []OrderSummary
		for _, o := range base {
			if o.MarginAmount > 0 {
				out = append(out, o)
			}
		}
		return out
	case "mine":
		return base[:1]
	default:
		return base
	}
}

func filterOrders(in []OrderSummary, statuses ...string) []OrderSummary {
	var out []OrderSummary
	for _, o := range in {
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	return out
}
