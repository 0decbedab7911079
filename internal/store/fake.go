package store

// Sample catalog served when no API base URL is configured. IDs and prices
// stay stable so templates and tests can rely on them.

func fakeProducts() []Product {
	return []Product{
		{
			ID:              "prd_nasi_box",
			Name:            "Nasi Box Komplit",
			Description:     "Nasi, lauk utama, sayur, sambal, dan buah.",
			Category:        "nasi-box",
			BasePrice:       100000,
			DiscountPercent: 10,
			Stock:           50,
			MinOrder:        1,
		},
		{
			ID:          "prd_tumpeng",
			Name:        "Tumpeng Mini",
			Description: "Tumpeng kuning dengan tujuh lauk pendamping.",
			Category:    "tumpeng",
			BasePrice:   350000,
			Stock:       8,
			MinOrder:    1,
		},
		{
			ID:              "prd_snack_box",
			Name:            "Snack Box Rapat",
			Description:     "Tiga kue tradisional dan air mineral.",
			Category:        "snack-box",
			BasePrice:       25000,
			DiscountPercent: 5,
			Stock:           200,
			MinOrder:        10,
		},
	}
}

func fakeProduct(id string) (Product, error) {
	for _, p := range fakeProducts() {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func fakeVariations(productID string) []Variation {
	switch productID {
	case "prd_nasi_box":
		return []Variation{
			{ID: "var_ayam", Name: "Ayam Bakar", PriceOverride: 120000, Stock: 30},
			{ID: "var_rendang", Name: "Rendang Sapi", PriceOverride: 150000, Stock: 12},
		}
	case "prd_tumpeng":
		return []Variation{
			{ID: "var_tumpeng_15", Name: "Porsi 15 Orang", PriceOverride: 550000, Stock: 4},
		}
	default:
		return nil
	}
}

func fakeAddons(productID string) []Addon {
	switch productID {
	case "prd_nasi_box":
		return []Addon{
			{ID: "add_kerupuk", Name: "Kerupuk Udang", Price: 5000},
			{ID: "add_es_teh", Name: "Es Teh Manis", Price: 8000},
		}
	case "prd_snack_box":
		return []Addon{
			{ID: "add_kopi", Name: "Kopi Sachet", Price: 4000, MaxQuantity: 2},
		}
	default:
		return nil
	}
}

func fakeImages(productID string) []Image {
	return []Image{
		{ID: productID + "_img1", URL: "/assets/img/" + productID + ".jpg", Primary: true},
	}
}
