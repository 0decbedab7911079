package main

import (
	"context"

	"github.com/cecepns/al-hakim-catering-sub001/internal/checkout"
	"github.com/cecepns/al-hakim-catering-sub001/internal/format"
	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
	"github.com/cecepns/al-hakim-catering-sub001/internal/store"
)

// MenuItemView is one product card on the menu listing.
type MenuItemView struct {
	ID              string
	Name            string
	Description     string
	Category        string
	BasePrice       string
	DiscountedPrice string
	DiscountPercent float64
	HasDiscount     bool
	InStock         bool
	MinOrder        int
}

// MenuView groups cards by category for the listing page.
type MenuView struct {
	Items      []MenuItemView
	Categories []string
	Active     string
}

// ProductView is the detail page model with options and the initial quote.
type ProductView struct {
	MenuItemView
	Variants  []VariantView
	Addons    []AddonView
	Images    []store.Image
	Breakdown BreakdownView
	Stock     int
}

type VariantView struct {
	ID      string
	Name    string
	Price   string
	Stock   int
	InStock bool
}

type AddonView struct {
	ID    string
	Name  string
	Price string
}

func buildMenuItemView(p store.Product, lang string) MenuItemView {
	pct := checkout.ClampPercent(p.DiscountPercent)
	discounted := pricing.ApplyDiscount(p.BasePrice, pct)
	return MenuItemView{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		BasePrice:       format.Currency(p.BasePrice, lang),
		DiscountedPrice: format.Currency(discounted, lang),
		DiscountPercent: pct,
		HasDiscount:     discounted < p.BasePrice,
		InStock:         p.Stock > 0,
		MinOrder:        p.MinOrder,
	}
}

func buildMenuView(products []store.Product, lang, category string) MenuView {
	var view MenuView
	view.Active = category
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			view.Categories = append(view.Categories, p.Category)
		}
		if category != "" && p.Category != category {
			continue
		}
		view.Items = append(view.Items, buildMenuItemView(p, lang))
	}
	return view
}

// loadPricingProduct fetches a product with its options and maps it to the
// calculator's shape.
func loadPricingProduct(ctx context.Context, productID string) (store.Product, pricing.Product, error) {
	p, err := catalogClient.Product(ctx, productID)
	if err != nil {
		return store.Product{}, pricing.Product{}, err
	}
	variations, err := catalogClient.Variations(ctx, productID)
	if err != nil {
		return store.Product{}, pricing.Product{}, err
	}
	addons, err := catalogClient.Addons(ctx, productID)
	if err != nil {
		return store.Product{}, pricing.Product{}, err
	}
	pp := store.PricingProduct(p, variations, addons)
	// the calculator takes catalog percentages at face value; bound them here
	pp.DiscountPercent = checkout.ClampPercent(pp.DiscountPercent)
	return p, pp, nil
}

func buildProductView(ctx context.Context, productID, lang string) (ProductView, error) {
	p, pp, err := loadPricingProduct(ctx, productID)
	if err != nil {
		return ProductView{}, err
	}
	images, err := catalogClient.Images(ctx, productID)
	if err != nil {
		return ProductView{}, err
	}

	view := ProductView{
		MenuItemView: buildMenuItemView(p, lang),
		Images:       images,
		Stock:        p.Stock,
	}
	for _, v := range pp.Variants {
		view.Variants = append(view.Variants, VariantView{
			ID:      v.ID,
			Name:    v.Name,
			Price:   format.Currency(pricing.ApplyDiscount(v.PriceOverride, pp.DiscountPercent), lang),
			Stock:   v.Stock,
			InStock: v.Stock > 0,
		})
	}
	for _, a := range pp.Addons {
		view.Addons = append(view.Addons, AddonView{
			ID:    a.ID,
			Name:  a.Name,
			Price: format.Currency(a.Price, lang),
		})
	}
	view.Breakdown = buildBreakdownView(pricing.Quote(pricing.Input{Product: pp, Quantity: 1}), lang)
	return view, nil
}
