package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	mw "github.com/cecepns/al-hakim-catering-sub001/internal/middleware"
	"github.com/cecepns/al-hakim-catering-sub001/internal/store"
)

// HomeHandler renders the landing page with a few featured dishes.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	products, err := catalogClient.Products(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	if len(products) > 3 {
		products = products[:3]
	}
	view := buildMenuView(products, lang, "")

	pd := basePageData(r, i18nOrDefault(lang, "home.title", "Catering harian untuk acara Anda"))
	pd.Content = view
	renderPage(w, r, "home", pd)
}

// MenuHandler renders the product listing, optionally filtered by category.
func MenuHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	products, err := catalogClient.Products(r.Context())
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	view := buildMenuView(products, lang, category)

	pd := basePageData(r, i18nOrDefault(lang, "menu.title", "Menu"))
	pd.Content = view
	renderPage(w, r, "menu", pd)
}

// ProductHandler renders the product detail page with variant and add-on
// choices plus the starting price breakdown.
func ProductHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	productID := chi.URLParam(r, "productID")

	view, err := buildProductView(r.Context(), productID, lang)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	pd := basePageData(r, view.Name)
	pd.Content = view
	renderPage(w, r, "product", pd)
}

// ProductQuoteFrag recomputes the price breakdown for the options picked on
// the detail page and returns the breakdown fragment.
func ProductQuoteFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	productID := chi.URLParam(r, "productID")
	f := parseCheckoutForm(r)
	f.ProductID = productID
	if f.Quantity < 1 {
		f.Quantity = 1
	}

	_, pp, err := loadPricingProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	breakdown, _, _ := quoteFromForm(r, f, pp)
	data := map[string]any{
		"Lang":      lang,
		"Breakdown": buildBreakdownView(breakdown, lang),
	}
	renderTemplate(w, r, "frag_breakdown", data)
}
