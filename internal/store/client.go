// Package store is the thin HTTP client for the catalog side of the backend
// API: products, variations, add-ons, and images. When no base URL is
// configured the client serves deterministic sample data so the storefront
// renders in development and tests.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
)

const defaultTimeout = 8 * time.Second

// ErrNotFound is returned when the API reports an unknown product.
var ErrNotFound = errors.New("store: product not found")

// Client issues catalog reads against the backend API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Product mirrors the backend catalog payload.
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	BasePrice       int64   `json:"price"`
	DiscountPercent float64 `json:"discount"`
	Stock           int     `json:"stock"`
	MinOrder        int     `json:"min_order,omitempty"`
}

// Variation mirrors the backend variation payload. Its price replaces the
// product price when selected.
type Variation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceOverride int64  `json:"price_override"`
	Stock         int    `json:"stock"`
}

// Addon mirrors the backend add-on payload.
type Addon struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	MaxQuantity int    `json:"max_quantity,omitempty"`
}

// Image is a catalog photo reference.
type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Primary bool   `json:"is_primary,omitempty"`
}

// NewClient constructs a catalog client. When baseURL is empty, the client
// serves sample data.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	if c == nil || c.baseURL == "" {
		return fakeProducts(), nil
	}
	var out []Product
	if err := c.getJSON(ctx, &out, "products"); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrNotFound
	}
	if c == nil || c.baseURL == "" {
		return fakeProduct(id)
	}
	var out Product
	if err := c.getJSON(ctx, &out, "products", id); err != nil {
		return Product{}, err
	}
	return out, nil
}

// Variations lists a product's variations.
func (c *Client) Variations(ctx context.Context, productID string) ([]Variation, error) {
	if c == nil || c.baseURL == "" {
		return fakeVariations(productID), nil
	}
	var out []Variation
	if err := c.getJSON(ctx, &out, "products", productID, "variations"); err != nil {
		return nil, err
	}
	return out, nil
}

// Addons lists a product's add-ons.
func (c *Client) Addons(ctx context.Context, productID string) ([]Addon, error) {
	if c == nil || c.baseURL == "" {
		return fakeAddons(productID), nil
	}
	var out []Addon
	if err := c.getJSON(ctx, &out, "products", productID, "addons"); err != nil {
		return nil, err
	}
	return out, nil
}

// Images lists a product's photos.
func (c *Client) Images(ctx context.Context, productID string) ([]Image, error) {
	if c == nil || c.baseURL == "" {
		return fakeImages(productID), nil
	}
	var out []Image
	if err := c.getJSON(ctx, &out, "products", productID, "images"); err != nil {
		return nil, err
	}
	return out, nil
}

// PricingProduct assembles the pure calculator's product view from the
// catalog payloads.
func PricingProduct(p Product, variations []Variation, addons []Addon) pricing.Product {
	out := pricing.Product{
		ID:              p.ID,
		Name:            p.Name,
		BasePrice:       p.BasePrice,
		DiscountPercent: p.DiscountPercent,
		Stock:           p.Stock,
	}
	for _, v := range variations {
		out.Variants = append(out.Variants, pricing.Variant{
			ID:            v.ID,
			Name:          v.Name,
			PriceOverride: v.PriceOverride,
			Stock:         v.Stock,
		})
	}
	for _, a := range addons {
		out.Addons = append(out.Addons, pricing.Addon{
			ID:          a.ID,
			Name:        a.Name,
			Price:       a.Price,
			MaxQuantity: a.MaxQuantity,
		})
	}
	return out
}

func (c *Client) getJSON(ctx context.Context, out any, parts ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("store: %s status %d: %s", strings.Join(parts, "/"), resp.StatusCode, drainError(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
