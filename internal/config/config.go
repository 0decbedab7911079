// Package config assembles runtime configuration from the environment and an
// optional YAML file. A .env file is loaded first in development so local
// runs behave like deployed ones.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration for the storefront.
type Config struct {
	Addr         string
	APIBaseURL   string
	TemplatesDir string
	PublicDir    string
	LocalesDir   string
	ContentDir   string
	DevMode      bool

	// Store carries merchant settings read from the YAML file.
	Store StoreConfig
}

// StoreConfig is the merchant-editable part of the configuration.
type StoreConfig struct {
	BrandName       string          `yaml:"brand_name"`
	WhatsAppNumber  string          `yaml:"whatsapp_number"`
	PaymentMethods  []PaymentMethod `yaml:"payment_methods"`
	DeliveryZones   []DeliveryZone  `yaml:"delivery_zones"`
	OrderCutoffHour int             `yaml:"order_cutoff_hour"`
}

// PaymentMethod describes an accepted payment option. Methods with
// RequiresProof expect a transfer receipt uploaded at checkout.
type PaymentMethod struct {
	ID            string `yaml:"id"`
	Label         string `yaml:"label"`
	AccountNumber string `yaml:"account_number,omitempty"`
	AccountName   string `yaml:"account_name,omitempty"`
	RequiresProof bool   `yaml:"requires_proof"`
}

// DeliveryZone describes a serviced area and its flat delivery fee.
type DeliveryZone struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Fee   int64  `yaml:"fee"`
}

// Load reads configuration. Missing .env and store files are not errors; a
// malformed store file is.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         ":" + envOr("PORT", envOr("ALHAKIM_WEB_PORT", "8080")),
		APIBaseURL:   strings.TrimRight(os.Getenv("ALHAKIM_WEB_API_BASE_URL"), "/"),
		TemplatesDir: envOr("ALHAKIM_WEB_TEMPLATES", "templates"),
		PublicDir:    envOr("ALHAKIM_WEB_PUBLIC", "public"),
		LocalesDir:   envOr("ALHAKIM_WEB_LOCALES", "locales"),
		ContentDir:   envOr("ALHAKIM_WEB_CONTENT", "content"),
		DevMode:      os.Getenv("ALHAKIM_WEB_DEV") != "" || os.Getenv("DEV") != "",
		Store:        defaultStore(),
	}

	storePath := envOr("ALHAKIM_WEB_STORE_FILE", "store.yaml")
	raw, err := os.ReadFile(storePath)
	if err == nil {
		var sc StoreConfig
		if err := yaml.Unmarshal(raw, &sc); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", storePath, err)
		}
		mergeStore(&cfg.Store, sc)
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", storePath, err)
	}

	return cfg, nil
}

func defaultStore() StoreConfig {
	return StoreConfig{
		BrandName: "Al-Hakim Catering",
		PaymentMethods: []PaymentMethod{
			{ID: "transfer_bca", Label: "Transfer BCA", RequiresProof: true},
			{ID: "cod", Label: "Bayar di Tempat (COD)"},
		},
		DeliveryZones: []DeliveryZone{
			{ID: "dalam-kota", Label: "Dalam Kota", Fee: 0},
		},
		OrderCutoffHour: 20,
	}
}

func mergeStore(dst *StoreConfig, src StoreConfig) {
	if src.BrandName != "" {
		dst.BrandName = src.BrandName
	}
	if src.WhatsAppNumber != "" {
		dst.WhatsAppNumber = src.WhatsAppNumber
	}
	if len(src.PaymentMethods) > 0 {
		dst.PaymentMethods = src.PaymentMethods
	}
	if len(src.DeliveryZones) > 0 {
		dst.DeliveryZones = src.DeliveryZones
	}
	if src.OrderCutoffHour > 0 {
		dst.OrderCutoffHour = src.OrderCutoffHour
	}
}

// Method returns the payment method with the given id, if configured.
func (sc StoreConfig) Method(id string) (PaymentMethod, bool) {
	for _, m := range sc.PaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// CutoffPassed reports whether today's order cutoff has passed.
func (sc StoreConfig) CutoffPassed(now time.Time) bool {
	if sc.OrderCutoffHour <= 0 || sc.OrderCutoffHour > 23 {
		return false
	}
	return now.Hour() >= sc.OrderCutoffHour
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
