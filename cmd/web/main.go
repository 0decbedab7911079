package main

import (
	"flag"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cecepns/al-hakim-catering-sub001/internal/checkout"
	"github.com/cecepns/al-hakim-catering-sub001/internal/config"
	"github.com/cecepns/al-hakim-catering-sub001/internal/content"
	"github.com/cecepns/al-hakim-catering-sub001/internal/i18n"
	mw "github.com/cecepns/al-hakim-catering-sub001/internal/middleware"
	"github.com/cecepns/al-hakim-catering-sub001/internal/store"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	devMode      bool
	tmplCache    *template.Template

	appConfig      config.Config
	i18nBundle     *i18n.Bundle
	catalogClient  *store.Client
	checkoutClient *checkout.Client
	contentStore   *content.Store
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var addr string
	flag.StringVar(&addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&templatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&publicDir, "public", cfg.PublicDir, "public assets directory")
	flag.Parse()

	appConfig = cfg
	devMode = cfg.DevMode

	logger, err := newLogger(devMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.LocalesDir, "id", []string{"id", "en"})
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	catalogClient = store.NewClient(cfg.APIBaseURL)
	checkoutClient = checkout.NewClient(cfg.APIBaseURL)
	contentStore = content.NewStore(cfg.ContentDir)

	r := newRouter(logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("web listening", zap.String("addr", addr), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newRouter(logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only enable behind a trusted proxy.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.Auth)
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.Assets(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)

	r.Get("/menu", MenuHandler)
	r.Get("/menu/{productID}", ProductHandler)
	r.Post("/menu/{productID}/quote", ProductQuoteFrag)

	r.Get("/checkout", CheckoutHandler)
	r.Post("/checkout", CheckoutSubmitHandler)
	r.Post("/checkout/breakdown", CheckoutBreakdownFrag)
	r.Post("/checkout/voucher", CheckoutVoucherApplyHandler)
	r.Get("/checkout/success", CheckoutSuccessHandler)

	r.Get("/dashboard", DashboardHandler)
	r.Get("/dashboard/orders", DashboardOrdersFrag)

	r.Get("/pages/{slug}", ContentPageHandler)

	return r
}
