package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cecepns/al-hakim-catering-sub001/internal/checkout"
	"github.com/cecepns/al-hakim-catering-sub001/internal/format"
	mw "github.com/cecepns/al-hakim-catering-sub001/internal/middleware"
	"github.com/cecepns/al-hakim-catering-sub001/internal/pricing"
)

const maxProofSize = 5 << 20 // payment proof upload cap

// CheckoutHandler renders the checkout page. The product comes from the
// ?product= query or the session cart; the form restores saved progress.
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	f := checkoutFormFromSession(r)
	if pid := strings.TrimSpace(r.URL.Query().Get("product")); pid != "" {
		if pid != f.ProductID {
			f.VariantID = ""
			f.AddonIDs = nil
			f.Quantity = 1
		}
		f.ProductID = pid
	}
	if v := strings.TrimSpace(r.URL.Query().Get("variant")); v != "" {
		f.VariantID = v
	}

	_, pp, err := productForCheckout(r.Context(), f.ProductID)
	if err != nil {
		// nothing to sell yet; send the visitor back to the menu
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
		return
	}
	f.ProductID = pp.ID

	view := buildCheckoutView(r, f, pp, nil)

	pd := basePageData(r, i18nOrDefault(lang, "checkout.title", "Checkout"))
	pd.Content = view
	renderPage(w, r, "checkout", pd)
}

func buildCheckoutView(r *http.Request, f checkout.Form, pp pricing.Product, errs map[string]string) CheckoutView {
	lang := mw.Lang(r)
	breakdown, voucher, voucherOK := quoteFromForm(r, f, pp)

	status := VoucherStatusView{Lang: lang, Attempt: f.VoucherCode}
	if f.VoucherCode != "" {
		if voucher != nil {
			status.Applied = true
			status.Code = voucher.Code
			status.Discount = format.Currency(breakdown.VoucherDiscount, lang)
			status.StatusTone = "success"
			status.StatusText = i18nOrDefault(lang, "checkout.voucher.applied", "Voucher diterapkan.")
		} else if !voucherOK {
			status.StatusTone = "error"
			status.StatusText = i18nOrDefault(lang, "checkout.voucher.not_found", "Kode voucher tidak ditemukan.")
		}
	}

	productView, _ := buildProductView(r.Context(), pp.ID, lang)

	csrf := ""
	if sess := mw.GetSession(r); sess != nil {
		csrf = sess.CSRFToken
	}

	return CheckoutView{
		Lang:           lang,
		Product:        productView,
		Form:           f,
		Errors:         errs,
		PaymentMethods: appConfig.Store.PaymentMethods,
		DeliveryZones:  appConfig.Store.DeliveryZones,
		Breakdown:      buildBreakdownView(breakdown, lang),
		VoucherStatus:  status,
		Cashback:       buildCashbackView(r, lang),
		CanAddMargin:   canAddMargin(r),
		CutoffPassed:   appConfig.Store.CutoffPassed(time.Now()),
		WhatsApp:       appConfig.Store.WhatsAppNumber,
		CSRFToken:      csrf,
	}
}

// CheckoutBreakdownFrag recomputes the live price breakdown as the customer
// edits the form.
func CheckoutBreakdownFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	f := parseCheckoutForm(r)
	rememberCheckout(r, f)

	_, pp, err := productForCheckout(r.Context(), f.ProductID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	breakdown, _, _ := quoteFromForm(r, f, pp)
	data := map[string]any{
		"Lang":      lang,
		"Breakdown": buildBreakdownView(breakdown, lang),
	}
	renderTemplate(w, r, "frag_breakdown", data)
}

// CheckoutVoucherApplyHandler validates a voucher code, keeps it in the
// session on success, and tells the page to refresh the breakdown.
func CheckoutVoucherApplyHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rawCode := strings.ToUpper(strings.TrimSpace(r.FormValue("voucher_code")))

	status := VoucherStatusView{Lang: lang, Attempt: rawCode}
	voucher, _ := resolveVoucher(r.Context(), rawCode)
	if voucher != nil {
		status.Applied = true
		status.Code = voucher.Code
		status.StatusTone = "success"
		status.StatusText = i18nOrDefault(lang, "checkout.voucher.applied", "Voucher diterapkan.")

		if sess := mw.GetSession(r); sess != nil {
			sess.Checkout.VoucherCode = voucher.Code
			sess.MarkDirty()
		}

		payload := map[string]any{
			"checkout:voucher-applied": map[string]string{"code": voucher.Code},
		}
		if raw, err := json.Marshal(payload); err == nil {
			w.Header().Set("HX-Trigger", string(raw))
		}
	} else {
		status.StatusTone = "error"
		status.StatusText = i18nOrDefault(lang, "checkout.voucher.not_found", "Kode voucher tidak ditemukan.")
	}

	renderTemplate(w, r, "frag_voucher_status", status)
}

// CheckoutSubmitHandler validates and submits the order. Bank-transfer
// methods carry the payment proof as a multipart upload.
func CheckoutSubmitHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
	}
	f := parseCheckoutForm(r)
	rememberCheckout(r, f)

	_, pp, err := productForCheckout(r.Context(), f.ProductID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f.ProductID = pp.ID

	requiresProof := false
	if method, ok := appConfig.Store.Method(f.PaymentMethod); ok {
		requiresProof = method.RequiresProof
	}

	breakdown, voucher, _ := quoteFromForm(r, f, pp)
	if errs := f.Validate(pp, voucher, breakdown.Subtotal, requiresProof); len(errs) > 0 {
		view := buildCheckoutView(r, f, pp, fieldErrorMap(lang, errs))
		if mw.IsHTMX(r.Context()) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			renderTemplate(w, r, "frag_checkout_form", view)
			return
		}
		pd := basePageData(r, i18nOrDefault(lang, "checkout.title", "Checkout"))
		pd.Content = view
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderPage(w, r, "checkout", pd)
		return
	}

	req := f.OrderRequest()
	// send what the quote actually applied: margin is already gated to
	// entitled staff and cashback capped at the balance and the payable
	req.MarginAmount = breakdown.MarginAdded
	req.CashbackUsed = breakdown.CashbackApplied

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["payment_proof"]; len(files) > 0 {
			file, err := files[0].Open()
			if err != nil {
				http.Error(w, "invalid upload", http.StatusBadRequest)
				return
			}
			defer file.Close()
			req.Proof = &checkout.ProofFile{Filename: files[0].Filename, Content: file}
		}
	}

	var resp checkout.OrderResponse
	sess := mw.GetSession(r)
	if sess != nil && sess.UserID != "" {
		resp, err = checkoutClient.CreateOrder(r.Context(), req)
	} else {
		req.GuestReference = uuid.NewString()
		resp, err = checkoutClient.CreateGuestOrder(r.Context(), req)
	}
	if err != nil {
		msg := i18nOrDefault(lang, "checkout.err.submit_failed", "Pesanan gagal dikirim. Silakan coba lagi.")
		if mw.IsHTMX(r.Context()) {
			w.WriteHeader(http.StatusBadGateway)
			renderTemplate(w, r, "c_inline_alert", map[string]any{"Tone": "error", "Text": msg})
			return
		}
		http.Error(w, msg, http.StatusBadGateway)
		return
	}

	if sess != nil {
		sess.Cart = nil
		sess.Checkout = mw.CheckoutState{}
		sess.MarkDirty()
	}

	target := "/checkout/success?" + url.Values{"order": {resp.OrderID}, "status": {resp.Status}}.Encode()
	if mw.IsHTMX(r.Context()) {
		payload := map[string]any{
			"checkout:order-created": map[string]any{
				"order_id": resp.OrderID,
				"status":   resp.Status,
				"total":    resp.Total,
			},
		}
		if raw, err := json.Marshal(payload); err == nil {
			w.Header().Set("HX-Trigger", string(raw))
		}
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// CheckoutSuccessHandler shows the confirmation page after an order lands.
func CheckoutSuccessHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	orderID := strings.TrimSpace(r.URL.Query().Get("order"))
	if orderID == "" {
		http.Redirect(w, r, "/menu", http.StatusSeeOther)
		return
	}
	data := map[string]any{
		"OrderID":  orderID,
		"Status":   strings.TrimSpace(r.URL.Query().Get("status")),
		"WhatsApp": appConfig.Store.WhatsAppNumber,
	}
	pd := basePageData(r, i18nOrDefault(lang, "checkout.success.title", "Pesanan diterima"))
	pd.Content = data
	renderPage(w, r, "checkout_success", pd)
}
