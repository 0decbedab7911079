package main

import (
	"net/http"
	"strings"

	"github.com/cecepns/al-hakim-catering-sub001/internal/checkout"
	"github.com/cecepns/al-hakim-catering-sub001/internal/format"
	mw "github.com/cecepns/al-hakim-catering-sub001/internal/middleware"
	"github.com/cecepns/al-hakim-catering-sub001/internal/rbac"
)

// scopeCapabilities maps an order feed to the capability that may read it.
var scopeCapabilities = map[string]rbac.Capability{
	"all":        rbac.CapOrdersAll,
	"incoming":   rbac.CapOrdersIncoming,
	"kitchen":    rbac.CapKitchenQueue,
	"deliveries": rbac.CapDeliveries,
	"margin":     rbac.CapMarginRecap,
	"mine":       rbac.CapOrdersOwn,
}

// defaultScope picks the feed a staff member lands on.
func defaultScope(roles []string) string {
	for _, scope := range []string{"all", "incoming", "kitchen", "deliveries", "margin", "mine"} {
		if rbac.HasCapability(roles, scopeCapabilities[scope]) {
			return scope
		}
	}
	return ""
}

// allowedScopes lists every feed the roles can open, in display order.
func allowedScopes(roles []string) []string {
	var out []string
	for _, scope := range []string{"all", "incoming", "kitchen", "deliveries", "margin", "mine"} {
		if rbac.HasCapability(roles, scopeCapabilities[scope]) {
			out = append(out, scope)
		}
	}
	return out
}

// OrderRowView is one row in a dashboard order table.
type OrderRowView struct {
	ID           string
	CustomerName string
	Status       string
	Total        string
	Margin       string
	Payment      string
	Fulfillment  string
	Address      string
	Scheduled    string
}

// DashboardView drives the dashboard page and its order table fragment.
type DashboardView struct {
	Lang       string
	StaffName  string
	Scope      string
	Scopes     []string
	Orders     []OrderRowView
	ShowMargin bool
	TotalSum   string
	MarginSum  string
}

func buildOrderRows(orders []checkout.OrderSummary, lang string, showMargin bool) ([]OrderRowView, int64, int64) {
	var rows []OrderRowView
	var totalSum, marginSum int64
	for _, o := range orders {
		row := OrderRowView{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			Status:       o.Status,
			Total:        format.Currency(o.Total, lang),
			Payment:      o.PaymentMethod,
			Fulfillment:  o.Fulfillment,
			Address:      o.DeliveryAddress,
		}
		if !o.ScheduledAt.IsZero() {
			row.Scheduled = format.Date(o.ScheduledAt, lang)
		}
		if showMargin {
			row.Margin = format.Currency(o.MarginAmount, lang)
			marginSum += o.MarginAmount
		}
		totalSum += o.Total
		rows = append(rows, row)
	}
	return rows, totalSum, marginSum
}

func requestRoles(r *http.Request) ([]string, string) {
	if staff := mw.StaffFromContext(r.Context()); staff != nil {
		return staff.Roles, staff.Name
	}
	if sess := mw.GetSession(r); sess != nil && sess.UserID != "" {
		return []string{string(rbac.RoleBuyer)}, ""
	}
	return nil, ""
}

func buildDashboardView(r *http.Request, scope string) (DashboardView, int) {
	lang := mw.Lang(r)
	roles, name := requestRoles(r)
	if len(roles) == 0 {
		return DashboardView{}, http.StatusForbidden
	}

	if scope == "" {
		scope = defaultScope(roles)
	}
	capability, ok := scopeCapabilities[scope]
	if !ok || !rbac.HasCapability(roles, capability) {
		return DashboardView{}, http.StatusForbidden
	}

	orders, err := checkoutClient.Orders(r.Context(), scope)
	if err != nil {
		return DashboardView{}, http.StatusBadGateway
	}

	showMargin := scope == "margin" || rbac.HasCapability(roles, rbac.CapMarginRecap)
	rows, totalSum, marginSum := buildOrderRows(orders, lang, showMargin)

	view := DashboardView{
		Lang:       lang,
		StaffName:  name,
		Scope:      scope,
		Scopes:     allowedScopes(roles),
		Orders:     rows,
		ShowMargin: showMargin,
		TotalSum:   format.Currency(totalSum, lang),
	}
	if showMargin {
		view.MarginSum = format.Currency(marginSum, lang)
	}
	return view, http.StatusOK
}

// DashboardHandler renders the role-scoped dashboard page.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	scope := strings.TrimSpace(r.URL.Query().Get("scope"))

	view, status := buildDashboardView(r, scope)
	if status != http.StatusOK {
		if status == http.StatusForbidden {
			http.Error(w, i18nOrDefault(lang, "dashboard.err.forbidden", "Silakan masuk untuk melihat dasbor."), status)
			return
		}
		http.Error(w, "orders unavailable", status)
		return
	}

	pd := basePageData(r, i18nOrDefault(lang, "dashboard.title", "Dasbor"))
	pd.Content = view
	renderPage(w, r, "dashboard", pd)
}

// DashboardOrdersFrag swaps the order table when the staff member switches
// feeds.
func DashboardOrdersFrag(w http.ResponseWriter, r *http.Request) {
	scope := strings.TrimSpace(r.URL.Query().Get("scope"))

	view, status := buildDashboardView(r, scope)
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("HX-Push-Url", "/dashboard?scope="+view.Scope)
	renderTemplate(w, r, "frag_dashboard_orders", view)
}
