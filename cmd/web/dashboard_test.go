package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func getDashboard(t *testing.T, srv http.Handler, path, bearer string, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestDashboardAnonymousForbidden(t *testing.T) {
	srv := newTestRouter(t)
	rec := getDashboard(t, srv, "/dashboard", "", false)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardKitchenSeesQueueOnly(t *testing.T) {
	srv := newTestRouter(t)

	rec := getDashboard(t, srv, "/dashboard", "debug:stf_kit:kitchen", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "kitchen", doc.Find("[data-dashboard-orders]").AttrOr("data-scope", ""))

	// kitchen staff cannot open the all-orders feed
	rec = getDashboard(t, srv, "/dashboard?scope=all", "debug:stf_kit:kitchen", false)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardAdminDefaultsToAllOrders(t *testing.T) {
	srv := newTestRouter(t)
	rec := getDashboard(t, srv, "/dashboard", "debug:stf_adm:admin", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "all", doc.Find("[data-dashboard-orders]").AttrOr("data-scope", ""))
	require.GreaterOrEqual(t, doc.Find("[data-order-row]").Length(), 1)
	// admin can switch between every feed
	require.GreaterOrEqual(t, doc.Find(".scope-tabs a").Length(), 5)
}

func TestDashboardMarginRecapShowsMarginColumn(t *testing.T) {
	srv := newTestRouter(t)
	rec := getDashboard(t, srv, "/dashboard?scope=margin", "debug:stf_mkt:marketing", false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	headers := doc.Find(".order-table thead th").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	require.Contains(t, headers, "Margin")
}

func TestDashboardOrdersFragmentPushesURL(t *testing.T) {
	srv := newTestRouter(t)
	rec := getDashboard(t, srv, "/dashboard/orders?scope=deliveries", "debug:stf_opr:operations", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "/dashboard?scope=deliveries", rec.Header().Get("HX-Push-Url"))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "deliveries", doc.Find("[data-dashboard-orders]").AttrOr("data-scope", ""))
}

func TestDashboardCourierCannotOpenMarginRecap(t *testing.T) {
	srv := newTestRouter(t)
	rec := getDashboard(t, srv, "/dashboard/orders?scope=margin", "debug:stf_cou:courier", true)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
