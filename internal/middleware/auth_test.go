package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func staffFromRequest(t *testing.T, header string) *Staff {
	t.Helper()
	var got *Staff
	h := Session(Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = StaffFromContext(r.Context())
		_, _ = io.WriteString(w, "ok")
	})))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return got
}

func TestAuthNoHeaderNoStaff(t *testing.T) {
	if got := staffFromRequest(t, ""); got != nil {
		t.Fatalf("expected no staff without Authorization, got %+v", got)
	}
}

func TestAuthDebugToken(t *testing.T) {
	got := staffFromRequest(t, "Bearer debug:stf_9:marketing,admin")
	if got == nil {
		t.Fatalf("expected staff from debug token")
	}
	if got.ID != "stf_9" {
		t.Fatalf("expected id stf_9, got %q", got.ID)
	}
	if len(got.Roles) != 2 || got.Roles[0] != "marketing" || got.Roles[1] != "admin" {
		t.Fatalf("unexpected roles %v", got.Roles)
	}
}

func TestAuthSignedStaffToken(t *testing.T) {
	t.Setenv("ALHAKIM_WEB_STAFF_JWT_KEY", "test-signing-key")

	claims := staffClaims{
		Name:  "Dedi",
		Roles: []string{"operations"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "stf_17",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	got := staffFromRequest(t, "Bearer "+token)
	if got == nil {
		t.Fatalf("expected staff from signed token")
	}
	if got.ID != "stf_17" || got.Name != "Dedi" {
		t.Fatalf("unexpected staff %+v", got)
	}
	if len(got.Roles) != 1 || got.Roles[0] != "operations" {
		t.Fatalf("unexpected roles %v", got.Roles)
	}
}

func TestAuthRejectsBadSignature(t *testing.T) {
	t.Setenv("ALHAKIM_WEB_STAFF_JWT_KEY", "test-signing-key")

	claims := staffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "stf_17",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if got := staffFromRequest(t, "Bearer "+token); got != nil {
		t.Fatalf("expected rejection of badly signed token, got %+v", got)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	t.Setenv("ALHAKIM_WEB_STAFF_JWT_KEY", "test-signing-key")

	claims := staffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "stf_17",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if got := staffFromRequest(t, "Bearer "+token); got != nil {
		t.Fatalf("expected rejection of expired token, got %+v", got)
	}
}
