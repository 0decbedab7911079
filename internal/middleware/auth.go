package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// staffClaims is the token payload issued by the backend for staff accounts.
type staffClaims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Auth hydrates the staff identity from a Bearer token. Staff tokens are
// HMAC-signed JWTs minted by the backend; verification only, no login flow
// lives in this app. Outside production, "Bearer debug:<uid>:<role,role>"
// is accepted as a development helper.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		env := strings.ToLower(os.Getenv("ALHAKIM_WEB_ENV"))
		if env != "prod" && strings.HasPrefix(token, "debug:") {
			parts := strings.SplitN(strings.TrimPrefix(token, "debug:"), ":", 2)
			staff := &Staff{ID: parts[0]}
			if len(parts) == 2 {
				staff.Roles = strings.Split(parts[1], ",")
			}
			if staff.ID != "" {
				s := GetSession(r)
				if s.UserID != staff.ID {
					s.UserID = staff.ID
					s.RegenerateID()
				}
				r = r.WithContext(WithStaff(r.Context(), staff))
			}
			next.ServeHTTP(w, r)
			return
		}

		if staff, err := verifyStaffToken(token); err == nil {
			s := GetSession(r)
			if s.UserID != staff.ID {
				s.UserID = staff.ID
				s.RegenerateID()
			}
			r = r.WithContext(WithStaff(r.Context(), staff))
		}
		next.ServeHTTP(w, r)
	})
}

func verifyStaffToken(token string) (*Staff, error) {
	key := os.Getenv("ALHAKIM_WEB_STAFF_JWT_KEY")
	if key == "" {
		return nil, fmt.Errorf("auth: staff jwt key not configured")
	}
	var claims staffClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return []byte(key), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("auth: invalid staff token")
	}
	return &Staff{ID: claims.Subject, Name: claims.Name, Roles: claims.Roles}, nil
}
