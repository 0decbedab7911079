package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError answers htmx requests with a small JSON body so the frontend
// can surface the failure as a toast; plain browser requests get the usual
// text/plain error page.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if !IsHTMX(r.Context()) {
		http.Error(w, msg, code)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{Error: msg, Code: code})
}
