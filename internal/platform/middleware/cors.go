package middleware

import "net/http"

// CORS applies the permissive cross-origin headers the admin frontend relies
// on and short-circuits preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "PATCH, POST, GET, DELETE, OPTIONS, PUT")
		h.Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-disposition, Content-Type, Accept, Authorization, x-api-key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
