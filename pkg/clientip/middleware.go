package clientip

import "net/http"

// Middleware resolves the client IP with res and stores it in the request
// context. A nil res uses the default Resolver.
func Middleware(res *Resolver) func(http.Handler) http.Handler {
	if res == nil {
		res = New()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetIPToContext(r.Context(), res.IP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
