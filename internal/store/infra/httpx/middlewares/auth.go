package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*domain.Customer, error)
}

// RequireCustomer resolves "Authorization: Token <key>" to a customer and
// rejects the request with 401 when that fails. "Bearer" is accepted as the
// scheme too.
func RequireCustomer(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := tokenFromHeader(r.Header.Get("Authorization"))
			if key == "" {
				unauthorized(w, "missing or malformed Authorization header")
				return
			}
			customer, err := auth.Authenticate(r.Context(), key)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), contextKeyCustomer, customer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromHeader(h string) string {
	scheme, key, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(key)
	}
	return ""
}

// CustomerFrom returns the customer stored by RequireCustomer.
func CustomerFrom(ctx context.Context) (*domain.Customer, bool) {
	c, ok := ctx.Value(contextKeyCustomer).(*domain.Customer)
	return c, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Token")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthenticated", "message": msg})
}
