package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/infra/httpx/middlewares"
)

type staticAuth map[string]*domain.Customer

func (s staticAuth) Authenticate(_ context.Context, key string) (*domain.Customer, error) {
	if c, ok := s[key]; ok {
		return c, nil
	}
	return nil, domain.ErrUnauthenticated
}

func TestRequireCustomer(t *testing.T) {
	auth := staticAuth{"k1": {ID: 7, Username: "ada"}}
	h := middlewares.RequireCustomer(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := middlewares.CustomerFrom(r.Context())
		assert.True(t, ok)
		assert.EqualValues(t, 7, c.ID)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		header string
		want   int
	}{
		{"Token k1", http.StatusNoContent},
		{"Bearer k1", http.StatusNoContent},
		{"token  k1 ", http.StatusNoContent},
		{"Token nope", http.StatusUnauthorized},
		{"Basic k1", http.StatusUnauthorized},
		{"k1", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				assert.JSONEq(t, `"unauthenticated"`, jsonField(t, rec.Body.Bytes(), "error"))
			}
		})
	}
}

func TestAttachRequestMetadata(t *testing.T) {
	var seen string
	h := middleware.RequestID(middlewares.AttachRequestMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middlewares.RequestIDFrom(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(middlewares.HeaderXRequestId))
}
