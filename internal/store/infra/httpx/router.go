package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/menswear-store/internal/store/infra/httpx/middlewares"
)

func NewRouter(handler *Handler, auth middlewares.Authenticator, serviceName string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)

	r.Post("/auth/register", handler.Register)
	r.Post("/auth/token", handler.IssueToken)

	r.Get("/categories", handler.ListCategories)
	r.Get("/products", handler.ListProducts)
	r.Get("/products/search", handler.SearchProducts)
	r.Get("/products/discounted", handler.DiscountedProducts)
	r.Get("/products/{id}", handler.GetProduct)
	r.Get("/products/{id}/suggestions", handler.Suggestions)
	r.Get("/banners", handler.ListBanners)

	r.Get("/payments/card/public-key", handler.CardPublicKey)
	r.Get("/payments/mobile/public-key", handler.MobilePublicKey)
	r.Post("/payments/mobile/callback", handler.MobileMoneyCallback)

	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireCustomer(auth))

		r.Get("/me", handler.Me)
		r.Put("/me", handler.UpdateMe)

		r.Post("/products", handler.CreateProduct)
		r.Put("/products/{id}", handler.UpdateProduct)
		r.Delete("/products/{id}", handler.DeleteProduct)
		r.Post("/products/{id}/ratings", handler.RateProduct)
		r.Delete("/products/{id}/ratings", handler.UnrateProduct)
		r.Post("/products/{id}/favorite", handler.Favorite)
		r.Delete("/products/{id}/favorite", handler.Unfavorite)
		r.Get("/favorites", handler.ListFavorites)
		r.Get("/favorites/count", handler.CountFavorites)
		r.Post("/banners", handler.CreateBanner)

		r.Post("/cart", handler.CreateCart)
		r.Get("/cart", handler.GetCart)
		r.Post("/cart/items", handler.AddCartItem)
		r.Delete("/cart/items/{productID}", handler.RemoveCartItem)

		r.Post("/orders", handler.CreateOrder)
		r.Get("/orders", handler.ListOrders)
		r.Get("/orders/{id}", handler.GetOrder)

		r.Post("/checkout", handler.Checkout)
		r.Get("/checkout/{sagaID}", handler.CheckoutStatus)

		r.Post("/payments/card/charge", handler.ChargeCard)
		r.Post("/payments/mobile/charge", handler.ChargeMobileMoney)

		r.Post("/email/send", handler.SendEmail)
	})

	return otelhttp.NewHandler(r, serviceName)
}
