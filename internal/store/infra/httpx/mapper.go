package httpx

import (
	"encoding/json"
	"time"

	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog"
	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func mapProduct(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price.StringFixed(domain.CurrencyPlaces),
		DiscountedPrice:    p.DiscountedPrice().StringFixed(domain.CurrencyPlaces),
		IsDiscounted:       p.IsDiscounted(),
		DiscountPercentage: p.DiscountPercentage,
		Category:           string(p.Category),
		CategoryName:       p.Category.Display(),
		Image:              p.Image,
		AddedByAdmin:       p.AddedByAdmin,
		AverageRating:      p.AverageRating.StringFixed(2),
		CreatedAt:          formatTime(p.CreatedAt),
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
}

func mapProducts(ps []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = mapProduct(p)
	}
	return out
}

func mapBanners(bs []domain.Banner) []BannerResponse {
	out := make([]BannerResponse, len(bs))
	for i, b := range bs {
		out[i] = BannerResponse{ID: b.ID, Kind: string(b.Kind), ImageURL: b.ImageURL, Title: b.Title}
	}
	return out
}

func mapCustomer(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Username:      c.Username,
		Email:         c.Email,
		Name:          c.Name,
		Location:      c.Location,
		City:          c.City,
		Country:       c.Country,
		PaymentMethod: string(c.PaymentMethod),
		CreatedAt:     formatTime(c.CreatedAt),
	}
}

func mapCart(c *domain.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			UnitPrice:   it.Product.Price.StringFixed(domain.CurrencyPlaces),
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.StringFixed(domain.CurrencyPlaces),
		}
	}
	return CartResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Items:      items,
		ItemCount:  c.ItemCount(),
		Total:      c.Total().StringFixed(domain.CurrencyPlaces),
		CreatedAt:  formatTime(c.CreatedAt),
	}
}

func mapOrder(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.StringFixed(domain.CurrencyPlaces),
		}
	}
	return OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		IsOrdered:   o.IsOrdered,
		Total:       o.Total().StringFixed(domain.CurrencyPlaces),
		FrozenTotal: o.FrozenTotal().StringFixed(domain.CurrencyPlaces),
		Items:       items,
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}

func mapCharge(c *domain.CardCharge) CardChargeResponse {
	return CardChargeResponse{
		ID:        c.ID,
		OrderID:   c.OrderID,
		Amount:    c.Amount.StringFixed(domain.CurrencyPlaces),
		Currency:  c.Currency,
		Status:    string(c.Status),
		ReceiptID: c.ReceiptID,
		Reason:    c.Reason,
	}
}

func mapMobileMoney(t *domain.MobileMoneyTransaction) MobileMoneyResponse {
	return MobileMoneyResponse{
		TransactionID: t.TransactionID,
		Phone:         t.Phone,
		Amount:        t.Amount.StringFixed(domain.CurrencyPlaces),
		Reference:     t.Reference,
		Status:        string(t.Status),
	}
}

func mapSagaLogs(entries []sagalog.SagaLog) []SagaLogResponse {
	out := make([]SagaLogResponse, len(entries))
	for i, e := range entries {
		out[i] = SagaLogResponse{
			Status:      string(e.Status),
			CurrentStep: e.CurrentStep,
			Errors:      json.RawMessage(e.ErrorMessages),
			TraceID:     e.TraceID,
			UpdatedAt:   e.UpdatedAt.Format(time.RFC3339Nano),
		}
	}
	return out
}
