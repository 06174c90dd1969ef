package httpx

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Requests

type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=150"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required,max=200"`
	Location      string `json:"location" validate:"max=200"`
	City          string `json:"city" validate:"max=100"`
	Country       string `json:"country" validate:"max=100"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=visa mpesa paypal"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Name          string `json:"name" validate:"required,max=200"`
	Location      string `json:"location" validate:"max=200"`
	City          string `json:"city" validate:"max=100"`
	Country       string `json:"country" validate:"max=100"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=visa mpesa paypal"`
}

type ProductRequest struct {
	Name               string          `json:"name" validate:"required,max=200"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	Category           string          `json:"category" validate:"required,oneof=suits shirts neckwear shoes"`
	Image              string          `json:"image" validate:"omitempty,max=500"`
	DiscountPercentage int             `json:"discount_percentage" validate:"gte=0,lte=100"`
}

type BannerRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=cover button"`
	ImageURL string `json:"image_url" validate:"required"`
	Title    string `json:"title"`
}

type RatingRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gte=0,lte=1000"`
}

type CheckoutRequest struct {
	CardToken string `json:"card_token" validate:"required"`
	Currency  string `json:"currency" validate:"omitempty,len=3"`
}

type CardChargeRequest struct {
	Token       string          `json:"token" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Description string          `json:"description"`
	OrderID     string          `json:"order_id" validate:"omitempty,uuid"`
}

type MobileChargeRequest struct {
	Phone       string          `json:"phone" validate:"required,numeric,min=9,max=15"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference" validate:"required,max=64"`
	Description string          `json:"description"`
}

type MobileCallbackRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required"`
}

type EmailRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject" validate:"required"`
	Body    string   `json:"body"`
}

// Responses

type ProductResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Price              string `json:"price"`
	DiscountedPrice    string `json:"discounted_price"`
	IsDiscounted       bool   `json:"is_discounted"`
	DiscountPercentage int    `json:"discount_percentage"`
	Category           string `json:"category"`
	CategoryName       string `json:"category_name"`
	Image              string `json:"image"`
	AddedByAdmin       bool   `json:"added_by_admin"`
	AverageRating      string `json:"average_rating"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

type CategoryResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type BannerResponse struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"`
	ImageURL string `json:"image_url"`
	Title    string `json:"title,omitempty"`
}

type RatingResponse struct {
	ProductID     int64  `json:"product_id"`
	AverageRating string `json:"average_rating"`
}

type CustomerResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
	CreatedAt     string `json:"created_at"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type CartResponse struct {
	ID         string             `json:"id"`
	CustomerID int64              `json:"customer_id"`
	Items      []CartItemResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	Total      string             `json:"total"`
	CreatedAt  string             `json:"created_at"`
}

type CartItemResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  int64               `json:"customer_id"`
	Status      string              `json:"status"`
	IsOrdered   bool                `json:"is_ordered"`
	Total       string              `json:"total"`
	FrozenTotal string              `json:"frozen_total"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}

type OrderItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type CardChargeResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id,omitempty"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	ReceiptID string `json:"receipt_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type MobileMoneyResponse struct {
	TransactionID string `json:"transaction_id"`
	Phone         string `json:"phone"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference"`
	Status        string `json:"status"`
}

type PublicKeyResponse struct {
	PublicKey string `json:"public_key"`
}

type CheckoutResponse struct {
	SagaID string              `json:"saga_id"`
	Order  *OrderResponse      `json:"order,omitempty"`
	Charge *CardChargeResponse `json:"charge,omitempty"`
}

type SagaLogResponse struct {
	Status      string          `json:"status"`
	CurrentStep string          `json:"current_step,omitempty"`
	Errors      json.RawMessage `json:"errors"`
	TraceID     string          `json:"trace_id,omitempty"`
	UpdatedAt   string          `json:"updated_at"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
