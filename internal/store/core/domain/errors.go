package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCartNotFound        = errors.New("cart not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrDuplicateCustomer   = errors.New("username or email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrTransactionSettled  = errors.New("transaction already settled")
	ErrProductOrdered      = errors.New("product is referenced by an order")
)

// ValidationError collects field-level problems of a request or entity.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem for field. The first problem per field wins.
func (v *ValidationError) Add(field, problem string) {
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = problem
	}
}

// OrNil returns nil when no problem was recorded, so callers can return it
// directly as an error.
func (v *ValidationError) OrNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + v.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PaymentError is a declined or failed call to a payment rail.
type PaymentError struct {
	Rail   string
	Reason string
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s payment failed: %s: %v", e.Rail, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s payment failed: %s", e.Rail, e.Reason)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
