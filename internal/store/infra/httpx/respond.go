package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jcmexdev/menswear-store/internal/coordinator/sagalog"
	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure the error
// response has been written and decode returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeDomainError(w, r, validationError(err))
		return false
	}
	return true
}

// validationError translates validator output into the domain's field map.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	v := domain.NewValidationError()
	for _, fe := range fieldErrs {
		v.Add(fieldName(fe), describe(fe))
	}
	return v
}

// fieldName strips the struct name from the namespace, keeping list indexes
// such as to[1].
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "uuid":
		return "must be a UUID"
	}
	return "is invalid"
}

// writeDomainError maps service errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var perr *domain.PaymentError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: "request is invalid", Fields: verr.Fields})
	case errors.As(err, &perr):
		writeError(w, http.StatusPaymentRequired, "payment_failed", perr.Reason)
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrCartNotFound):
		writeError(w, http.StatusNotFound, "cart_not_found", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, domain.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "customer_not_found", err.Error())
	case errors.Is(err, domain.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "transaction_not_found", err.Error())
	case errors.Is(err, sagalog.ErrSagaNotFound):
		writeError(w, http.StatusNotFound, "saga_not_found", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, domain.ErrTransactionSettled):
		writeError(w, http.StatusConflict, "transaction_settled", err.Error())
	case errors.Is(err, domain.ErrProductOrdered):
		writeError(w, http.StatusConflict, "product_ordered", err.Error())
	case errors.Is(err, domain.ErrDuplicateCustomer):
		writeError(w, http.StatusConflict, "duplicate_customer", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, domain.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "invalid_category", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
