package middlewares

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	HeaderXRequestId = "X-Request-Id"

	contextKeyRequestID contextKey = "request_id"
	contextKeyCustomer  contextKey = "customer"
)
