package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/jcmexdev/menswear-store/internal/pkg/config"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

var _ ports.MobileMoneyGateway = (*MobileMoneyClient)(nil)

const pushPath = "/mpesa/stkpush/v1/processrequest"

// MobileMoneyClient starts push payments on a mobile-money rail. Requests are
// authorized with an OAuth2 client-credentials token that the client fetches
// and refreshes on its own.
type MobileMoneyClient struct {
	baseURL     string
	publicKey   string
	callbackURL string
	http        *http.Client
}

func NewMobileMoneyClient(cfg config.MobileMoneyConfig, timeout time.Duration) *MobileMoneyClient {
	base := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	}
	creds := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	// The token fetches reuse the instrumented base client.
	client := creds.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	client.Timeout = timeout

	return &MobileMoneyClient{
		baseURL:     strings.TrimRight(cfg.APIURL, "/"),
		publicKey:   cfg.PublicKey,
		callbackURL: cfg.CallbackURL,
		http:        client,
	}
}

type pushRequest struct {
	PhoneNumber      string `json:"PhoneNumber"`
	Amount           string `json:"Amount"`
	AccountReference string `json:"AccountReference"`
	TransactionDesc  string `json:"TransactionDesc"`
	CallBackURL      string `json:"CallBackURL"`
}

type pushResponse struct {
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ErrorMessage        string `json:"errorMessage"`
}

// Initiate asks the rail to prompt the phone for payment. An accepted result
// carries the rail's transaction id; the outcome is delivered to the callback
// URL.
func (m *MobileMoneyClient) Initiate(ctx context.Context, req ports.MobileMoneyRequest) (ports.MobileMoneyResult, error) {
	payload, err := json.Marshal(pushRequest{
		PhoneNumber:      req.Phone,
		Amount:           req.Amount.StringFixed(2),
		AccountReference: req.Reference,
		TransactionDesc:  req.Description,
		CallBackURL:      m.callbackURL,
	})
	if err != nil {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+pushPath, bytes.NewReader(payload))
	if err != nil {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(httpReq)
	if err != nil {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: read response: %w", err)
	}
	var out pushResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || out.ResponseCode != "0" {
		reason := out.ErrorMessage
		if reason == "" {
			reason = out.ResponseDescription
		}
		if reason == "" {
			reason = fmt.Sprintf("rejected with status %d", resp.StatusCode)
		}
		return ports.MobileMoneyResult{Reason: reason}, nil
	}
	if out.CheckoutRequestID == "" {
		return ports.MobileMoneyResult{}, fmt.Errorf("mobile money: response has no transaction id")
	}
	return ports.MobileMoneyResult{Accepted: true, TransactionID: out.CheckoutRequestID}, nil
}

func (m *MobileMoneyClient) PublicKey() string {
	return m.publicKey
}
