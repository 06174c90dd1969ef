package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/menswear-store/internal/pkg/config"
	"github.com/jcmexdev/menswear-store/internal/store/core/domain"
	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
)

// Ensure CardClient implements the port at compile time.
var _ ports.CardGateway = (*CardClient)(nil)

// CardClient charges tokenized cards against a Stripe-compatible charges API.
type CardClient struct {
	baseURL   string
	secretKey string
	publicKey string
	http      *http.Client
}

func NewCardClient(cfg config.CardConfig, timeout time.Duration) *CardClient {
	return &CardClient{
		baseURL:   strings.TrimRight(cfg.APIURL, "/"),
		secretKey: cfg.SecretKey,
		publicKey: cfg.PublicKey,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

type chargeResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	FailureMessage string `json:"failure_message"`
}

type apiErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		DeclineCode string `json:"decline_code"`
		Message     string `json:"message"`
	} `json:"error"`
}

// Charge creates a charge. Declines (HTTP 402 or a failed charge object) are
// returned as an unsuccessful result; anything else unexpected is an error.
func (c *CardClient) Charge(ctx context.Context, req ports.CardChargeRequest) (ports.CardChargeResult, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(domain.MinorUnits(req.Amount), 10))
	form.Set("currency", strings.ToLower(req.Currency))
	form.Set("source", req.Token)
	if req.Description != "" {
		form.Set("description", req.Description)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return ports.CardChargeResult{}, fmt.Errorf("card: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return ports.CardChargeResult{}, fmt.Errorf("card: charge: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.CardChargeResult{}, fmt.Errorf("card: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var ch chargeResponse
		if err := json.Unmarshal(body, &ch); err != nil {
			return ports.CardChargeResult{}, fmt.Errorf("card: decode charge: %w", err)
		}
		if ch.Status != "succeeded" {
			reason := ch.FailureMessage
			if reason == "" {
				reason = "charge " + ch.Status
			}
			return ports.CardChargeResult{ReceiptID: ch.ID, Reason: reason}, nil
		}
		return ports.CardChargeResult{Success: true, ReceiptID: ch.ID}, nil

	case resp.StatusCode == http.StatusPaymentRequired:
		var apiErr apiErrorResponse
		if err := json.Unmarshal(body, &apiErr); err != nil {
			return ports.CardChargeResult{}, fmt.Errorf("card: decode decline: %w", err)
		}
		return ports.CardChargeResult{Reason: declineReason(apiErr)}, nil

	default:
		var apiErr apiErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return ports.CardChargeResult{}, fmt.Errorf("card: unexpected status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}
}

func declineReason(e apiErrorResponse) string {
	switch {
	case e.Error.DeclineCode != "":
		return e.Error.DeclineCode
	case e.Error.Code != "":
		return e.Error.Code
	case e.Error.Message != "":
		return e.Error.Message
	}
	return "card_declined"
}

func (c *CardClient) PublicKey() string {
	return c.publicKey
}
