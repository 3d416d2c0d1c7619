// Package razorpay implements the payment gateway port against the Razorpay
// REST API. An order-level intent is created at checkout; the payment is
// fetched back during confirmation to verify the gateway reports it captured.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// RazorpayGateway implements the PaymentGateway port.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayGateway creates a gateway using the given API key pair.
func NewRazorpayGateway(keyID string, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ports.PaymentGateway = (*RazorpayGateway)(nil)

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentResponse struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// CreateIntent opens a gateway order for the given amount.
func (g *RazorpayGateway) CreateIntent(
	ctx context.Context,
	amount int64,
	currency string,
	receipt string,
) (ports.PaymentIntent, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return ports.PaymentIntent{}, err
	}

	var resp orderResponse
	if err = g.do(ctx, http.MethodPost, "/orders", bytes.NewReader(body), &resp); err != nil {
		return ports.PaymentIntent{}, err
	}

	return ports.PaymentIntent{
		Ref:      resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
	}, nil
}

// FetchPayment retrieves a payment by the gateway's payment identifier.
func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentRef string) (ports.Payment, error) {
	if paymentRef == "" {
		return ports.Payment{}, errs.NewValueIsRequiredError("payment ref")
	}

	var resp paymentResponse
	if err := g.do(ctx, http.MethodGet, "/payments/"+paymentRef, nil, &resp); err != nil {
		return ports.Payment{}, err
	}

	return ports.Payment{
		Ref:       resp.ID,
		IntentRef: resp.OrderID,
		Status:    resp.Status,
	}, nil
}

func (g *RazorpayGateway) do(ctx context.Context, method string, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.NewUpstreamFailureError("razorpay", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errs.NewUpstreamFailureError("razorpay",
			fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
