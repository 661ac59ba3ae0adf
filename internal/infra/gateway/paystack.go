// Package gateway holds the payment-gateway collaborators. Verification is
// the single source of truth for charge outcomes. Initialization failures
// never mutate booking state; the caller degrades to a sandbox handle.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shortstay/internal/pkg/config"
	"shortstay/internal/pkg/errs"
	"shortstay/internal/usecase/shared"
)

type PaystackGateway struct {
	baseURL     string
	secretKey   string
	callbackURL string
	client      *http.Client
}

func NewPaystackGateway(cfg config.PaymentConfig) *PaystackGateway {
	return &PaystackGateway{
		baseURL:     cfg.PaystackBaseURL,
		secretKey:   cfg.PaystackSecretKey,
		callbackURL: cfg.CallbackURL,
		client:      &http.Client{Timeout: cfg.GatewayTimeout},
	}
}

func (g *PaystackGateway) Name() string {
	return "paystack"
}

type paystackInitRequest struct {
	Reference   string `json:"reference"`
	Amount      int64  `json:"amount"` // kobo
	Email       string `json:"email"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type paystackInitResponse struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
	Message string `json:"message"`
}

func (g *PaystackGateway) InitializeCharge(ctx context.Context, ref string, amount int64, email string) (*shared.ChargeAuthorization, error) {
	payload := paystackInitRequest{
		Reference:   ref,
		Amount:      amount * 100, // Paystack amounts are in kobo
		Email:       email,
		CallbackURL: g.callbackURL,
	}

	var resp paystackInitResponse
	if err := g.post(ctx, "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, errs.Mark(errs.Newf("paystack initialize rejected: %s", resp.Message), errs.ErrUpstreamUnavailable)
	}

	return &shared.ChargeAuthorization{
		Reference:        resp.Data.Reference,
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
	}, nil
}

type paystackVerifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		ID        int64  `json:"id"`
		PaidAt    string `json:"paid_at"`
	} `json:"data"`
	Message string `json:"message"`
}

func (g *PaystackGateway) VerifyCharge(ctx context.Context, ref string) (*shared.ChargeStatus, error) {
	raw, err := g.get(ctx, "/transaction/verify/"+ref)
	if err != nil {
		return nil, err
	}

	var resp paystackVerifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "paystack verify response malformed"), errs.ErrUpstreamUnavailable)
	}
	if !resp.Status {
		return nil, errs.Mark(errs.Newf("paystack verify rejected: %s", resp.Message), errs.ErrUpstreamUnavailable)
	}

	paidAt, _ := time.Parse(time.RFC3339, resp.Data.PaidAt)
	return &shared.ChargeStatus{
		Succeeded:  resp.Data.Status == "success",
		GatewayRef: fmt.Sprintf("%d", resp.Data.ID),
		PaidAt:     paidAt,
		Raw:        raw,
	}, nil
}

func (g *PaystackGateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return errs.Mark(err, errs.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return errs.Mark(errs.Newf("paystack returned %d", resp.StatusCode), errs.ErrUpstreamUnavailable)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *PaystackGateway) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errs.Mark(errs.Newf("paystack returned %d", resp.StatusCode), errs.ErrUpstreamUnavailable)
	}
	return io.ReadAll(resp.Body)
}
