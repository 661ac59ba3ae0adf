package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shortstay/internal/pkg/clock"
	"shortstay/internal/usecase/shared"
)

// SandboxGateway stands in for Paystack in environments without a secret
// key. Verification always succeeds; it is selected only by configuration at
// bootstrap and is never a fallback for a failed production verification.
type SandboxGateway struct {
	clock  clock.Clock
	logger *slog.Logger
}

func NewSandboxGateway(clk clock.Clock, logger *slog.Logger) *SandboxGateway {
	return &SandboxGateway{clock: clk, logger: logger}
}

func (g *SandboxGateway) Name() string {
	return "sandbox"
}

func (g *SandboxGateway) InitializeCharge(_ context.Context, ref string, amount int64, email string) (*shared.ChargeAuthorization, error) {
	g.logger.Info("sandbox charge initialized", "reference", ref, "amount", amount, "email", email)
	return shared.SandboxAuthorization(ref), nil
}

func (g *SandboxGateway) VerifyCharge(_ context.Context, ref string) (*shared.ChargeStatus, error) {
	now := g.clock.Now()
	raw, _ := json.Marshal(map[string]any{
		"sandbox":   true,
		"reference": ref,
		"status":    "success",
		"paid_at":   now.Format(time.RFC3339),
	})
	return &shared.ChargeStatus{
		Succeeded:  true,
		GatewayRef: "sandbox-" + ref,
		PaidAt:     now,
		Raw:        raw,
	}, nil
}
