package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PropertyCatalog is the read-only slice of the property service this core
// consumes for pricing and guest-count validation.
type PropertyCatalog interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
}

// ChargeAuthorization is the redirect handle returned to the payer.
type ChargeAuthorization struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
	Sandbox          bool
}

// SandboxAuthorization builds a charge handle that skips the real gateway.
// Callers fall back to it when the gateway cannot be reached so the booking
// flow keeps moving; verification stays gateway-authoritative.
func SandboxAuthorization(ref string) *ChargeAuthorization {
	return &ChargeAuthorization{
		Reference:        ref,
		AuthorizationURL: "https://sandbox.invalid/pay/" + ref,
		AccessCode:       "sandbox_" + ref,
		Sandbox:          true,
	}
}

// ChargeStatus is the gateway's authoritative view of a charge.
type ChargeStatus struct {
	Succeeded  bool
	GatewayRef string
	PaidAt     time.Time
	Raw        json.RawMessage
}

// PaymentGateway is the external payment collaborator. Implementations must
// never be called while holding database locks; round-trips are slow and can
// fail, and the callers are written to tolerate both.
type PaymentGateway interface {
	Name() string
	InitializeCharge(ctx context.Context, ref string, amount int64, email string) (*ChargeAuthorization, error)
	VerifyCharge(ctx context.Context, ref string) (*ChargeStatus, error)
}

// NotificationDispatcher is fire-and-forget: failures are logged by the
// implementation and never propagate into booking state.
type NotificationDispatcher interface {
	Notify(ctx context.Context, userID uuid.UUID, template string, payload map[string]any)
}
