package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event records one committed wallet mutation. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	WalletID  string    `json:"wallet_id"`
	Action    Action    `json:"action"`
	// Actor is the authenticated caller, empty when the call was unauthenticated.
	Actor string `json:"actor,omitempty"`
	// Subject is the owner address or chaincert id the action touched.
	Subject   string `json:"subject,omitempty"`
	OrgID     string `json:"org_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Action string

const (
	ActionWalletInitialized   Action = "wallet_initialized"
	ActionOrganizationAdded   Action = "organization_added"
	ActionOrganizationRemoved Action = "organization_removed"
	ActionChaincertDeposited  Action = "chaincert_deposited"
	ActionChaincertRevoked    Action = "chaincert_revoked"
)
