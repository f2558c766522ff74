package handler

import (
	"time"

	"chaincerts/internal/audit"
	"chaincerts/internal/wallet/models"
)

type OwnerResponse struct {
	WalletID string `json:"wallet_id"`
	Owner    string `json:"owner"`
}

type OrganizationsResponse struct {
	WalletID      string   `json:"wallet_id"`
	Organizations []string `json:"organizations"`
}

type ChaincertResponse struct {
	ChaincertID      string  `json:"chaincert_id"`
	ContentID        string  `json:"content_id"`
	Distributor      string  `json:"distributor"`
	OrgID            string  `json:"org_id"`
	DistributionDate uint64  `json:"distribution_date"`
	ExpirationDate   *uint64 `json:"expiration_date,omitempty"`
	Revoked          bool    `json:"revoked"`
	Status           string  `json:"status"`
}

type ChaincertsResponse struct {
	WalletID   string              `json:"wallet_id"`
	Chaincerts []ChaincertResponse `json:"chaincerts"`
}

type VerifyResponse struct {
	Valid     bool              `json:"valid"`
	Status    string            `json:"status"`
	Chaincert ChaincertResponse `json:"chaincert"`
}

type EventResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	OrgID     string    `json:"org_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type EventsResponse struct {
	WalletID string          `json:"wallet_id"`
	Events   []EventResponse `json:"events"`
}

func toChaincertResponse(c models.Chaincert, now time.Time) ChaincertResponse {
	return ChaincertResponse{
		ChaincertID:      c.ID.String(),
		ContentID:        c.ContentID.String(),
		Distributor:      c.Distributor.String(),
		OrgID:            c.OrgID.String(),
		DistributionDate: c.DistributionDate,
		ExpirationDate:   c.ExpirationDate,
		Revoked:          c.Revoked,
		Status:           string(c.ComputeStatus(now)),
	}
}

func toOrganizationsResponse(wallet models.WalletID, orgs []models.OrganizationID) OrganizationsResponse {
	out := make([]string, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, o.String())
	}
	return OrganizationsResponse{WalletID: wallet.String(), Organizations: out}
}

func toEventResponses(events []audit.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			Actor:     e.Actor,
			Subject:   e.Subject,
			OrgID:     e.OrgID,
			RequestID: e.RequestID,
			Timestamp: e.Timestamp,
		})
	}
	return out
}
