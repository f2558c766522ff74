package models

import (
	"cmp"
	"slices"
	"time"
)

// Status is the computed lifecycle state of a chaincert at a point in time.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// ParseStatus validates a status filter value.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusExpired, StatusRevoked:
		return Status(s), true
	default:
		return "", false
	}
}

// Chaincert is a credential record held in a wallet. Everything except
// Revoked is fixed at deposit; Revoked moves from false to true once.
type Chaincert struct {
	ID               ChaincertID    `json:"chaincert_id"`
	ContentID        ContentID      `json:"content_id"`
	Distributor      Address        `json:"distributor"`
	OrgID            OrganizationID `json:"org_id"`
	DistributionDate uint64         `json:"distribution_date"`
	// ExpirationDate is nil for chaincerts that never expire.
	ExpirationDate *uint64 `json:"expiration_date,omitempty"`
	Revoked        bool    `json:"revoked"`
}

// IssuedBy reports whether both the distributor and the organization match.
// Revocation requires the two-factor match; one matching field is not enough.
func (c Chaincert) IssuedBy(distributor Address, org OrganizationID) bool {
	return c.Distributor == distributor && c.OrgID == org
}

// ComputeStatus derives the status at now. Revocation wins over expiry.
func (c Chaincert) ComputeStatus(now time.Time) Status {
	if c.Revoked {
		return StatusRevoked
	}
	if c.ExpirationDate != nil && now.Unix() >= 0 && uint64(now.Unix()) >= *c.ExpirationDate {
		return StatusExpired
	}
	return StatusActive
}

// Chaincerts is the wallet's credential map keyed by chaincert id.
type Chaincerts map[ChaincertID]Chaincert

// Values returns the records ordered by id so listings are deterministic.
func (m Chaincerts) Values() []Chaincert {
	out := make([]Chaincert, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Chaincert) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// DepositRequest carries the fields of a new chaincert.
type DepositRequest struct {
	ChaincertID      ChaincertID
	ContentID        ContentID
	Distributor      Address
	OrgID            OrganizationID
	DistributionDate uint64
	ExpirationDate   *uint64
}

// RevokeRequest carries the two-factor issuer match for a revocation.
type RevokeRequest struct {
	ChaincertID ChaincertID
	Distributor Address
	OrgID       OrganizationID
}

// ListFilter narrows a chaincert listing. A nil Status returns everything.
type ListFilter struct {
	Status *Status
}

// VerifyResult reports whether a chaincert is currently valid.
type VerifyResult struct {
	Valid     bool
	Status    Status
	Chaincert Chaincert
}
