package handler

import (
	"strings"

	dErrors "chaincerts/pkg/domain-errors"
	"chaincerts/pkg/validation"
)

type InitializeRequest struct {
	Owner string `json:"owner" validate:"required,identifier"`
}

func (r *InitializeRequest) Normalize() {
	r.Owner = strings.TrimSpace(r.Owner)
}

func (r *InitializeRequest) Validate() error {
	return validation.Validate(r)
}

type AddOrganizationRequest struct {
	OrgID string `json:"org_id" validate:"required,identifier"`
}

func (r *AddOrganizationRequest) Normalize() {
	r.OrgID = strings.TrimSpace(r.OrgID)
}

func (r *AddOrganizationRequest) Validate() error {
	return validation.Validate(r)
}

// DepositRequest deposits a chaincert. DistributionDate defaults to the
// request time; a missing ExpirationDate means the chaincert never expires.
type DepositRequest struct {
	ChaincertID      string  `json:"chaincert_id" validate:"required,identifier"`
	ContentID        string  `json:"content_id" validate:"required,notblank,max=256"`
	Distributor      string  `json:"distributor" validate:"required,identifier"`
	OrgID            string  `json:"org_id" validate:"required,identifier"`
	DistributionDate *uint64 `json:"distribution_date,omitempty"`
	ExpirationDate   *uint64 `json:"expiration_date,omitempty"`
}

func (r *DepositRequest) Normalize() {
	r.ChaincertID = strings.TrimSpace(r.ChaincertID)
	r.ContentID = strings.TrimSpace(r.ContentID)
	r.Distributor = strings.TrimSpace(r.Distributor)
	r.OrgID = strings.TrimSpace(r.OrgID)
}

func (r *DepositRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.DistributionDate != nil && r.ExpirationDate != nil && *r.ExpirationDate <= *r.DistributionDate {
		return dErrors.New(dErrors.CodeValidation, "expiration_date must be after distribution_date")
	}
	return nil
}

type RevokeRequest struct {
	Distributor string `json:"distributor" validate:"required,identifier"`
	OrgID       string `json:"org_id" validate:"required,identifier"`
}

func (r *RevokeRequest) Normalize() {
	r.Distributor = strings.TrimSpace(r.Distributor)
	r.OrgID = strings.TrimSpace(r.OrgID)
}

func (r *RevokeRequest) Validate() error {
	return validation.Validate(r)
}
