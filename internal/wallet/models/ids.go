package models

import (
	"strings"

	dErrors "chaincerts/pkg/domain-errors"
	"chaincerts/pkg/validation"
)

// Distinct identifier types so an organization id is never passed where a
// distributor address is expected. All are opaque strings at this layer.
type (
	// WalletID addresses one wallet aggregate (one owner, one ACL, one chaincert map).
	WalletID string
	// Address is a principal identity: the wallet owner or a chaincert distributor.
	Address string
	// OrganizationID identifies an issuing organization in the ACL.
	OrganizationID string
	// ChaincertID is the caller-supplied key of a chaincert within a wallet.
	ChaincertID string
	// ContentID is a content-addressed reference to off-registry credential material.
	ContentID string
)

func ParseWalletID(s string) (WalletID, error) {
	v, err := parseIdentifier(s, "wallet_id")
	return WalletID(v), err
}

func ParseAddress(s string) (Address, error) {
	v, err := parseIdentifier(s, "address")
	return Address(v), err
}

func ParseOrganizationID(s string) (OrganizationID, error) {
	v, err := parseIdentifier(s, "org_id")
	return OrganizationID(v), err
}

func ParseChaincertID(s string) (ChaincertID, error) {
	v, err := parseIdentifier(s, "chaincert_id")
	return ChaincertID(v), err
}

// ParseContentID accepts any non-blank reference up to MaxContentIDLength;
// content ids are produced by external storage and are not restricted further.
func ParseContentID(s string) (ContentID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "content_id cannot be empty")
	}
	if len(trimmed) > validation.MaxContentIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "content_id is too long")
	}
	return ContentID(trimmed), nil
}

func (id WalletID) String() string       { return string(id) }
func (id Address) String() string        { return string(id) }
func (id OrganizationID) String() string { return string(id) }
func (id ChaincertID) String() string    { return string(id) }
func (id ContentID) String() string      { return string(id) }

func (id WalletID) IsNil() bool       { return id == "" }
func (id Address) IsNil() bool        { return id == "" }
func (id OrganizationID) IsNil() bool { return id == "" }
func (id ChaincertID) IsNil() bool    { return id == "" }
func (id ContentID) IsNil() bool      { return id == "" }

func parseIdentifier(s, label string) (string, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	if !validation.IsIdentifier(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return s, nil
}
