package models

import (
	"errors"
	"fmt"

	dErrors "chaincerts/pkg/domain-errors"
)

// ErrorKind is the flat numeric error enumeration surfaced to wallet callers.
// Values are stable: clients match on them, so never renumber.
type ErrorKind int

const (
	ErrAlreadyInitialized       ErrorKind = 1
	ErrNotAuthorized            ErrorKind = 2
	ErrOrganizationAlreadyAdded ErrorKind = 4
	ErrNoOrganizations          ErrorKind = 6
	ErrOrganizationNotFound     ErrorKind = 8
	ErrChaincertAlreadyInWallet ErrorKind = 9
	ErrChaincertNotFound        ErrorKind = 10
	ErrNoChaincerts             ErrorKind = 11
	ErrAlreadyRevoked           ErrorKind = 12
	ErrNotInitialized           ErrorKind = 13
	ErrNotOwner                 ErrorKind = 14
)

var kindMessages = map[ErrorKind]string{
	ErrAlreadyInitialized:       "wallet already initialized",
	ErrNotAuthorized:            "not authorized",
	ErrOrganizationAlreadyAdded: "organization already added",
	ErrNoOrganizations:          "no organizations in access control list",
	ErrOrganizationNotFound:     "organization not found",
	ErrChaincertAlreadyInWallet: "chaincert already in wallet",
	ErrChaincertNotFound:        "chaincert not found",
	ErrNoChaincerts:             "no chaincerts in wallet",
	ErrAlreadyRevoked:           "chaincert already revoked",
	ErrNotInitialized:           "wallet not initialized",
	ErrNotOwner:                 "caller is not the wallet owner",
}

var kindNames = map[ErrorKind]string{
	ErrAlreadyInitialized:       "AlreadyInitialized",
	ErrNotAuthorized:            "NotAuthorized",
	ErrOrganizationAlreadyAdded: "OrganizationAlreadyAdded",
	ErrNoOrganizations:          "NoOrganizations",
	ErrOrganizationNotFound:     "OrganizationNotFound",
	ErrChaincertAlreadyInWallet: "ChaincertAlreadyInWallet",
	ErrChaincertNotFound:        "ChaincertNotFound",
	ErrNoChaincerts:             "NoChaincerts",
	ErrAlreadyRevoked:           "AlreadyRevoked",
	ErrNotInitialized:           "NotInitialized",
	ErrNotOwner:                 "NotOwner",
}

var kindCodes = map[ErrorKind]dErrors.Code{
	ErrAlreadyInitialized:       dErrors.CodeConflict,
	ErrNotAuthorized:            dErrors.CodeForbidden,
	ErrOrganizationAlreadyAdded: dErrors.CodeConflict,
	ErrNoOrganizations:          dErrors.CodePrecondition,
	ErrOrganizationNotFound:     dErrors.CodeNotFound,
	ErrChaincertAlreadyInWallet: dErrors.CodeConflict,
	ErrChaincertNotFound:        dErrors.CodeNotFound,
	ErrNoChaincerts:             dErrors.CodeNotFound,
	ErrAlreadyRevoked:           dErrors.CodeConflict,
	ErrNotInitialized:           dErrors.CodePrecondition,
	ErrNotOwner:                 dErrors.CodeForbidden,
}

// Error implements error so a kind can sit at the bottom of an error chain
// and be matched with errors.Is(err, models.ErrNoChaincerts).
func (k ErrorKind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("wallet error %d", int(k))
}

// ErrorCode returns the numeric value exposed on the wire.
func (k ErrorKind) ErrorCode() int {
	return int(k)
}

// Name returns the stable identifier used in logs and metric labels.
func (k ErrorKind) Name() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown%d", int(k))
}

// Code returns the transport-neutral domain code for the kind.
func (k ErrorKind) Code() dErrors.Code {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return dErrors.CodeInternal
}

// NewError wraps a kind in a domain error carrying its code and message.
func NewError(kind ErrorKind) error {
	return &dErrors.Error{Code: kind.Code(), Message: kind.Error(), Err: kind}
}

// KindOf extracts the wallet error kind from err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind, true
	}
	return 0, false
}
