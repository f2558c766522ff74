// Package registry owns the chaincert map of a wallet: deposit, one-way
// revocation with a two-factor issuer match, and enumeration.
package registry

import (
	"context"
	"time"

	"chaincerts/internal/wallet/acl"
	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/models"
)

// RevokePolicy selects how revoking an already-revoked chaincert behaves.
type RevokePolicy string

const (
	// RevokeIdempotent re-asserts revoked=true and succeeds.
	RevokeIdempotent RevokePolicy = "idempotent"
	// RevokeStrict rejects the second revocation with AlreadyRevoked.
	RevokeStrict RevokePolicy = "strict"
)

// ParseRevokePolicy accepts the configured policy name.
func ParseRevokePolicy(s string) (RevokePolicy, bool) {
	switch RevokePolicy(s) {
	case RevokeIdempotent, RevokeStrict:
		return RevokePolicy(s), true
	default:
		return "", false
	}
}

// Registry reads and writes the chaincert slot. Deposits are authorized
// against the ACL; revocations against the stored issuer fields.
type Registry struct {
	acl    *acl.Manager
	policy RevokePolicy
}

func New(aclManager *acl.Manager, policy RevokePolicy) *Registry {
	if policy == "" {
		policy = RevokeIdempotent
	}
	return &Registry{acl: aclManager, policy: policy}
}

func chaincertsKey(wallet models.WalletID) kvstore.Key {
	return kvstore.KeyFor(wallet, kvstore.SlotChaincerts)
}

// Deposit inserts a new, unrevoked chaincert. The map slot is created on
// first deposit.
func (r *Registry) Deposit(ctx context.Context, store kvstore.Store, wallet models.WalletID, req models.DepositRequest) (models.Chaincert, error) {
	if err := r.acl.Require(ctx, store, wallet, req.OrgID); err != nil {
		return models.Chaincert{}, err
	}

	certs, found, err := kvstore.Read[models.Chaincerts](ctx, store, chaincertsKey(wallet))
	if err != nil {
		return models.Chaincert{}, err
	}
	if !found || certs == nil {
		certs = models.Chaincerts{}
	}
	if _, exists := certs[req.ChaincertID]; exists {
		return models.Chaincert{}, models.NewError(models.ErrChaincertAlreadyInWallet)
	}

	cert := models.Chaincert{
		ID:               req.ChaincertID,
		ContentID:        req.ContentID,
		Distributor:      req.Distributor,
		OrgID:            req.OrgID,
		DistributionDate: req.DistributionDate,
		ExpirationDate:   req.ExpirationDate,
		Revoked:          false,
	}
	certs[cert.ID] = cert

	if err := kvstore.Write(ctx, store, chaincertsKey(wallet), certs); err != nil {
		return models.Chaincert{}, err
	}
	return cert, nil
}

// Revoke flips revoked to true when both the distributor and the org id
// match the stored record. The boolean reports whether state changed; it is
// false when an idempotent revoke hits an already-revoked chaincert.
func (r *Registry) Revoke(ctx context.Context, store kvstore.Store, wallet models.WalletID, req models.RevokeRequest) (models.Chaincert, bool, error) {
	certs, found, err := kvstore.Read[models.Chaincerts](ctx, store, chaincertsKey(wallet))
	if err != nil {
		return models.Chaincert{}, false, err
	}
	if !found {
		return models.Chaincert{}, false, models.NewError(models.ErrNoChaincerts)
	}
	cert, ok := certs[req.ChaincertID]
	if !ok {
		return models.Chaincert{}, false, models.NewError(models.ErrChaincertNotFound)
	}
	if !cert.IssuedBy(req.Distributor, req.OrgID) {
		return models.Chaincert{}, false, models.NewError(models.ErrNotAuthorized)
	}

	if cert.Revoked {
		if r.policy == RevokeStrict {
			return models.Chaincert{}, false, models.NewError(models.ErrAlreadyRevoked)
		}
		return cert, false, nil
	}

	cert.Revoked = true
	certs[cert.ID] = cert
	if err := kvstore.Write(ctx, store, chaincertsKey(wallet), certs); err != nil {
		return models.Chaincert{}, false, err
	}
	return cert, true, nil
}

// Get returns one chaincert.
func (r *Registry) Get(ctx context.Context, store kvstore.Store, wallet models.WalletID, id models.ChaincertID) (models.Chaincert, error) {
	certs, found, err := kvstore.Read[models.Chaincerts](ctx, store, chaincertsKey(wallet))
	if err != nil {
		return models.Chaincert{}, err
	}
	if !found {
		return models.Chaincert{}, models.NewError(models.ErrNoChaincerts)
	}
	cert, ok := certs[id]
	if !ok {
		return models.Chaincert{}, models.NewError(models.ErrChaincertNotFound)
	}
	return cert, nil
}

// List returns every chaincert ordered by id, narrowed by filter. Status
// filtering is evaluated at now.
func (r *Registry) List(ctx context.Context, store kvstore.Store, wallet models.WalletID, filter models.ListFilter, now time.Time) ([]models.Chaincert, error) {
	certs, found, err := kvstore.Read[models.Chaincerts](ctx, store, chaincertsKey(wallet))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewError(models.ErrNoChaincerts)
	}

	all := certs.Values()
	if filter.Status == nil {
		return all, nil
	}
	out := make([]models.Chaincert, 0, len(all))
	for _, c := range all {
		if c.ComputeStatus(now) == *filter.Status {
			out = append(out, c)
		}
	}
	return out, nil
}
