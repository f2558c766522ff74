// Package acl manages the owner slot and the set of organizations allowed
// to deposit chaincerts into a wallet.
package acl

import (
	"context"

	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/models"
)

// Manager reads and writes the owner and ACL slots of a wallet. It holds no
// state; every call works on the store handed in by the enclosing transaction.
type Manager struct{}

func New() *Manager {
	return &Manager{}
}

// Initialize records the wallet owner. The owner is set once and never changed.
func (m *Manager) Initialize(ctx context.Context, store kvstore.Store, wallet models.WalletID, owner models.Address) error {
	key := kvstore.KeyFor(wallet, kvstore.SlotOwner)
	exists, err := store.Has(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return models.NewError(models.ErrAlreadyInitialized)
	}
	return kvstore.Write(ctx, store, key, owner)
}

// Owner returns the wallet owner. The boolean is false for uninitialized wallets.
func (m *Manager) Owner(ctx context.Context, store kvstore.Store, wallet models.WalletID) (models.Address, bool, error) {
	return kvstore.Read[models.Address](ctx, store, kvstore.KeyFor(wallet, kvstore.SlotOwner))
}

// Add inserts org, creating the list on first use.
func (m *Manager) Add(ctx context.Context, store kvstore.Store, wallet models.WalletID, org models.OrganizationID) (models.AccessControlList, error) {
	key := kvstore.KeyFor(wallet, kvstore.SlotAccessControlList)
	current, found, err := kvstore.Read[models.AccessControlList](ctx, store, key)
	if err != nil {
		return models.AccessControlList{}, err
	}

	var updated models.AccessControlList
	switch {
	case !found:
		updated = models.NewAccessControlList(org)
	case current.Contains(org):
		return models.AccessControlList{}, models.NewError(models.ErrOrganizationAlreadyAdded)
	default:
		updated = current.With(org)
	}

	if err := kvstore.Write(ctx, store, key, updated); err != nil {
		return models.AccessControlList{}, err
	}
	return updated, nil
}

// Remove deletes org and persists the remaining, possibly empty, list.
func (m *Manager) Remove(ctx context.Context, store kvstore.Store, wallet models.WalletID, org models.OrganizationID) (models.AccessControlList, error) {
	key := kvstore.KeyFor(wallet, kvstore.SlotAccessControlList)
	current, found, err := kvstore.Read[models.AccessControlList](ctx, store, key)
	if err != nil {
		return models.AccessControlList{}, err
	}
	if !found {
		return models.AccessControlList{}, models.NewError(models.ErrNoOrganizations)
	}
	if !current.Contains(org) {
		return models.AccessControlList{}, models.NewError(models.ErrOrganizationNotFound)
	}

	updated := current.Without(org)
	if err := kvstore.Write(ctx, store, key, updated); err != nil {
		return models.AccessControlList{}, err
	}
	return updated, nil
}

// List returns the members in insertion order. A list that was created and
// then emptied yields an empty slice, not NoOrganizations.
func (m *Manager) List(ctx context.Context, store kvstore.Store, wallet models.WalletID) ([]models.OrganizationID, error) {
	current, found, err := kvstore.Read[models.AccessControlList](ctx, store, kvstore.KeyFor(wallet, kvstore.SlotAccessControlList))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewError(models.ErrNoOrganizations)
	}
	return current.List(), nil
}

// IsAuthorized is the non-fatal membership check: a missing list reports false.
// Only store failures are returned as errors.
func (m *Manager) IsAuthorized(ctx context.Context, store kvstore.Store, wallet models.WalletID, org models.OrganizationID) (bool, error) {
	current, found, err := kvstore.Read[models.AccessControlList](ctx, store, kvstore.KeyFor(wallet, kvstore.SlotAccessControlList))
	if err != nil || !found {
		return false, err
	}
	return current.Contains(org), nil
}

// Require fails with NoOrganizations when the list was never created and
// NotAuthorized when org is not a member.
func (m *Manager) Require(ctx context.Context, store kvstore.Store, wallet models.WalletID, org models.OrganizationID) error {
	current, found, err := kvstore.Read[models.AccessControlList](ctx, store, kvstore.KeyFor(wallet, kvstore.SlotAccessControlList))
	if err != nil {
		return err
	}
	if !found {
		return models.NewError(models.ErrNoOrganizations)
	}
	if !current.Contains(org) {
		return models.NewError(models.ErrNotAuthorized)
	}
	return nil
}
