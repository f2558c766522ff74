package service

import (
	"context"

	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/models"
	dErrors "chaincerts/pkg/domain-errors"
	"chaincerts/pkg/requestcontext"
)

func requireWallet(wallet models.WalletID) error {
	if wallet.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "wallet_id is required")
	}
	return nil
}

func validateDeposit(req models.DepositRequest) error {
	if req.ChaincertID.IsNil() || req.ContentID.IsNil() || req.Distributor.IsNil() || req.OrgID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "chaincert_id, content_id, distributor and org_id are required")
	}
	return nil
}

// requireCaller checks that the authenticated caller is principal.
func requireCaller(ctx context.Context, principal models.Address) error {
	caller := models.Address(requestcontext.Caller(ctx))
	if caller.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	if caller != principal {
		return models.NewError(models.ErrNotAuthorized)
	}
	return nil
}

// checkInitialized enforces that mutations only touch initialized wallets
// when the owner gate is on.
func (s *Service) checkInitialized(ctx context.Context, store kvstore.Store, wallet models.WalletID) error {
	if !s.ownerGate {
		return nil
	}
	_, found, err := s.acl.Owner(ctx, store, wallet)
	if err != nil {
		return err
	}
	if !found {
		return models.NewError(models.ErrNotInitialized)
	}
	return nil
}

// checkOwner enforces caller == owner for ACL mutations when the owner gate is on.
func (s *Service) checkOwner(ctx context.Context, store kvstore.Store, wallet models.WalletID) error {
	if !s.ownerGate {
		return nil
	}
	owner, found, err := s.acl.Owner(ctx, store, wallet)
	if err != nil {
		return err
	}
	if !found {
		return models.NewError(models.ErrNotInitialized)
	}
	caller := models.Address(requestcontext.Caller(ctx))
	if caller.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	if caller != owner {
		return models.NewError(models.ErrNotOwner)
	}
	return nil
}
