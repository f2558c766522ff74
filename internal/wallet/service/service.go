// Package service is the wallet facade: it runs the ACL manager and the
// credential registry inside one store transaction per call and funnels
// every failure into the wallet error taxonomy.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"chaincerts/internal/audit"
	"chaincerts/internal/platform/tracer"
	"chaincerts/internal/sentinel"
	"chaincerts/internal/wallet/acl"
	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/metrics"
	"chaincerts/internal/wallet/models"
	"chaincerts/internal/wallet/registry"
	dErrors "chaincerts/pkg/domain-errors"
	"chaincerts/pkg/requestcontext"
)

// Operation names used for spans, metrics, and logs.
const (
	opInitialize         = "initialize"
	opOwner              = "owner"
	opAddOrganization    = "add_organization"
	opRemoveOrganization = "remove_organization"
	opListOrganizations  = "list_organizations"
	opIsAuthorized       = "is_authorized"
	opDeposit            = "deposit_chaincert"
	opRevoke             = "revoke_chaincert"
	opListChaincerts     = "list_chaincerts"
	opGetChaincert       = "get_chaincert"
	opVerifyChaincert    = "verify_chaincert"
)

type Service struct {
	tx       kvstore.Tx
	acl      *acl.Manager
	registry *registry.Registry

	auditor *audit.Publisher
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	logger  *slog.Logger

	revokePolicy       RevokePolicy
	ownerGate          bool
	callerVerification bool
}

// New builds a wallet service over tx. Without options it reproduces the bare
// contract: idempotent revoke, no owner gate, no caller verification.
func New(tx kvstore.Tx, opts ...Option) *Service {
	svc := &Service{
		tx:           tx,
		acl:          acl.New(),
		tracer:       tracer.NewNoop(),
		logger:       slog.Default(),
		revokePolicy: RevokeIdempotent,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.registry = registry.New(svc.acl, svc.revokePolicy)
	return svc
}

// RevokePolicy reports the configured revoke policy.
func (s *Service) RevokePolicy() RevokePolicy {
	return s.revokePolicy
}

func (s *Service) Initialize(ctx context.Context, wallet models.WalletID, owner models.Address) error {
	if err := requireWallet(wallet); err != nil {
		return err
	}
	if owner.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "owner is required")
	}
	if s.callerVerification {
		if err := requireCaller(ctx, owner); err != nil {
			return err
		}
	}

	err := s.run(ctx, opInitialize, wallet, func(ctx context.Context, store kvstore.Store) error {
		return s.acl.Initialize(ctx, store, wallet, owner)
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, audit.Event{WalletID: wallet.String(), Action: audit.ActionWalletInitialized, Subject: owner.String()})
	return nil
}

// Owner returns the owner recorded at initialization.
func (s *Service) Owner(ctx context.Context, wallet models.WalletID) (models.Address, error) {
	if err := requireWallet(wallet); err != nil {
		return "", err
	}
	var owner models.Address
	err := s.run(ctx, opOwner, wallet, func(ctx context.Context, store kvstore.Store) error {
		o, found, err := s.acl.Owner(ctx, store, wallet)
		if err != nil {
			return err
		}
		if !found {
			return models.NewError(models.ErrNotInitialized)
		}
		owner = o
		return nil
	})
	return owner, err
}

// AddOrganization returns the access control list as committed by the same
// transaction that added org.
func (s *Service) AddOrganization(ctx context.Context, wallet models.WalletID, org models.OrganizationID) ([]models.OrganizationID, error) {
	if err := requireWallet(wallet); err != nil {
		return nil, err
	}
	if org.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "org_id is required")
	}

	var orgs []models.OrganizationID
	err := s.run(ctx, opAddOrganization, wallet, func(ctx context.Context, store kvstore.Store) error {
		if err := s.checkOwner(ctx, store, wallet); err != nil {
			return err
		}
		list, err := s.acl.Add(ctx, store, wallet, org)
		if err != nil {
			return err
		}
		orgs = list.List()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OrganizationsAdded.Inc()
	}
	s.emitAudit(ctx, audit.Event{WalletID: wallet.String(), Action: audit.ActionOrganizationAdded, OrgID: org.String()})
	return orgs, nil
}

func (s *Service) RemoveOrganization(ctx context.Context, wallet models.WalletID, org models.OrganizationID) error {
	if err := requireWallet(wallet); err != nil {
		return err
	}
	if org.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "org_id is required")
	}

	err := s.run(ctx, opRemoveOrganization, wallet, func(ctx context.Context, store kvstore.Store) error {
		if err := s.checkOwner(ctx, store, wallet); err != nil {
			return err
		}
		_, err := s.acl.Remove(ctx, store, wallet, org)
		return err
	})
	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.OrganizationsRemoved.Inc()
	}
	s.emitAudit(ctx, audit.Event{WalletID: wallet.String(), Action: audit.ActionOrganizationRemoved, OrgID: org.String()})
	return nil
}

func (s *Service) ListOrganizations(ctx context.Context, wallet models.WalletID) ([]models.OrganizationID, error) {
	if err := requireWallet(wallet); err != nil {
		return nil, err
	}
	var orgs []models.OrganizationID
	err := s.run(ctx, opListOrganizations, wallet, func(ctx context.Context, store kvstore.Store) error {
		var err error
		orgs, err = s.acl.List(ctx, store, wallet)
		return err
	})
	return orgs, err
}

// IsAuthorized is the non-fatal membership check; an absent list reports false.
func (s *Service) IsAuthorized(ctx context.Context, wallet models.WalletID, org models.OrganizationID) (bool, error) {
	if err := requireWallet(wallet); err != nil {
		return false, err
	}
	var ok bool
	err := s.run(ctx, opIsAuthorized, wallet, func(ctx context.Context, store kvstore.Store) error {
		var err error
		ok, err = s.acl.IsAuthorized(ctx, store, wallet, org)
		return err
	})
	return ok, err
}

func (s *Service) DepositChaincert(ctx context.Context, wallet models.WalletID, req models.DepositRequest) (models.Chaincert, error) {
	if err := requireWallet(wallet); err != nil {
		return models.Chaincert{}, err
	}
	if err := validateDeposit(req); err != nil {
		return models.Chaincert{}, err
	}
	if s.callerVerification {
		if err := requireCaller(ctx, req.Distributor); err != nil {
			return models.Chaincert{}, err
		}
	}

	var cert models.Chaincert
	err := s.run(ctx, opDeposit, wallet, func(ctx context.Context, store kvstore.Store) error {
		if err := s.checkInitialized(ctx, store, wallet); err != nil {
			return err
		}
		var err error
		cert, err = s.registry.Deposit(ctx, store, wallet, req)
		return err
	})
	if err != nil {
		return models.Chaincert{}, err
	}
	if s.metrics != nil {
		s.metrics.ChaincertsDeposited.Inc()
	}
	s.emitAudit(ctx, audit.Event{
		WalletID: wallet.String(),
		Action:   audit.ActionChaincertDeposited,
		Subject:  cert.ID.String(),
		OrgID:    cert.OrgID.String(),
	})
	return cert, nil
}

// RevokeChaincert moves a chaincert to revoked. Under RevokeIdempotent a
// repeat revocation succeeds without emitting a second audit event.
func (s *Service) RevokeChaincert(ctx context.Context, wallet models.WalletID, req models.RevokeRequest) (models.Chaincert, error) {
	if err := requireWallet(wallet); err != nil {
		return models.Chaincert{}, err
	}
	if req.ChaincertID.IsNil() || req.Distributor.IsNil() || req.OrgID.IsNil() {
		return models.Chaincert{}, dErrors.New(dErrors.CodeBadRequest, "chaincert_id, distributor and org_id are required")
	}
	if s.callerVerification {
		if err := requireCaller(ctx, req.Distributor); err != nil {
			return models.Chaincert{}, err
		}
	}

	var (
		cert    models.Chaincert
		changed bool
	)
	err := s.run(ctx, opRevoke, wallet, func(ctx context.Context, store kvstore.Store) error {
		if err := s.checkInitialized(ctx, store, wallet); err != nil {
			return err
		}
		var err error
		cert, changed, err = s.registry.Revoke(ctx, store, wallet, req)
		return err
	})
	if err != nil {
		return models.Chaincert{}, err
	}
	if !changed {
		return cert, nil
	}
	if s.metrics != nil {
		s.metrics.ChaincertsRevoked.Inc()
	}
	s.emitAudit(ctx, audit.Event{
		WalletID: wallet.String(),
		Action:   audit.ActionChaincertRevoked,
		Subject:  cert.ID.String(),
		OrgID:    cert.OrgID.String(),
	})
	return cert, nil
}

// ListChaincerts returns the wallet's chaincerts ordered by id. The status
// filter is evaluated at the request time.
func (s *Service) ListChaincerts(ctx context.Context, wallet models.WalletID, filter models.ListFilter) ([]models.Chaincert, error) {
	if err := requireWallet(wallet); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	var certs []models.Chaincert
	err := s.run(ctx, opListChaincerts, wallet, func(ctx context.Context, store kvstore.Store) error {
		var err error
		certs, err = s.registry.List(ctx, store, wallet, filter, now)
		return err
	})
	return certs, err
}

func (s *Service) GetChaincert(ctx context.Context, wallet models.WalletID, id models.ChaincertID) (models.Chaincert, error) {
	if err := requireWallet(wallet); err != nil {
		return models.Chaincert{}, err
	}
	var cert models.Chaincert
	err := s.run(ctx, opGetChaincert, wallet, func(ctx context.Context, store kvstore.Store) error {
		var err error
		cert, err = s.registry.Get(ctx, store, wallet, id)
		return err
	})
	return cert, err
}

// VerifyChaincert reports whether a chaincert is active at the request time.
func (s *Service) VerifyChaincert(ctx context.Context, wallet models.WalletID, id models.ChaincertID) (models.VerifyResult, error) {
	if err := requireWallet(wallet); err != nil {
		return models.VerifyResult{}, err
	}
	now := requestcontext.Now(ctx)
	var result models.VerifyResult
	err := s.run(ctx, opVerifyChaincert, wallet, func(ctx context.Context, store kvstore.Store) error {
		cert, err := s.registry.Get(ctx, store, wallet, id)
		if err != nil {
			return err
		}
		status := cert.ComputeStatus(now)
		result = models.VerifyResult{Valid: status == models.StatusActive, Status: status, Chaincert: cert}
		return nil
	})
	return result, err
}

// AuditTrail lists the committed mutations recorded for wallet.
func (s *Service) AuditTrail(ctx context.Context, wallet models.WalletID) ([]audit.Event, error) {
	if err := requireWallet(wallet); err != nil {
		return nil, err
	}
	if s.auditor == nil {
		return []audit.Event{}, nil
	}
	events, err := s.auditor.List(ctx, wallet.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events")
	}
	return events, nil
}

// run executes fn in one wallet transaction and records the span, metrics,
// and log line for the outcome.
func (s *Service) run(ctx context.Context, op string, wallet models.WalletID, fn func(ctx context.Context, store kvstore.Store) error) error {
	ctx, span := s.tracer.Start(ctx, "wallet."+op, tracer.String(tracer.AttrWalletID, wallet.String()))
	start := time.Now()

	err := translate(s.tx.RunInTx(ctx, wallet, fn))

	outcome := "success"
	if kind, ok := models.KindOf(err); ok {
		outcome = "rejected"
		span.SetAttributes(tracer.Int64(tracer.AttrErrorKind, int64(kind)))
		if s.metrics != nil {
			s.metrics.IncrementRejection(op, kind.Name())
		}
		s.logger.InfoContext(ctx, "wallet operation rejected",
			"operation", op,
			"wallet_id", wallet,
			"error_kind", kind.Name(),
			"request_id", requestcontext.RequestID(ctx),
		)
	} else if err != nil {
		outcome = "error"
		s.logger.ErrorContext(ctx, "wallet operation failed",
			"operation", op,
			"wallet_id", wallet,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, outcome, start)
	}
	span.End(err)
	return err
}

// translate maps store and transaction failures to domain errors once.
// Errors that already carry a domain code pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, sentinel.ErrTxConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "concurrent wallet update, retry the request")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "wallet operation timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "wallet store failure")
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Actor = requestcontext.Caller(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"wallet_id", event.WalletID,
			"error", err,
		)
	}
}
