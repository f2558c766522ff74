package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chaincerts/internal/audit"
	"chaincerts/internal/wallet/models"
	dErrors "chaincerts/pkg/domain-errors"
	"chaincerts/pkg/platform/httputil"
	"chaincerts/pkg/platform/middleware/requesttime"
	"chaincerts/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

// Service is the wallet registry as seen by the HTTP layer.
type Service interface {
	Initialize(ctx context.Context, wallet models.WalletID, owner models.Address) error
	Owner(ctx context.Context, wallet models.WalletID) (models.Address, error)
	AddOrganization(ctx context.Context, wallet models.WalletID, org models.OrganizationID) ([]models.OrganizationID, error)
	RemoveOrganization(ctx context.Context, wallet models.WalletID, org models.OrganizationID) error
	ListOrganizations(ctx context.Context, wallet models.WalletID) ([]models.OrganizationID, error)
	DepositChaincert(ctx context.Context, wallet models.WalletID, req models.DepositRequest) (models.Chaincert, error)
	RevokeChaincert(ctx context.Context, wallet models.WalletID, req models.RevokeRequest) (models.Chaincert, error)
	ListChaincerts(ctx context.Context, wallet models.WalletID, filter models.ListFilter) ([]models.Chaincert, error)
	GetChaincert(ctx context.Context, wallet models.WalletID, id models.ChaincertID) (models.Chaincert, error)
	VerifyChaincert(ctx context.Context, wallet models.WalletID, id models.ChaincertID) (models.VerifyResult, error)
	AuditTrail(ctx context.Context, wallet models.WalletID) ([]audit.Event, error)
}

// Handler serves the wallet endpoints.
type Handler struct {
	logger   *slog.Logger
	wallet   Service
	mutating []func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithMutationMiddleware wraps only the routes that change wallet state.
func WithMutationMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.mutating = append(h.mutating, mw...)
	}
}

func New(wallet Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{logger: logger, wallet: wallet}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the wallet routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/wallets/{wallet_id}", func(r chi.Router) {
		r.Get("/owner", h.handleOwner)
		r.Get("/organizations", h.handleListOrganizations)
		r.Get("/chaincerts", h.handleListChaincerts)
		r.Get("/chaincerts/{chaincert_id}", h.handleGetChaincert)
		r.Get("/chaincerts/{chaincert_id}/verify", h.handleVerify)
		r.Get("/events", h.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(h.mutating...)
			r.Post("/initialize", h.handleInitialize)
			r.Post("/organizations", h.handleAddOrganization)
			r.Delete("/organizations/{org_id}", h.handleRemoveOrganization)
			r.Post("/chaincerts", h.handleDeposit)
			r.Post("/chaincerts/{chaincert_id}/revoke", h.handleRevoke)
		})
	})
}

func (h *Handler) handleInitialize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[InitializeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	owner := models.Address(req.Owner)
	if err := h.wallet.Initialize(ctx, wallet, owner); err != nil {
		h.fail(ctx, w, "failed to initialize wallet", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, OwnerResponse{WalletID: wallet.String(), Owner: owner.String()})
}

func (h *Handler) handleOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}

	owner, err := h.wallet.Owner(ctx, wallet)
	if err != nil {
		h.fail(ctx, w, "failed to read wallet owner", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, OwnerResponse{WalletID: wallet.String(), Owner: owner.String()})
}

func (h *Handler) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}

	orgs, err := h.wallet.ListOrganizations(ctx, wallet)
	if err != nil {
		h.fail(ctx, w, "failed to list organizations", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toOrganizationsResponse(wallet, orgs))
}

func (h *Handler) handleAddOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddOrganizationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	orgs, err := h.wallet.AddOrganization(ctx, wallet, models.OrganizationID(req.OrgID))
	if err != nil {
		h.fail(ctx, w, "failed to add organization", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toOrganizationsResponse(wallet, orgs))
}

func (h *Handler) handleRemoveOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	org, err := models.ParseOrganizationID(chi.URLParam(r, "org_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.wallet.RemoveOrganization(ctx, wallet, org); err != nil {
		h.fail(ctx, w, "failed to remove organization", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[DepositRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	distributed := requesttime.Unix(ctx)
	if req.DistributionDate != nil {
		distributed = *req.DistributionDate
	}

	cert, err := h.wallet.DepositChaincert(ctx, wallet, models.DepositRequest{
		ChaincertID:      models.ChaincertID(req.ChaincertID),
		ContentID:        models.ContentID(req.ContentID),
		Distributor:      models.Address(req.Distributor),
		OrgID:            models.OrganizationID(req.OrgID),
		DistributionDate: distributed,
		ExpirationDate:   req.ExpirationDate,
	})
	if err != nil {
		h.fail(ctx, w, "failed to deposit chaincert", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toChaincertResponse(cert, requestcontext.Now(ctx)))
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	id, ok := h.chaincertParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RevokeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	cert, err := h.wallet.RevokeChaincert(ctx, wallet, models.RevokeRequest{
		ChaincertID: id,
		Distributor: models.Address(req.Distributor),
		OrgID:       models.OrganizationID(req.OrgID),
	})
	if err != nil {
		h.fail(ctx, w, "failed to revoke chaincert", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toChaincertResponse(cert, requestcontext.Now(ctx)))
}

func (h *Handler) handleListChaincerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}

	var filter models.ListFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, valid := models.ParseStatus(raw)
		if !valid {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid status filter"))
			return
		}
		filter.Status = &status
	}

	certs, err := h.wallet.ListChaincerts(ctx, wallet, filter)
	if err != nil {
		h.fail(ctx, w, "failed to list chaincerts", err)
		return
	}

	now := requestcontext.Now(ctx)
	out := make([]ChaincertResponse, 0, len(certs))
	for _, c := range certs {
		out = append(out, toChaincertResponse(c, now))
	}
	httputil.WriteJSON(w, http.StatusOK, ChaincertsResponse{WalletID: wallet.String(), Chaincerts: out})
}

func (h *Handler) handleGetChaincert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	id, ok := h.chaincertParam(w, r)
	if !ok {
		return
	}

	cert, err := h.wallet.GetChaincert(ctx, wallet, id)
	if err != nil {
		h.fail(ctx, w, "failed to get chaincert", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toChaincertResponse(cert, requestcontext.Now(ctx)))
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}
	id, ok := h.chaincertParam(w, r)
	if !ok {
		return
	}

	result, err := h.wallet.VerifyChaincert(ctx, wallet, id)
	if err != nil {
		h.fail(ctx, w, "failed to verify chaincert", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{
		Valid:     result.Valid,
		Status:    string(result.Status),
		Chaincert: toChaincertResponse(result.Chaincert, requestcontext.Now(ctx)),
	})
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	wallet, ok := h.walletParam(w, r)
	if !ok {
		return
	}

	events, err := h.wallet.AuditTrail(ctx, wallet)
	if err != nil {
		h.fail(ctx, w, "failed to read audit trail", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, EventsResponse{WalletID: wallet.String(), Events: toEventResponses(events)})
}

func (h *Handler) walletParam(w http.ResponseWriter, r *http.Request) (models.WalletID, bool) {
	wallet, err := models.ParseWalletID(chi.URLParam(r, "wallet_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return wallet, true
}

func (h *Handler) chaincertParam(w http.ResponseWriter, r *http.Request) (models.ChaincertID, bool) {
	id, err := models.ParseChaincertID(chi.URLParam(r, "chaincert_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return id, true
}

// fail logs rejected operations at warn and everything else at error.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if kind, ok := models.KindOf(err); ok {
		h.logger.WarnContext(ctx, msg, append(attrs, "kind", kind.Name())...)
	} else if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
