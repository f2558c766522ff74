package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"chaincerts/internal/audit"
	"chaincerts/internal/sentinel"
	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/kvstore/mocks"
	"chaincerts/internal/wallet/metrics"
	"chaincerts/internal/wallet/models"
	dErrors "chaincerts/pkg/domain-errors"
	"chaincerts/pkg/requestcontext"
	"chaincerts/pkg/testutil"
)

var ids = testutil.TestIDs

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	store      *kvstore.MemoryStore
	auditStore *audit.InMemoryStore
	metrics    *metrics.Metrics
	service    *Service
	wallet     models.WalletID
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.wallet = ids.Wallet
	s.store = kvstore.NewMemory()
	s.auditStore = audit.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = s.newService()
}

func (s *ServiceSuite) newService(opts ...Option) *Service {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditor(audit.NewPublisher(s.auditStore)),
		WithMetrics(s.metrics),
	}
	return New(kvstore.NewMemoryTx(s.store, time.Second), append(base, opts...)...)
}

func (s *ServiceSuite) asCaller(caller models.Address) context.Context {
	return requestcontext.WithCaller(s.ctx, caller.String())
}

func (s *ServiceSuite) requireKind(err error, kind models.ErrorKind) {
	s.T().Helper()
	s.Require().Error(err)
	s.Require().True(testutil.IsKind(err, kind), "expected wallet error kind %s, got %v", kind.Name(), err)
}

func (s *ServiceSuite) seedOrgs(orgs ...models.OrganizationID) {
	for _, org := range orgs {
		_, err := s.service.AddOrganization(s.ctx, s.wallet, org)
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) depositReq(id models.ChaincertID, org models.OrganizationID) models.DepositRequest {
	return testutil.NewDepositRequest(id, org, testutil.DistributionDate1, testutil.ExpirationDate1)
}

func (s *ServiceSuite) revokeReq(id models.ChaincertID, distributor models.Address, org models.OrganizationID) models.RevokeRequest {
	return models.RevokeRequest{ChaincertID: id, Distributor: distributor, OrgID: org}
}

func (s *ServiceSuite) TestEndToEndScenario() {
	s.Require().NoError(s.service.Initialize(s.ctx, s.wallet, ids.Owner))
	s.seedOrgs(ids.Org1, ids.Org2)

	orgs, err := s.service.ListOrganizations(s.ctx, s.wallet)
	s.Require().NoError(err)
	s.Len(orgs, 2)

	_, err = s.service.DepositChaincert(s.ctx, s.wallet,
		testutil.NewDepositRequest(ids.Chaincert1, ids.Org1, testutil.DistributionDate1, testutil.ExpirationDate1))
	s.Require().NoError(err)
	_, err = s.service.DepositChaincert(s.ctx, s.wallet,
		testutil.NewDepositRequest(ids.Chaincert2, ids.Org1, testutil.DistributionDate2, 0))
	s.Require().NoError(err)

	certs, err := s.service.ListChaincerts(s.ctx, s.wallet, models.ListFilter{})
	s.Require().NoError(err)
	s.Len(certs, 2)

	revoked, err := s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1))
	s.Require().NoError(err)
	s.True(revoked.Revoked)

	c1, err := s.service.GetChaincert(s.ctx, s.wallet, ids.Chaincert1)
	s.Require().NoError(err)
	s.True(c1.Revoked)
	c2, err := s.service.GetChaincert(s.ctx, s.wallet, ids.Chaincert2)
	s.Require().NoError(err)
	s.False(c2.Revoked)
	s.Nil(c2.ExpirationDate)

	s.Require().NoError(s.service.RemoveOrganization(s.ctx, s.wallet, ids.Org1))
	orgs, err = s.service.ListOrganizations(s.ctx, s.wallet)
	s.Require().NoError(err)
	s.Equal([]models.OrganizationID{ids.Org2}, orgs)

	events, err := s.service.AuditTrail(s.ctx, s.wallet)
	s.Require().NoError(err)
	actions := make([]audit.Action, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	s.Equal([]audit.Action{
		audit.ActionWalletInitialized,
		audit.ActionOrganizationAdded,
		audit.ActionOrganizationAdded,
		audit.ActionChaincertDeposited,
		audit.ActionChaincertDeposited,
		audit.ActionChaincertRevoked,
		audit.ActionOrganizationRemoved,
	}, actions)
}

func (s *ServiceSuite) TestInitializeOnce() {
	s.Require().NoError(s.service.Initialize(s.ctx, s.wallet, ids.Owner))
	s.requireKind(s.service.Initialize(s.ctx, s.wallet, ids.Owner), models.ErrAlreadyInitialized)
	s.requireKind(s.service.Initialize(s.ctx, s.wallet, "GSOMEONE"), models.ErrAlreadyInitialized)

	owner, err := s.service.Owner(s.ctx, s.wallet)
	s.Require().NoError(err)
	s.Equal(ids.Owner, owner)

	// Other wallets are independent.
	s.NoError(s.service.Initialize(s.ctx, "wallet-2", "GSOMEONE"))
}

func (s *ServiceSuite) TestOwnerUninitialized() {
	_, err := s.service.Owner(s.ctx, s.wallet)
	s.requireKind(err, models.ErrNotInitialized)
}

func (s *ServiceSuite) TestOrganizations() {
	s.Run("list before any add", func() {
		_, err := s.service.ListOrganizations(s.ctx, s.wallet)
		s.requireKind(err, models.ErrNoOrganizations)
	})

	s.Run("remove before any add", func() {
		s.requireKind(s.service.RemoveOrganization(s.ctx, s.wallet, ids.Org1), models.ErrNoOrganizations)
	})

	s.Run("duplicates rejected", func() {
		s.seedOrgs(ids.Org1)
		_, err := s.service.AddOrganization(s.ctx, s.wallet, ids.Org1)
		s.requireKind(err, models.ErrOrganizationAlreadyAdded)

		orgs, err := s.service.ListOrganizations(s.ctx, s.wallet)
		s.Require().NoError(err)
		s.Len(orgs, 1)
	})

	s.Run("remove non-member", func() {
		s.requireKind(s.service.RemoveOrganization(s.ctx, s.wallet, ids.Org2), models.ErrOrganizationNotFound)
	})

	s.Run("remove shrinks by one", func() {
		s.seedOrgs(ids.Org2)
		s.Require().NoError(s.service.RemoveOrganization(s.ctx, s.wallet, ids.Org1))
		orgs, err := s.service.ListOrganizations(s.ctx, s.wallet)
		s.Require().NoError(err)
		s.Equal([]models.OrganizationID{ids.Org2}, orgs)
	})

	s.Run("add returns the committed list", func() {
		org3 := models.OrganizationID("ORG3")
		orgs, err := s.service.AddOrganization(s.ctx, s.wallet, org3)
		s.Require().NoError(err)
		s.Equal([]models.OrganizationID{ids.Org2, org3}, orgs)

		orgs[0] = "TAMPERED"
		again, err := s.service.ListOrganizations(s.ctx, s.wallet)
		s.Require().NoError(err)
		s.Equal([]models.OrganizationID{ids.Org2, org3}, again)
		s.Require().NoError(s.service.RemoveOrganization(s.ctx, s.wallet, org3))
	})

	s.Run("is authorized is non-fatal", func() {
		ok, err := s.service.IsAuthorized(s.ctx, "wallet-empty", ids.Org1)
		s.Require().NoError(err)
		s.False(ok)

		ok, err = s.service.IsAuthorized(s.ctx, s.wallet, ids.Org2)
		s.Require().NoError(err)
		s.True(ok)
	})
}

func (s *ServiceSuite) TestDeposit() {
	s.Run("no organizations", func() {
		_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.requireKind(err, models.ErrNoOrganizations)
	})

	s.seedOrgs(ids.Org2)

	s.Run("org not in list", func() {
		_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.requireKind(err, models.ErrNotAuthorized)
	})

	s.seedOrgs(ids.Org1)

	s.Run("duplicate id keeps the first record", func() {
		first, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.Require().NoError(err)

		dup := s.depositReq(ids.Chaincert1, ids.Org2)
		dup.ContentID = "QmReplacement"
		_, err = s.service.DepositChaincert(s.ctx, s.wallet, dup)
		s.requireKind(err, models.ErrChaincertAlreadyInWallet)

		got, err := s.service.GetChaincert(s.ctx, s.wallet, ids.Chaincert1)
		s.Require().NoError(err)
		s.Equal(first, got)
	})

	s.Run("missing fields", func() {
		req := s.depositReq("", ids.Org1)
		_, err := s.service.DepositChaincert(s.ctx, s.wallet, req)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.ChaincertsDeposited))
	s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.Rejections.WithLabelValues(opDeposit, "ChaincertAlreadyInWallet")))
}

func (s *ServiceSuite) TestRevokeTwoFactorMatch() {
	s.Run("no chaincerts", func() {
		_, err := s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1))
		s.requireKind(err, models.ErrNoChaincerts)
	})

	s.seedOrgs(ids.Org1, ids.Org2)
	_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
	s.Require().NoError(err)

	s.Run("unknown id", func() {
		_, err := s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert2, ids.Distributor, ids.Org1))
		s.requireKind(err, models.ErrChaincertNotFound)
	})

	s.Run("wrong distributor", func() {
		_, err := s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor2, ids.Org1))
		s.requireKind(err, models.ErrNotAuthorized)
	})

	s.Run("wrong org", func() {
		_, err := s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org2))
		s.requireKind(err, models.ErrNotAuthorized)
	})

	s.Run("both match and the flag stays set", func() {
		cert, err := s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1))
		s.Require().NoError(err)
		s.True(cert.Revoked)

		_, err = s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert2, ids.Org1))
		s.Require().NoError(err)

		got, err := s.service.GetChaincert(s.ctx, s.wallet, ids.Chaincert1)
		s.Require().NoError(err)
		s.True(got.Revoked)
	})
}

func (s *ServiceSuite) TestRevokePolicies() {
	s.seedOrgs(ids.Org1)
	_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
	s.Require().NoError(err)
	req := s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1)
	_, err = s.service.RevokeChaincert(s.ctx, s.wallet, req)
	s.Require().NoError(err)

	s.Run("idempotent", func() {
		s.Equal(RevokeIdempotent, s.service.RevokePolicy())
		cert, err := s.service.RevokeChaincert(s.ctx, s.wallet, req)
		s.Require().NoError(err)
		s.True(cert.Revoked)

		events, err := s.service.AuditTrail(s.ctx, s.wallet)
		s.Require().NoError(err)
		revocations := 0
		for _, e := range events {
			if e.Action == audit.ActionChaincertRevoked {
				revocations++
			}
		}
		s.Equal(1, revocations, "a repeated revoke changes nothing and is not audited")
		s.Equal(float64(1), promtestutil.ToFloat64(s.metrics.ChaincertsRevoked))
	})

	s.Run("strict", func() {
		strict := New(kvstore.NewMemoryTx(s.store, time.Second), WithRevokePolicy(RevokeStrict))
		s.Equal(RevokeStrict, strict.RevokePolicy())
		_, err := strict.RevokeChaincert(s.ctx, s.wallet, req)
		s.requireKind(err, models.ErrAlreadyRevoked)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) TestEmptyStates() {
	_, err := s.service.ListChaincerts(s.ctx, s.wallet, models.ListFilter{})
	s.requireKind(err, models.ErrNoChaincerts)

	_, err = s.service.GetChaincert(s.ctx, s.wallet, ids.Chaincert1)
	s.requireKind(err, models.ErrNoChaincerts)

	_, err = s.service.ListOrganizations(s.ctx, s.wallet)
	s.requireKind(err, models.ErrNoOrganizations)
}

func (s *ServiceSuite) TestVerifyAndStatusFilter() {
	s.seedOrgs(ids.Org1)
	_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
	s.Require().NoError(err)
	_, err = s.service.DepositChaincert(s.ctx, s.wallet,
		testutil.NewDepositRequest(ids.Chaincert2, ids.Org1, testutil.DistributionDate2, 0))
	s.Require().NoError(err)

	before := requestcontext.WithTime(s.ctx, time.Unix(1700000000, 0))
	after := requestcontext.WithTime(s.ctx, time.Unix(int64(testutil.ExpirationDate1), 0))

	res, err := s.service.VerifyChaincert(before, s.wallet, ids.Chaincert1)
	s.Require().NoError(err)
	s.True(res.Valid)
	s.Equal(models.StatusActive, res.Status)

	res, err = s.service.VerifyChaincert(after, s.wallet, ids.Chaincert1)
	s.Require().NoError(err)
	s.False(res.Valid)
	s.Equal(models.StatusExpired, res.Status)

	_, err = s.service.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert2, ids.Distributor, ids.Org1))
	s.Require().NoError(err)
	res, err = s.service.VerifyChaincert(before, s.wallet, ids.Chaincert2)
	s.Require().NoError(err)
	s.False(res.Valid)
	s.Equal(models.StatusRevoked, res.Status)

	_, err = s.service.VerifyChaincert(before, s.wallet, "CHAINCERT9")
	s.requireKind(err, models.ErrChaincertNotFound)

	active := models.StatusActive
	certs, err := s.service.ListChaincerts(before, s.wallet, models.ListFilter{Status: &active})
	s.Require().NoError(err)
	s.Require().Len(certs, 1)
	s.Equal(ids.Chaincert1, certs[0].ID)
}

func (s *ServiceSuite) TestOwnerGate() {
	gated := s.newService(WithOwnerGate(true))

	s.Run("uninitialized wallet rejects mutations", func() {
		_, err := gated.AddOrganization(s.asCaller(ids.Owner), s.wallet, ids.Org1)
		s.requireKind(err, models.ErrNotInitialized)
		_, err = gated.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.requireKind(err, models.ErrNotInitialized)
		_, err = gated.RevokeChaincert(s.ctx, s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1))
		s.requireKind(err, models.ErrNotInitialized)
	})

	s.Require().NoError(gated.Initialize(s.ctx, s.wallet, ids.Owner))

	s.Run("missing caller", func() {
		_, err := gated.AddOrganization(s.ctx, s.wallet, ids.Org1)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("non-owner", func() {
		_, err := gated.AddOrganization(s.asCaller(ids.Distributor), s.wallet, ids.Org1)
		s.requireKind(err, models.ErrNotOwner)
		s.requireKind(gated.RemoveOrganization(s.asCaller(ids.Distributor), s.wallet, ids.Org1), models.ErrNotOwner)
	})

	s.Run("owner", func() {
		orgs, err := gated.AddOrganization(s.asCaller(ids.Owner), s.wallet, ids.Org1)
		s.Require().NoError(err)
		s.Equal([]models.OrganizationID{ids.Org1}, orgs)
		_, err = gated.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.Require().NoError(err)
		s.Require().NoError(gated.RemoveOrganization(s.asCaller(ids.Owner), s.wallet, ids.Org1))
	})

	s.Run("owner check precedes ACL errors", func() {
		s.requireKind(gated.RemoveOrganization(s.asCaller(ids.Distributor), s.wallet, ids.Org2), models.ErrNotOwner)
	})
}

func (s *ServiceSuite) TestCallerVerification() {
	verified := s.newService(WithCallerVerification(true))

	s.Run("initialize requires the owner as caller", func() {
		err := verified.Initialize(s.ctx, s.wallet, ids.Owner)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.requireKind(verified.Initialize(s.asCaller(ids.Distributor), s.wallet, ids.Owner), models.ErrNotAuthorized)
		s.Require().NoError(verified.Initialize(s.asCaller(ids.Owner), s.wallet, ids.Owner))
	})

	s.seedOrgs(ids.Org1)

	s.Run("deposit requires the distributor as caller", func() {
		_, err := verified.DepositChaincert(s.asCaller(ids.Distributor2), s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.requireKind(err, models.ErrNotAuthorized)

		_, err = verified.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

		_, err = verified.DepositChaincert(s.asCaller(ids.Distributor), s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		s.Require().NoError(err)
	})

	s.Run("revoke requires the distributor as caller", func() {
		// A caller claiming another distributor's identity is stopped before the record is read.
		_, err := verified.RevokeChaincert(s.asCaller(ids.Distributor2), s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1))
		s.requireKind(err, models.ErrNotAuthorized)

		cert, err := verified.RevokeChaincert(s.asCaller(ids.Distributor), s.wallet, s.revokeReq(ids.Chaincert1, ids.Distributor, ids.Org1))
		s.Require().NoError(err)
		s.True(cert.Revoked)
	})

	s.Run("audit records the actor", func() {
		events, err := verified.AuditTrail(s.ctx, s.wallet)
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		last := events[len(events)-1]
		s.Equal(audit.ActionChaincertRevoked, last.Action)
		s.Equal(ids.Distributor.String(), last.Actor)
	})
}

func (s *ServiceSuite) TestConcurrentDepositsOfOneID() {
	s.seedOrgs(ids.Org1)

	result := testutil.RunConcurrent(25, func(int) error {
		_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(ids.Chaincert1, ids.Org1))
		return err
	})
	s.Equal(int32(1), result.Successes)
	s.Equal(int32(24), result.Conflicts)

	result = testutil.RunConcurrent(25, func(i int) error {
		_, err := s.service.DepositChaincert(s.ctx, s.wallet, s.depositReq(models.ChaincertID(fmt.Sprintf("C-%02d", i)), ids.Org1))
		return err
	})
	s.Equal(int32(25), result.Successes)

	certs, err := s.service.ListChaincerts(s.ctx, s.wallet, models.ListFilter{})
	s.Require().NoError(err)
	s.Len(certs, 26)
}

func (s *ServiceSuite) TestValidation() {
	err := s.service.Initialize(s.ctx, "", ids.Owner)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	err = s.service.Initialize(s.ctx, s.wallet, "")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = s.service.AddOrganization(s.ctx, s.wallet, "")
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = s.service.RevokeChaincert(s.ctx, s.wallet, models.RevokeRequest{ChaincertID: ids.Chaincert1})
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

// StoreFailureSuite drives the service over mocked transactions to check
// that dependency failures surface as internal errors, never as wallet kinds.
type StoreFailureSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	tx      *mocks.MockTx
	store   *mocks.MockStore
	service *Service
}

func TestStoreFailureSuite(t *testing.T) {
	suite.Run(t, new(StoreFailureSuite))
}

func (s *StoreFailureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tx = mocks.NewMockTx(s.ctrl)
	s.store = mocks.NewMockStore(s.ctrl)
	s.service = New(s.tx, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func (s *StoreFailureSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *StoreFailureSuite) runWithStore() {
	s.tx.EXPECT().RunInTx(gomock.Any(), ids.Wallet, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.WalletID, fn func(context.Context, kvstore.Store) error) error {
			return fn(ctx, s.store)
		})
}

func (s *StoreFailureSuite) TestReadFailureIsInternal() {
	s.runWithStore()
	s.store.EXPECT().Get(gomock.Any(), kvstore.KeyFor(ids.Wallet, kvstore.SlotAccessControlList)).
		Return(nil, errors.New("connection reset"))

	_, err := s.service.ListOrganizations(context.Background(), ids.Wallet)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	_, isKind := models.KindOf(err)
	s.False(isKind)
}

func (s *StoreFailureSuite) TestWriteFailureIsInternal() {
	s.runWithStore()
	s.store.EXPECT().Has(gomock.Any(), kvstore.KeyFor(ids.Wallet, kvstore.SlotOwner)).Return(false, nil)
	s.store.EXPECT().Set(gomock.Any(), kvstore.KeyFor(ids.Wallet, kvstore.SlotOwner), gomock.Any()).
		Return(errors.New("disk full"))

	err := s.service.Initialize(context.Background(), ids.Wallet, ids.Owner)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *StoreFailureSuite) TestMissingSlotReadsAsAbsent() {
	s.runWithStore()
	s.store.EXPECT().Get(gomock.Any(), kvstore.KeyFor(ids.Wallet, kvstore.SlotChaincerts)).
		Return(nil, sentinel.ErrNotFound)

	_, err := s.service.ListChaincerts(context.Background(), ids.Wallet, models.ListFilter{})
	s.Require().ErrorIs(err, models.ErrNoChaincerts)
}

func (s *StoreFailureSuite) TestTxConflictIsConflict() {
	s.tx.EXPECT().RunInTx(gomock.Any(), ids.Wallet, gomock.Any()).
		Return(fmt.Errorf("wallet %s: %w", ids.Wallet, sentinel.ErrTxConflict))

	_, err := s.service.AddOrganization(context.Background(), ids.Wallet, ids.Org1)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	s.ErrorIs(err, sentinel.ErrTxConflict)
}
