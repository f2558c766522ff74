package acl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"chaincerts/internal/wallet/kvstore"
	"chaincerts/internal/wallet/models"
	"chaincerts/pkg/testutil"
)

type ManagerSuite struct {
	suite.Suite
	ctx     context.Context
	store   *kvstore.MemoryStore
	manager *Manager
	wallet  models.WalletID
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = kvstore.NewMemory()
	s.manager = New()
	s.wallet = testutil.TestIDs.Wallet
}

func (s *ManagerSuite) requireKind(err error, kind models.ErrorKind) {
	s.T().Helper()
	s.Require().Error(err)
	s.Require().True(testutil.IsKind(err, kind), "expected wallet error kind %s, got %v", kind.Name(), err)
}

func (s *ManagerSuite) TestInitialize() {
	s.Run("sets owner once", func() {
		s.Require().NoError(s.manager.Initialize(s.ctx, s.store, s.wallet, testutil.TestIDs.Owner))

		owner, found, err := s.manager.Owner(s.ctx, s.store, s.wallet)
		s.Require().NoError(err)
		s.True(found)
		s.Equal(testutil.TestIDs.Owner, owner)
	})

	s.Run("second initialize fails and keeps first owner", func() {
		err := s.manager.Initialize(s.ctx, s.store, s.wallet, "GSOMEONEELSE")
		s.requireKind(err, models.ErrAlreadyInitialized)

		owner, _, err := s.manager.Owner(s.ctx, s.store, s.wallet)
		s.Require().NoError(err)
		s.Equal(testutil.TestIDs.Owner, owner)
	})

	s.Run("uninitialized wallet has no owner", func() {
		_, found, err := s.manager.Owner(s.ctx, s.store, "wallet-other")
		s.Require().NoError(err)
		s.False(found)
	})
}

func (s *ManagerSuite) TestAdd() {
	acl, err := s.manager.Add(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
	s.Require().NoError(err)
	s.Equal(1, acl.Len())

	acl, err = s.manager.Add(s.ctx, s.store, s.wallet, testutil.TestIDs.Org2)
	s.Require().NoError(err)
	s.Equal(2, acl.Len())

	_, err = s.manager.Add(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
	s.requireKind(err, models.ErrOrganizationAlreadyAdded)

	orgs, err := s.manager.List(s.ctx, s.store, s.wallet)
	s.Require().NoError(err)
	s.Equal([]models.OrganizationID{testutil.TestIDs.Org1, testutil.TestIDs.Org2}, orgs)
}

func (s *ManagerSuite) TestRemove() {
	s.Run("never-created list", func() {
		_, err := s.manager.Remove(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.requireKind(err, models.ErrNoOrganizations)
	})

	s.Run("non-member", func() {
		_, err := s.manager.Add(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.Require().NoError(err)

		_, err = s.manager.Remove(s.ctx, s.store, s.wallet, testutil.TestIDs.Org2)
		s.requireKind(err, models.ErrOrganizationNotFound)
	})

	s.Run("member removal shrinks by one and empty list persists", func() {
		acl, err := s.manager.Remove(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.Require().NoError(err)
		s.Equal(0, acl.Len())

		orgs, err := s.manager.List(s.ctx, s.store, s.wallet)
		s.Require().NoError(err)
		s.Empty(orgs)

		_, err = s.manager.Remove(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.requireKind(err, models.ErrOrganizationNotFound)
	})
}

func (s *ManagerSuite) TestListBeforeAnyAdd() {
	_, err := s.manager.List(s.ctx, s.store, s.wallet)
	s.requireKind(err, models.ErrNoOrganizations)
}

func (s *ManagerSuite) TestAuthorization() {
	s.Run("no list", func() {
		ok, err := s.manager.IsAuthorized(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.Require().NoError(err)
		s.False(ok)

		s.requireKind(s.manager.Require(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1), models.ErrNoOrganizations)
	})

	s.Run("member and non-member", func() {
		_, err := s.manager.Add(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.Require().NoError(err)

		ok, err := s.manager.IsAuthorized(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1)
		s.Require().NoError(err)
		s.True(ok)
		s.NoError(s.manager.Require(s.ctx, s.store, s.wallet, testutil.TestIDs.Org1))

		ok, err = s.manager.IsAuthorized(s.ctx, s.store, s.wallet, testutil.TestIDs.Org2)
		s.Require().NoError(err)
		s.False(ok)
		s.requireKind(s.manager.Require(s.ctx, s.store, s.wallet, testutil.TestIDs.Org2), models.ErrNotAuthorized)
	})
}
