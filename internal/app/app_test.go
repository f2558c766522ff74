package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"chaincerts/internal/platform/config"
	"chaincerts/internal/wallet/models"
	"chaincerts/pkg/platform/httputil"
	"chaincerts/pkg/testutil"
)

var ids = testutil.TestIDs

func testConfig() config.Server {
	return config.Server{
		Environment:    "test",
		RequestTimeout: 5 * time.Second,
		Wallet: config.WalletConfig{
			StoreBackend:       config.BackendMemory,
			TxTimeout:          time.Second,
			RevokePolicy:       "idempotent",
			OwnerGate:          true,
			CallerVerification: true,
		},
		Token: config.TokenConfig{
			SigningKey: "app-test-key",
			Issuer:     "chaincerts-test",
			Audience:   "chaincerts-wallet",
			TTL:        time.Minute,
		},
	}
}

type AppSuite struct {
	suite.Suite
	app    *App
	server *httptest.Server
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	a, err := New(context.Background(), testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	s.Require().NoError(err)
	s.app = a
	s.server = httptest.NewServer(a.Handler())
}

func (s *AppSuite) TearDownTest() {
	s.server.Close()
	s.NoError(s.app.Close())
}

func (s *AppSuite) token(caller models.Address) string {
	token, err := s.app.Tokens.Issue(context.Background(), caller)
	s.Require().NoError(err)
	return token
}

func (s *AppSuite) call(method, path, token string, body any) (int, []byte) {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, raw
}

func (s *AppSuite) errorKind(raw []byte) int {
	var resp httputil.ErrorResponse
	s.Require().NoError(json.Unmarshal(raw, &resp))
	return resp.Kind
}

func (s *AppSuite) TestUnknownRevokePolicyIsRejected() {
	cfg := testConfig()
	cfg.Wallet.RevokePolicy = "lenient"

	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())

	s.Error(err)
}

// restart replaces the suite's registry with one built from cfg.
func (s *AppSuite) restart(cfg config.Server) {
	s.server.Close()
	s.Require().NoError(s.app.Close())
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	s.Require().NoError(err)
	s.app = a
	s.server = httptest.NewServer(a.Handler())
}

func (s *AppSuite) TestInvalidConfigIsRejectedBeforeConnecting() {
	cases := map[string]func(*config.Server){
		"postgres without DATABASE_URL": func(c *config.Server) { c.Wallet.StoreBackend = config.BackendPostgres },
		"redis without REDIS_URL":       func(c *config.Server) { c.Wallet.StoreBackend = config.BackendRedis },
		"unknown backend":               func(c *config.Server) { c.Wallet.StoreBackend = "etcd" },
		"zero tx timeout":               func(c *config.Server) { c.Wallet.TxTimeout = 0 },
		"empty signing key":             func(c *config.Server) { c.Token.SigningKey = "" },
	}
	for name, mutate := range cases {
		s.Run(name, func() {
			cfg := testConfig()
			mutate(&cfg)
			s.NotPanics(func() {
				a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
				s.Error(err)
				s.Nil(a)
			})
		})
	}
}

func (s *AppSuite) TestCallerVerificationGuardsMutatingRoutes() {
	wallet := "/wallets/" + ids.Wallet.String()
	orgs := map[string]string{"org_id": ids.Org1.String()}

	s.Run("anonymous mutation is refused at the edge even without the owner gate", func() {
		cfg := testConfig()
		cfg.Wallet.OwnerGate = false
		s.restart(cfg)

		status, raw := s.call(http.MethodPost, wallet+"/organizations", "", orgs)
		s.Equal(http.StatusUnauthorized, status)
		s.Contains(string(raw), "Missing or invalid Authorization header")

		status, _ = s.call(http.MethodDelete, wallet+"/organizations/"+ids.Org1.String(), "", nil)
		s.Equal(http.StatusUnauthorized, status)

		status, _ = s.call(http.MethodGet, wallet+"/organizations", "", nil)
		s.NotEqual(http.StatusUnauthorized, status)

		status, _ = s.call(http.MethodPost, wallet+"/organizations", s.token(ids.Owner), orgs)
		s.Equal(http.StatusCreated, status)
	})

	s.Run("anonymous mutation passes when caller verification is off", func() {
		cfg := testConfig()
		cfg.Wallet.OwnerGate = false
		cfg.Wallet.CallerVerification = false
		s.restart(cfg)

		status, _ := s.call(http.MethodPost, wallet+"/organizations", "", orgs)
		s.Equal(http.StatusCreated, status)
	})
}

func (s *AppSuite) TestCallerIdentityGuardsMutations() {
	owner := s.token(ids.Owner)
	distributor := s.token(ids.Distributor)
	wallet := "/wallets/" + ids.Wallet.String()

	s.Run("initialize without a token is unauthorized", func() {
		status, _ := s.call(http.MethodPost, wallet+"/initialize", "", map[string]string{"owner": ids.Owner.String()})
		s.Equal(http.StatusUnauthorized, status)
	})

	s.Run("initialize on behalf of someone else is refused", func() {
		status, raw := s.call(http.MethodPost, wallet+"/initialize", distributor, map[string]string{"owner": ids.Owner.String()})
		s.Equal(http.StatusForbidden, status)
		s.Equal(int(models.ErrNotAuthorized), s.errorKind(raw))
	})

	s.Run("owner initializes", func() {
		status, _ := s.call(http.MethodPost, wallet+"/initialize", owner, map[string]string{"owner": ids.Owner.String()})
		s.Equal(http.StatusCreated, status)
	})

	s.Run("non-owner cannot add organizations", func() {
		status, raw := s.call(http.MethodPost, wallet+"/organizations", distributor, map[string]string{"org_id": ids.Org1.String()})
		s.Equal(http.StatusForbidden, status)
		s.Equal(int(models.ErrNotOwner), s.errorKind(raw))
	})

	s.Run("owner adds an organization", func() {
		status, _ := s.call(http.MethodPost, wallet+"/organizations", owner, map[string]string{"org_id": ids.Org1.String()})
		s.Equal(http.StatusCreated, status)
	})

	deposit := map[string]any{
		"chaincert_id":      ids.Chaincert1.String(),
		"content_id":        ids.ContentID.String(),
		"distributor":       ids.Distributor.String(),
		"org_id":            ids.Org1.String(),
		"distribution_date": testutil.DistributionDate1,
	}

	s.Run("deposit signed by another principal is refused", func() {
		status, raw := s.call(http.MethodPost, wallet+"/chaincerts", owner, deposit)
		s.Equal(http.StatusForbidden, status)
		s.Equal(int(models.ErrNotAuthorized), s.errorKind(raw))
	})

	s.Run("distributor deposits", func() {
		status, _ := s.call(http.MethodPost, wallet+"/chaincerts", distributor, deposit)
		s.Equal(http.StatusCreated, status)
	})

	s.Run("reads are public", func() {
		status, raw := s.call(http.MethodGet, wallet+"/chaincerts", "", nil)
		s.Require().Equal(http.StatusOK, status)
		var resp struct {
			Chaincerts []map[string]any `json:"chaincerts"`
		}
		s.Require().NoError(json.Unmarshal(raw, &resp))
		s.Len(resp.Chaincerts, 1)
	})

	s.Run("audit trail records each mutation with its actor", func() {
		status, raw := s.call(http.MethodGet, wallet+"/events", "", nil)
		s.Require().Equal(http.StatusOK, status)
		var resp struct {
			Events []struct {
				Action string `json:"action"`
				Actor  string `json:"actor"`
			} `json:"events"`
		}
		s.Require().NoError(json.Unmarshal(raw, &resp))
		s.Require().Len(resp.Events, 3)
		s.Equal("wallet_initialized", resp.Events[0].Action)
		s.Equal(ids.Owner.String(), resp.Events[0].Actor)
		s.Equal("chaincert_deposited", resp.Events[2].Action)
		s.Equal(ids.Distributor.String(), resp.Events[2].Actor)
	})

	s.Run("a forged token is rejected", func() {
		status, _ := s.call(http.MethodGet, wallet+"/chaincerts", "forged.token.value", nil)
		s.Equal(http.StatusUnauthorized, status)
	})
}

func (s *AppSuite) TestHealthRoutes() {
	status, _ := s.call(http.MethodGet, "/health/ready", "", nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.call(http.MethodGet, "/health/live", "", nil)
	s.Equal(http.StatusOK, status)
}

func (s *AppSuite) TestRejectsNonJSONBodies() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/wallets/wallet-1/initialize", bytes.NewBufferString("owner=GOWNER"))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
}
