package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"chaincerts/internal/app"
	"chaincerts/internal/callertoken"
	"chaincerts/internal/platform/config"
	"chaincerts/internal/wallet/models"
)

// TestContext holds state between test steps
type TestContext struct {
	BaseURL          string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	// WalletID is unique per scenario so runs against a shared server do not collide.
	WalletID string
	// Caller is the principal whose bearer token signs subsequent requests.
	Caller string

	cfg    config.Server
	tokens *callertoken.Service
	app    *app.App
	server *httptest.Server
}

// NewTestContext creates a new test context. When BASE_URL is unset each
// scenario gets its own in-process registry backed by the memory store.
func NewTestContext() *TestContext {
	cfg, err := config.FromEnv()
	if err != nil {
		cfg = config.Server{}
	}
	return &TestContext{
		BaseURL: os.Getenv("BASE_URL"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		WalletID: "wallet-" + uuid.NewString(),
		cfg:      cfg,
		tokens:   callertoken.NewService(cfg.Token.SigningKey, cfg.Token.Issuer, cfg.Token.Audience, cfg.Token.TTL),
	}
}

// External reports whether the scenario runs against a server started elsewhere.
func (tc *TestContext) External() bool {
	return tc.BaseURL != "" && tc.server == nil
}

// Start boots the in-process registry with the given revoke policy. It is a
// no-op against an external server.
func (tc *TestContext) Start(ctx context.Context, revokePolicy string) error {
	if tc.External() {
		return nil
	}
	tc.Stop()

	cfg := tc.cfg
	cfg.Environment = "test"
	cfg.RequestTimeout = 5 * time.Second
	cfg.Wallet.StoreBackend = config.BackendMemory
	cfg.Wallet.RevokePolicy = revokePolicy
	cfg.Wallet.OwnerGate = true
	cfg.Wallet.CallerVerification = true
	cfg.Wallet.AuditBufferSize = 0
	cfg.Database = config.DatabaseConfig{}
	cfg.Redis = config.RedisConfig{}
	cfg.Kafka = config.KafkaConfig{}
	if cfg.Wallet.TxTimeout <= 0 {
		cfg.Wallet.TxTimeout = 5 * time.Second
	}
	if cfg.Token.SigningKey == "" {
		cfg.Token.SigningKey = config.DevSigningKey
	}

	a, err := app.New(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to start registry: %w", err)
	}
	tc.app = a
	tc.tokens = a.Tokens
	tc.server = httptest.NewServer(a.Handler())
	tc.BaseURL = tc.server.URL
	return nil
}

// Stop shuts down the in-process registry, if one is running.
func (tc *TestContext) Stop() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	if tc.app != nil {
		_ = tc.app.Close()
		tc.app = nil
	}
}

// WalletPath returns the scenario wallet's route joined with suffix.
func (tc *TestContext) WalletPath(suffix string) string {
	return "/wallets/" + tc.WalletID + suffix
}

// ActAs makes caller the signer of subsequent requests. An empty caller
// sends requests without a token.
func (tc *TestContext) ActAs(caller string) {
	tc.Caller = caller
}

// POST makes a POST request and stores the response
func (tc *TestContext) POST(path string, body interface{}) error {
	return tc.do(http.MethodPost, path, body, nil)
}

// POSTWithHeaders makes a POST request with optional headers
func (tc *TestContext) POSTWithHeaders(path string, body interface{}, headers map[string]string) error {
	return tc.do(http.MethodPost, path, body, headers)
}

// GET makes a GET request and stores the response
func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.do(http.MethodGet, path, nil, headers)
}

// DELETE makes a DELETE request and stores the response
func (tc *TestContext) DELETE(path string) error {
	return tc.do(http.MethodDelete, path, nil, nil)
}

func (tc *TestContext) do(method, path string, body interface{}, headers map[string]string) error {
	reader := io.Reader(http.NoBody)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if tc.Caller != "" {
		token, err := tc.tokens.Issue(context.Background(), models.Address(tc.Caller))
		if err != nil {
			return fmt.Errorf("failed to issue caller token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// GetResponseField extracts a field from the JSON response
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}

	return value, nil
}

// ResponseContains checks if the response body contains a field or text
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.LastResponseBody, &data); err == nil {
		if _, ok := data[text]; ok {
			return true
		}
	}

	return false
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}

func (tc *TestContext) GetWalletPath(suffix string) string {
	return tc.WalletPath(suffix)
}
