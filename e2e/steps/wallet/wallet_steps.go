package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"chaincerts/internal/wallet/models"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	DELETE(path string) error
	GetWalletPath(suffix string) string
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// contentID is the off-registry reference used for every deposit in the features.
const contentID = "QmdtyfTYbVS3K9iYqBPjXxn4mbB7aBvEjYGzYWnzRcMrEC"

var allKinds = []models.ErrorKind{
	models.ErrAlreadyInitialized,
	models.ErrNotAuthorized,
	models.ErrOrganizationAlreadyAdded,
	models.ErrNoOrganizations,
	models.ErrOrganizationNotFound,
	models.ErrChaincertAlreadyInWallet,
	models.ErrChaincertNotFound,
	models.ErrNoChaincerts,
	models.ErrAlreadyRevoked,
	models.ErrNotInitialized,
	models.ErrNotOwner,
}

// RegisterSteps registers wallet step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &walletSteps{tc: tc}

	// Wallet lifecycle
	ctx.Step(`^I initialize the wallet for owner "([^"]*)"$`, steps.initialize)
	ctx.Step(`^I request the wallet owner$`, steps.getOwner)

	// Access control list
	ctx.Step(`^I add organization "([^"]*)"$`, steps.addOrganization)
	ctx.Step(`^I remove organization "([^"]*)"$`, steps.removeOrganization)
	ctx.Step(`^I list the organizations$`, steps.listOrganizations)
	ctx.Step(`^the wallet should have (\d+) organizations?$`, steps.shouldHaveOrganizations)

	// Chaincerts
	ctx.Step(`^I deposit chaincert "([^"]*)" from "([^"]*)" for organization "([^"]*)" distributed at (\d+) expiring at (\d+)$`, steps.depositExpiring)
	ctx.Step(`^I deposit chaincert "([^"]*)" from "([^"]*)" for organization "([^"]*)" distributed at (\d+)$`, steps.deposit)
	ctx.Step(`^I revoke chaincert "([^"]*)" as "([^"]*)" for organization "([^"]*)"$`, steps.revoke)
	ctx.Step(`^I list the chaincerts$`, steps.listChaincerts)
	ctx.Step(`^I list the chaincerts with status "([^"]*)"$`, steps.listChaincertsWithStatus)
	ctx.Step(`^I get chaincert "([^"]*)"$`, steps.getChaincert)
	ctx.Step(`^I verify chaincert "([^"]*)"$`, steps.verifyChaincert)
	ctx.Step(`^the wallet should hold (\d+) chaincerts?$`, steps.shouldHoldChaincerts)
	ctx.Step(`^chaincert "([^"]*)" should be revoked$`, steps.shouldBeRevoked)
	ctx.Step(`^chaincert "([^"]*)" should not be revoked$`, steps.shouldNotBeRevoked)

	// Audit trail
	ctx.Step(`^I read the audit trail$`, steps.readAuditTrail)
	ctx.Step(`^the audit trail should record "([^"]*)" by "([^"]*)"$`, steps.auditTrailShouldRecord)

	// Failures
	ctx.Step(`^the request should fail with "([^"]*)"$`, steps.requestShouldFailWith)
	ctx.Step(`^the request should succeed$`, steps.requestShouldSucceed)
}

type walletSteps struct {
	tc TestContext
}

type chaincertView struct {
	ChaincertID string `json:"chaincert_id"`
	Revoked     bool   `json:"revoked"`
	Status      string `json:"status"`
}

func (s *walletSteps) initialize(ctx context.Context, owner string) error {
	return s.tc.POST(s.tc.GetWalletPath("/initialize"), map[string]string{"owner": owner})
}

func (s *walletSteps) getOwner(ctx context.Context) error {
	return s.tc.GET(s.tc.GetWalletPath("/owner"), nil)
}

func (s *walletSteps) addOrganization(ctx context.Context, org string) error {
	return s.tc.POST(s.tc.GetWalletPath("/organizations"), map[string]string{"org_id": org})
}

func (s *walletSteps) removeOrganization(ctx context.Context, org string) error {
	return s.tc.DELETE(s.tc.GetWalletPath("/organizations/" + org))
}

func (s *walletSteps) listOrganizations(ctx context.Context) error {
	return s.tc.GET(s.tc.GetWalletPath("/organizations"), nil)
}

func (s *walletSteps) shouldHaveOrganizations(ctx context.Context, count int) error {
	if err := s.listOrganizations(ctx); err != nil {
		return err
	}
	if err := s.expectStatus(http.StatusOK); err != nil {
		return err
	}
	var resp struct {
		Organizations []string `json:"organizations"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return fmt.Errorf("failed to parse organizations: %w", err)
	}
	if len(resp.Organizations) != count {
		return fmt.Errorf("expected %d organizations but got %v", count, resp.Organizations)
	}
	return nil
}

func (s *walletSteps) depositExpiring(ctx context.Context, id, distributor, org string, distributed, expires int64) error {
	body := depositBody(id, distributor, org, distributed)
	body["expiration_date"] = expires
	return s.tc.POST(s.tc.GetWalletPath("/chaincerts"), body)
}

func (s *walletSteps) deposit(ctx context.Context, id, distributor, org string, distributed int64) error {
	return s.tc.POST(s.tc.GetWalletPath("/chaincerts"), depositBody(id, distributor, org, distributed))
}

func depositBody(id, distributor, org string, distributed int64) map[string]interface{} {
	return map[string]interface{}{
		"chaincert_id":      id,
		"content_id":        contentID,
		"distributor":       distributor,
		"org_id":            org,
		"distribution_date": distributed,
	}
}

func (s *walletSteps) revoke(ctx context.Context, id, distributor, org string) error {
	return s.tc.POST(s.tc.GetWalletPath("/chaincerts/"+id+"/revoke"), map[string]string{
		"distributor": distributor,
		"org_id":      org,
	})
}

func (s *walletSteps) listChaincerts(ctx context.Context) error {
	return s.tc.GET(s.tc.GetWalletPath("/chaincerts"), nil)
}

func (s *walletSteps) listChaincertsWithStatus(ctx context.Context, status string) error {
	return s.tc.GET(s.tc.GetWalletPath("/chaincerts?status="+status), nil)
}

func (s *walletSteps) getChaincert(ctx context.Context, id string) error {
	return s.tc.GET(s.tc.GetWalletPath("/chaincerts/"+id), nil)
}

func (s *walletSteps) verifyChaincert(ctx context.Context, id string) error {
	return s.tc.GET(s.tc.GetWalletPath("/chaincerts/"+id+"/verify"), nil)
}

func (s *walletSteps) chaincerts() ([]chaincertView, error) {
	if err := s.expectStatus(http.StatusOK); err != nil {
		return nil, err
	}
	var resp struct {
		Chaincerts []chaincertView `json:"chaincerts"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse chaincerts: %w", err)
	}
	return resp.Chaincerts, nil
}

func (s *walletSteps) shouldHoldChaincerts(ctx context.Context, count int) error {
	certs, err := s.chaincerts()
	if err != nil {
		return err
	}
	if len(certs) != count {
		return fmt.Errorf("expected %d chaincerts but got %d", count, len(certs))
	}
	return nil
}

func (s *walletSteps) fetch(ctx context.Context, id string) (chaincertView, error) {
	if err := s.getChaincert(ctx, id); err != nil {
		return chaincertView{}, err
	}
	if err := s.expectStatus(http.StatusOK); err != nil {
		return chaincertView{}, err
	}
	var view chaincertView
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &view); err != nil {
		return chaincertView{}, fmt.Errorf("failed to parse chaincert: %w", err)
	}
	return view, nil
}

func (s *walletSteps) shouldBeRevoked(ctx context.Context, id string) error {
	view, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if !view.Revoked || view.Status != string(models.StatusRevoked) {
		return fmt.Errorf("chaincert %s: expected revoked but got revoked=%t status=%s", id, view.Revoked, view.Status)
	}
	return nil
}

func (s *walletSteps) shouldNotBeRevoked(ctx context.Context, id string) error {
	view, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if view.Revoked {
		return fmt.Errorf("chaincert %s: expected not revoked", id)
	}
	return nil
}

func (s *walletSteps) readAuditTrail(ctx context.Context) error {
	return s.tc.GET(s.tc.GetWalletPath("/events"), nil)
}

func (s *walletSteps) auditTrailShouldRecord(ctx context.Context, action, actor string) error {
	if err := s.readAuditTrail(ctx); err != nil {
		return err
	}
	if err := s.expectStatus(http.StatusOK); err != nil {
		return err
	}
	var resp struct {
		Events []struct {
			Action string `json:"action"`
			Actor  string `json:"actor"`
		} `json:"events"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return fmt.Errorf("failed to parse events: %w", err)
	}
	for _, e := range resp.Events {
		if e.Action == action && e.Actor == actor {
			return nil
		}
	}
	return fmt.Errorf("no %s event by %s in %d events", action, actor, len(resp.Events))
}

func (s *walletSteps) requestShouldFailWith(ctx context.Context, name string) error {
	var want models.ErrorKind
	for _, k := range allKinds {
		if k.Name() == name {
			want = k
		}
	}
	if want == 0 {
		return fmt.Errorf("unknown error kind %q", name)
	}

	var resp struct {
		Kind int `json:"error_kind"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return fmt.Errorf("failed to parse error response (status %d): %w", s.tc.GetLastResponseStatus(), err)
	}
	if resp.Kind != want.ErrorCode() {
		return fmt.Errorf("expected error kind %s (%d) but got %d\nResponse: %s",
			name, want.ErrorCode(), resp.Kind, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func (s *walletSteps) requestShouldSucceed(ctx context.Context) error {
	status := s.tc.GetLastResponseStatus()
	if status < 200 || status > 299 {
		return fmt.Errorf("expected success but got %d\nResponse: %s", status, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func (s *walletSteps) expectStatus(want int) error {
	if got := s.tc.GetLastResponseStatus(); got != want {
		return fmt.Errorf("expected status %d but got %d\nResponse: %s", want, got, string(s.tc.GetLastResponseBody()))
	}
	return nil
}
