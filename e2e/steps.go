package e2e

import (
	"github.com/cucumber/godog"

	"chaincerts/e2e/steps/common"
	"chaincerts/e2e/steps/wallet"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	wallet.RegisterSteps(ctx, tc)
}
