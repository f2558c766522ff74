package testutil

import "chaincerts/internal/wallet/models"

// TestIDs are the identifiers used across wallet tests.
var TestIDs = struct {
	Wallet       models.WalletID
	Owner        models.Address
	Distributor  models.Address
	Distributor2 models.Address
	Org1         models.OrganizationID
	Org2         models.OrganizationID
	Chaincert1   models.ChaincertID
	Chaincert2   models.ChaincertID
	ContentID    models.ContentID
}{
	Wallet:       "wallet-1",
	Owner:        "GOWNER",
	Distributor:  "GDISTRIBUTOR",
	Distributor2: "GDISTRIBUTOR2",
	Org1:         "ORG1",
	Org2:         "ORG2",
	Chaincert1:   "CHAINCERT1",
	Chaincert2:   "CHAINCERT2",
	ContentID:    "QmdtyfTYbVS3K9iYqBPjXxn4mbB7aBvEjYGzYWnzRcMrEC",
}

// Dates used by the end-to-end wallet scenario.
const (
	DistributionDate1 uint64 = 1680105831
	ExpirationDate1   uint64 = 1711662757
	DistributionDate2 uint64 = 1680205831
)

// NewDepositRequest builds a deposit issued by TestIDs.Distributor for org.
// A zero expiration means the chaincert never expires.
func NewDepositRequest(id models.ChaincertID, org models.OrganizationID, distributed, expires uint64) models.DepositRequest {
	req := models.DepositRequest{
		ChaincertID:      id,
		ContentID:        TestIDs.ContentID,
		Distributor:      TestIDs.Distributor,
		OrgID:            org,
		DistributionDate: distributed,
	}
	if expires != 0 {
		exp := expires
		req.ExpirationDate = &exp
	}
	return req
}
