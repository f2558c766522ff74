package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "chaincerts/pkg/domain-errors"
)

type depositBody struct {
	ChaincertID      string  `validate:"required,identifier"`
	ContentID        string  `validate:"required,notblank,max=256"`
	DistributionDate uint64  `validate:"required"`
	ExpirationDate   *uint64 `validate:"omitempty,gtfield=DistributionDate"`
}

func TestValidate(t *testing.T) {
	exp := uint64(1711662757)

	t.Run("valid body passes", func(t *testing.T) {
		require.NoError(t, Validate(depositBody{
			ChaincertID:      "CHAINCERT1",
			ContentID:        "QmdtyfTYbVS3K9iYqBPjXxn4mbB7aBvEjYGzYWnzRcMrEC",
			DistributionDate: 1680105831,
			ExpirationDate:   &exp,
		}))
	})

	t.Run("missing field reports snake_case name", func(t *testing.T) {
		err := Validate(depositBody{ContentID: "cid", DistributionDate: 1})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "chaincert_id is required", err.Error())
	})

	t.Run("identifier rejects whitespace", func(t *testing.T) {
		err := Validate(depositBody{ChaincertID: "CHAIN CERT", ContentID: "cid", DistributionDate: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chaincert_id must be")
	})

	t.Run("blank content id is rejected", func(t *testing.T) {
		err := Validate(depositBody{ChaincertID: "C1", ContentID: "   ", DistributionDate: 1})
		require.Error(t, err)
		assert.Equal(t, "content_id must not be blank", err.Error())
	})

	t.Run("expiration must follow distribution", func(t *testing.T) {
		early := uint64(10)
		err := Validate(depositBody{ChaincertID: "C1", ContentID: "cid", DistributionDate: 20, ExpirationDate: &early})
		require.Error(t, err)
		assert.Equal(t, "expiration_date must be after distribution_date", err.Error())
	})
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("ORG1"))
	assert.True(t, IsIdentifier("did:stellar:GABC-1_2.3"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("a/b"))
	assert.False(t, IsIdentifier(strings.Repeat("a", MaxIdentifierLength+1)))
}
