package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookInput struct {
	URL           string  `validate:"required,url"`
	Event         string  `validate:"required,oneof=unconfirmed-tx tx-confirmation double-spend-tx"`
	Confidence    float64 `validate:"omitempty,gt=0,lte=1"`
	Confirmations int     `validate:"gte=0,lte=10"`
}

func TestValidate(t *testing.T) {
	t.Run("passes for a valid struct", func(t *testing.T) {
		in := webhookInput{
			URL:           "https://example.com/callback",
			Event:         "tx-confirmation",
			Confidence:    0.95,
			Confirmations: 6,
		}

		assert.NoError(t, Validate(in))
	})

	t.Run("fails with ErrValidationFailed for missing required fields", func(t *testing.T) {
		err := Validate(webhookInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'URL'")
		assert.Contains(t, err.Error(), "'Event'")
	})

	t.Run("fails for out-of-range values", func(t *testing.T) {
		in := webhookInput{
			URL:           "https://example.com/callback",
			Event:         "tx-confirmation",
			Confidence:    1.5,
			Confirmations: 42,
		}

		err := Validate(in)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Confidence'")
		assert.Contains(t, err.Error(), "'Confirmations'")
	})

	t.Run("fails for an event outside the allowed set", func(t *testing.T) {
		in := webhookInput{
			URL:   "https://example.com/callback",
			Event: "tx-minted",
		}

		err := Validate(in)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
