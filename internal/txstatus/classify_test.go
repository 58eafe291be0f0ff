package txstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPolled(t *testing.T) {
	t.Run("zero confirmations classify as unconfirmed with confidence data", func(t *testing.T) {
		status := ClassifyPolled(0, 0.93, true)

		assert.Equal(t, PollStateUnconfirmed, status.Status)
		assert.Equal(t, int64(0), status.Confirmations)
		assert.InDelta(t, 0.93, status.Confidence, 1e-12)
		assert.True(t, status.DoubleSpend)
	})

	t.Run("one through five confirmations classify as confirming", func(t *testing.T) {
		for _, confirmations := range []int64{1, 2, 5} {
			status := ClassifyPolled(confirmations, 0.5, false)

			assert.Equal(t, PollStateConfirming, status.Status)
			assert.Equal(t, confirmations, status.Confirmations)
			assert.Zero(t, status.Confidence, "confidence only applies to unconfirmed transactions")
			assert.False(t, status.DoubleSpend)
		}
	})

	t.Run("six or more confirmations classify as confirmed", func(t *testing.T) {
		for _, confirmations := range []int64{6, 7, 100} {
			status := ClassifyPolled(confirmations, 0, false)

			assert.Equal(t, PollStateConfirmed, status.Status)
			assert.Equal(t, confirmations, status.Confirmations)
		}
	})

	t.Run("boundary sits exactly at six", func(t *testing.T) {
		assert.Equal(t, PollStateConfirming, ClassifyPolled(5, 0, false).Status)
		assert.Equal(t, PollStateConfirmed, ClassifyPolled(6, 0, false).Status)
	})
}
