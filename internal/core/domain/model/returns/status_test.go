package returns_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/returns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Parse(t *testing.T) {
	for _, name := range []string{"pending", "approved", "rejected", "processed"} {
		s, err := returns.ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}
	_, err := returns.ParseStatus("closed")
	assert.Error(t, err)
}

func TestStatus_IsOpen(t *testing.T) {
	assert.True(t, returns.StatusPending.IsOpen())
	assert.True(t, returns.StatusApproved.IsOpen())
	assert.False(t, returns.StatusRejected.IsOpen())
	assert.False(t, returns.StatusProcessed.IsOpen())
}

func TestParseKindAndRefund(t *testing.T) {
	k, err := returns.ParseKind("replace")
	require.NoError(t, err)
	assert.Equal(t, returns.KindReplace, k)

	_, err = returns.ParseKind("exchange")
	assert.Error(t, err)

	r, err := returns.ParseRefundStatus("")
	require.NoError(t, err)
	assert.Equal(t, returns.RefundNone, r)
	assert.Equal(t, "", r.String())

	r, err = returns.ParseRefundStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, returns.RefundPaid, r)
}
