package model_test

import (
	"testing"
	"time"

	"github.com/Behyna/paygate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestTransactionState_Wire(t *testing.T) {
	assert.Equal(t, 1, model.TransactionStatePending.Wire())
	assert.Equal(t, 2, model.TransactionStatePaid.Wire())
	assert.Equal(t, -1, model.TransactionStateCancelled.Wire())
	assert.Equal(t, 0, model.TransactionState("BOGUS").Wire())
}

func TestTransactionState_CanTransitionTo(t *testing.T) {
	pending := model.TransactionStatePending
	paid := model.TransactionStatePaid
	cancelled := model.TransactionStateCancelled

	tests := []struct {
		from, to model.TransactionState
		allowed  bool
	}{
		{pending, paid, true},
		{pending, cancelled, true},
		{paid, cancelled, true},
		{pending, pending, false},
		{paid, pending, false},
		{paid, paid, false},
		{cancelled, pending, false},
		{cancelled, paid, false},
		{cancelled, cancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransaction_Expired(t *testing.T) {
	received := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tx := model.Transaction{State: model.TransactionStatePending, ReceivedAt: &received}

	t.Run("Within timeout", func(t *testing.T) {
		assert.False(t, tx.Expired(received.Add(time.Hour), 12*time.Hour))
	})

	t.Run("Past timeout", func(t *testing.T) {
		assert.True(t, tx.Expired(received.Add(13*time.Hour), 12*time.Hour))
	})

	t.Run("Zero timeout disables expiry", func(t *testing.T) {
		assert.False(t, tx.Expired(received.Add(1000*time.Hour), 0))
	})

	t.Run("Terminal states never expire", func(t *testing.T) {
		paid := model.Transaction{State: model.TransactionStatePaid, ReceivedAt: &received}
		assert.False(t, paid.Expired(received.Add(13*time.Hour), 12*time.Hour))
	})

	t.Run("Old provider time does not count", func(t *testing.T) {
		old := model.Transaction{
			State:      model.TransactionStatePending,
			CreatedAt:  time.UnixMilli(1700000000000),
			ReceivedAt: &received,
		}
		assert.False(t, old.Expired(received.Add(time.Minute), 12*time.Hour))
	})

	t.Run("Rows without a receive time never expire", func(t *testing.T) {
		legacy := model.Transaction{State: model.TransactionStatePending, CreatedAt: received}
		assert.False(t, legacy.Expired(received.Add(1000*time.Hour), 12*time.Hour))
	})
}
