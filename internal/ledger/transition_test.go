package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-ledger/internal/model"
	"wallet-ledger/pkg/errno"
)

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestTransitionConfirm(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tx := model.DepositTransaction{
		ID:       1,
		UserID:   7,
		CoinType: model.CoinBitcoin,
		Amount:   amt("250.00"),
		Status:   model.DepositStatusPending,
	}

	resolved, err := Transition(tx, DecisionConfirm, 42, now)
	require.NoError(t, err)
	assert.Equal(t, model.DepositStatusConfirmed, resolved.Status)
	require.NotNil(t, resolved.ConfirmedAt)
	assert.Equal(t, now, *resolved.ConfirmedAt)
	require.NotNil(t, resolved.ProcessedBy)
	assert.Equal(t, uint64(42), *resolved.ProcessedBy)

	// 入参快照不应被修改
	assert.Equal(t, model.DepositStatusPending, tx.Status)
}

func TestTransitionReject(t *testing.T) {
	now := time.Now()
	// 驳回不要求金额
	tx := model.DepositTransaction{ID: 2, Status: model.DepositStatusPending}

	resolved, err := Transition(tx, DecisionReject, 1, now)
	require.NoError(t, err)
	assert.Equal(t, model.DepositStatusRejected, resolved.Status)
	assert.NotNil(t, resolved.ConfirmedAt)
	assert.NotNil(t, resolved.ProcessedBy)
}

func TestTransitionMissingAmount(t *testing.T) {
	now := time.Now()
	zero := decimal.Zero

	tests := []struct {
		name   string
		amount *decimal.Decimal
	}{
		{"amount unset", nil},
		{"amount zero", &zero},
		{"amount negative", amt("-5.00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := model.DepositTransaction{Status: model.DepositStatusPending, Amount: tt.amount}
			resolved, err := Transition(tx, DecisionConfirm, 1, now)
			assert.ErrorIs(t, err, errno.ErrMissingAmount)
			assert.Equal(t, model.DepositStatusPending, resolved.Status)
		})
	}
}

func TestTransitionAlreadyResolved(t *testing.T) {
	now := time.Now()

	// 任何终态下，confirm/reject 都必须失败，不能静默成功
	tests := []struct {
		name     string
		status   model.DepositStatus
		decision Decision
	}{
		{"confirm a confirmed tx", model.DepositStatusConfirmed, DecisionConfirm},
		{"reject a confirmed tx", model.DepositStatusConfirmed, DecisionReject},
		{"confirm a rejected tx", model.DepositStatusRejected, DecisionConfirm},
		{"reject a rejected tx", model.DepositStatusRejected, DecisionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := model.DepositTransaction{Status: tt.status, Amount: amt("10.00")}
			_, err := Transition(tx, tt.decision, 1, now)
			assert.ErrorIs(t, err, errno.ErrAlreadyResolved)
		})
	}
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("confirm")
	require.NoError(t, err)
	assert.Equal(t, DecisionConfirm, d)

	d, err = ParseDecision("reject")
	require.NoError(t, err)
	assert.Equal(t, DecisionReject, d)

	_, err = ParseDecision("approve")
	assert.Error(t, err)
}
