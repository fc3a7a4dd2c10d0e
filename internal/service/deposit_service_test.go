package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/model"
	"wallet-ledger/pkg/errno"
)

func TestCreateDepositRequest(t *testing.T) {
	st := newMemStore()
	svc := NewDepositService(st)
	ctx := context.Background()

	d, err := svc.CreateDepositRequest(ctx, 7, model.CoinBitcoin)
	require.NoError(t, err)

	assert.NotZero(t, d.ID)
	assert.Equal(t, model.DepositStatusPending, d.Status)
	assert.Nil(t, d.Amount) // 金额由管理员确认前补填
	addr, ok := DepositAddress(model.CoinBitcoin)
	require.True(t, ok)
	assert.Equal(t, addr, d.WalletAddress)
}

func TestCreateDepositRequestUnknownCoin(t *testing.T) {
	st := newMemStore()
	svc := NewDepositService(st)

	_, err := svc.CreateDepositRequest(context.Background(), 7, model.Coin("dogecoin2"))
	assert.ErrorIs(t, err, errno.ErrUnknownCoin)
}

func TestListDepositsNewestFirst(t *testing.T) {
	st := newMemStore()
	svc := NewDepositService(st)
	ctx := context.Background()

	first, err := svc.CreateDepositRequest(ctx, 4, model.CoinTRX)
	require.NoError(t, err)
	second, err := svc.CreateDepositRequest(ctx, 4, model.CoinDOT)
	require.NoError(t, err)
	// 其他用户的单子不应出现
	_, err = svc.CreateDepositRequest(ctx, 5, model.CoinXLM)
	require.NoError(t, err)

	list, err := svc.ListDeposits(ctx, 4)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestSetAmount(t *testing.T) {
	st := newMemStore()
	svc := NewDepositService(st)
	ctx := context.Background()

	d, err := svc.CreateDepositRequest(ctx, 7, model.CoinUSDC)
	require.NoError(t, err)

	require.NoError(t, svc.SetAmount(ctx, d.ID, decimal.RequireFromString("120.50"), "wire ref 991"))

	stored := st.depositByID(d.ID)
	require.NotNil(t, stored.Amount)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, "wire ref 991", stored.AdminNotes)
}

func TestSetAmountValidation(t *testing.T) {
	st := newMemStore()
	svc := NewDepositService(st)
	ctx := context.Background()

	d, err := svc.CreateDepositRequest(ctx, 7, model.CoinUSDC)
	require.NoError(t, err)

	tests := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-10.00"},
		{"three decimals", "10.005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SetAmount(ctx, d.ID, decimal.RequireFromString(tt.amount), "")
			assert.ErrorIs(t, err, errno.ErrInvalidAmount)
		})
	}
}

func TestSetAmountOnResolvedDeposit(t *testing.T) {
	st := newMemStore()
	depositSvc := NewDepositService(st)
	resolutionSvc := NewResolutionService(st, &stubCache{}, "")
	ctx := context.Background()

	d, err := depositSvc.CreateDepositRequest(ctx, 7, model.CoinXRP)
	require.NoError(t, err)
	require.NoError(t, depositSvc.SetAmount(ctx, d.ID, decimal.RequireFromString("15.00"), ""))

	_, err = resolutionSvc.Resolve(ctx, d.ID, ledger.DecisionConfirm, 1, "")
	require.NoError(t, err)

	// 终态之后金额不允许再改
	err = depositSvc.SetAmount(ctx, d.ID, decimal.RequireFromString("99.00"), "")
	assert.ErrorIs(t, err, errno.ErrAlreadyResolved)
}
