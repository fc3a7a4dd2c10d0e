package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wallet-ledger/internal/model"
	"wallet-ledger/internal/store"
	"wallet-ledger/pkg/errno"
	"wallet-ledger/pkg/logger"
)

// depositAddresses 平台收款地址簿: 用户申请充值时展示的固定地址。
// 地址只是信息性的，入账与否完全由管理员确认决定。
var depositAddresses = map[model.Coin]string{
	model.CoinBitcoin:  "bc1q2xekqjvkdgskms70rcwxtz2cx7kxst8jvn7d5j",
	model.CoinXRP:      "rMAqM3QKp5GyjfvARv3AmRii6X1e87FLLj",
	model.CoinEthereum: "0xB564FA8A7277f5BfBb995F3CAa5E9157057b632B",
	model.CoinSolana:   "Kf6TZgVVJnAGLpYxUJGqx71VMURWQzM4wFmprGdbWst",
	model.CoinUSDT:     "0xB564FA8A7277f5BfBb995F3CAa5E9157057b632B",
	model.CoinXLM:      "GA3BD7BIZTQM4EF2NINXK7PBMFN66UTZ4ORVQT3IWTATBGCNJ7X7WULD",
	model.CoinShiba:    "0xB564FA8A7277f5BfBb995F3CAa5E9157057b632B",
	model.CoinUSDC:     "0xB564FA8A7277f5BfBb995F3CAa5E9157057b632B",
	model.CoinDoge:     "DHUfr1Z4d6kNcbduzVVAkq15gzsNCAiYj5",
	model.CoinADA:      "addr1qysn9wqy92234vypjucezjttrqe54zw6refauhluvq7n9tgvvver6qlrx02zc3dk55twmnykec5kzaxtf0q8ramhnkqszrjfxa",
	model.CoinDOT:      "12VsN9TAPHjJxMEseZAtE3FsiuHLTvHMU7Q2nZ4vuNSwunkQ",
	model.CoinTRX:      "TUgFkhoaVdcEVHpeMnYmYjYFZhEMJzSRQH",
}

// DepositService 处理充值申请侧: 用户领取充值地址 (建 pending 单)、
// 查历史，管理员在确认前补填金额。
type DepositService struct {
	store store.Store
}

func NewDepositService(st store.Store) *DepositService {
	return &DepositService{store: st}
}

// CreateDepositRequest 用户对某币种发起充值申请。
// 新单为 pending 且金额为空——金额由管理员在确认前补填。
func (s *DepositService) CreateDepositRequest(ctx context.Context, userID uint64, coin model.Coin) (*model.DepositTransaction, error) {
	if !coin.Valid() {
		return nil, errno.ErrUnknownCoin
	}

	d := &model.DepositTransaction{
		UserID:        userID,
		CoinType:      coin,
		WalletAddress: depositAddresses[coin],
		Status:        model.DepositStatusPending,
	}

	if err := s.store.CreateDeposit(ctx, d); err != nil {
		return nil, mapStoreErr(err)
	}

	logger.Info("创建充值申请",
		zap.Uint64("deposit_id", d.ID),
		zap.Uint64("user_id", userID),
		zap.String("coin", coin.String()))
	return d, nil
}

// ListDeposits 用户的充值历史，最新在前。
func (s *DepositService) ListDeposits(ctx context.Context, userID uint64) ([]model.DepositTransaction, error) {
	out, err := s.store.ListDeposits(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return out, nil
}

// SetAmount 管理员在确认前补填金额 (只允许 pending 单)。
// 金额来源和审核依据是上游业务的事，这里只做精度校验。
func (s *DepositService) SetAmount(ctx context.Context, depositID uint64, amount decimal.Decimal, notes string) error {
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(2)) {
		return errno.ErrInvalidAmount
	}
	if err := s.store.SetDepositAmount(ctx, depositID, amount, notes); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// DepositAddress 返回币种的收款地址，给前端展示用。
func DepositAddress(coin model.Coin) (string, bool) {
	addr, ok := depositAddresses[coin]
	return addr, ok
}
