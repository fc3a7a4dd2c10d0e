package ledger

import (
	"github.com/shopspring/decimal"

	"wallet-ledger/internal/model"
	"wallet-ledger/pkg/errno"
)

// validAmount 金额必须严格为正，且最多 2 位小数 (USD 定点)。
// decimal 本身是精确运算，这里只是把精度约定挡在入口。
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(2))
}

// Credit 给钱包的指定币种入账。只增不减，所以永远不会有余额不足。
// 钱包在原地修改；金额非法时钱包保持不变。
func Credit(w *model.Wallet, coin model.Coin, amount decimal.Decimal) error {
	if !validAmount(amount) {
		return errno.ErrInvalidAmount
	}
	if !coin.Valid() {
		return errno.ErrUnknownCoin
	}
	w.SetCoinBalance(coin, w.CoinBalance(coin).Add(amount))
	return nil
}

// Debit 从钱包的指定币种出账。余额不足时返回 ErrInsufficientFunds，钱包不变。
// 充值确认用不到它，但钱包是通用的价值存储，出账是记账引擎契约的一部分
// (未来的提现/消费路径直接复用)。
func Debit(w *model.Wallet, coin model.Coin, amount decimal.Decimal) error {
	if !validAmount(amount) {
		return errno.ErrInvalidAmount
	}
	if !coin.Valid() {
		return errno.ErrUnknownCoin
	}
	current := w.CoinBalance(coin)
	if current.LessThan(amount) {
		return errno.ErrInsufficientFunds
	}
	w.SetCoinBalance(coin, current.Sub(amount))
	return nil
}
