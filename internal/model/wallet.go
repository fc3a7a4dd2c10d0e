package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet 用户钱包表，每个用户一行 (1:1)。
// 每个币种一列 USD 余额，numeric(15,2)。列是固定的，币种到列的映射
// 全部集中在 coinColumn 的 switch 里，编译期即可发现遗漏。
type Wallet struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex" json:"user_id"`

	BitcoinBalance  decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"bitcoin_balance"`
	EthereumBalance decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"ethereum_balance"`
	XRPBalance      decimal.Decimal `gorm:"column:xrp_balance;type:numeric(15,2);not null;default:0" json:"xrp_balance"`
	SolanaBalance   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"solana_balance"`
	USDTBalance     decimal.Decimal `gorm:"column:usdt_balance;type:numeric(15,2);not null;default:0" json:"usdt_balance"`
	XLMBalance      decimal.Decimal `gorm:"column:xlm_balance;type:numeric(15,2);not null;default:0" json:"xlm_balance"`
	ShibaBalance    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"shiba_balance"`
	USDCBalance     decimal.Decimal `gorm:"column:usdc_balance;type:numeric(15,2);not null;default:0" json:"usdc_balance"`
	DogeBalance     decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"doge_balance"`
	ADABalance      decimal.Decimal `gorm:"column:ada_balance;type:numeric(15,2);not null;default:0" json:"ada_balance"`
	DOTBalance      decimal.Decimal `gorm:"column:dot_balance;type:numeric(15,2);not null;default:0" json:"dot_balance"`
	TRXBalance      decimal.Decimal `gorm:"column:trx_balance;type:numeric(15,2);not null;default:0" json:"trx_balance"`

	// 历史遗留列，仅为兼容旧数据保留。新代码只读不写，也不计入总余额。
	RippleBalance   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"ripple_balance"`
	StellarBalance  decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"stellar_balance"`
	BNBBalance      decimal.Decimal `gorm:"column:bnb_balance;type:numeric(15,2);not null;default:0" json:"bnb_balance"`
	BNBTigerBalance decimal.Decimal `gorm:"column:bnb_tiger_balance;type:numeric(15,2);not null;default:0" json:"bnb_tiger_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// coinColumn 返回币种对应余额列的指针。唯一的币种->列映射点。
func (w *Wallet) coinColumn(c Coin) *decimal.Decimal {
	switch c {
	case CoinBitcoin:
		return &w.BitcoinBalance
	case CoinEthereum:
		return &w.EthereumBalance
	case CoinXRP:
		return &w.XRPBalance
	case CoinSolana:
		return &w.SolanaBalance
	case CoinUSDT:
		return &w.USDTBalance
	case CoinXLM:
		return &w.XLMBalance
	case CoinShiba:
		return &w.ShibaBalance
	case CoinUSDC:
		return &w.USDCBalance
	case CoinDoge:
		return &w.DogeBalance
	case CoinADA:
		return &w.ADABalance
	case CoinDOT:
		return &w.DOTBalance
	case CoinTRX:
		return &w.TRXBalance
	default:
		return nil
	}
}

// CoinBalance 读取指定币种余额，未知币种返回 0。
func (w *Wallet) CoinBalance(c Coin) decimal.Decimal {
	if col := w.coinColumn(c); col != nil {
		return *col
	}
	return decimal.Zero
}

// SetCoinBalance 覆写指定币种余额，未知币种返回 false。
// 只应由 ledger 包 (记账引擎) 调用，其余代码一律只读。
func (w *Wallet) SetCoinBalance(c Coin, v decimal.Decimal) bool {
	col := w.coinColumn(c)
	if col == nil {
		return false
	}
	*col = v
	return true
}

// TotalBalance 所有在用币种余额之和。永远实时计算，不落库不缓存行内。
func (w *Wallet) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, c := range ActiveCoins {
		total = total.Add(*w.coinColumn(c))
	}
	return total
}

// Balances 返回 币种 -> 余额 的快照，给余额查询接口用。
func (w *Wallet) Balances() map[Coin]decimal.Decimal {
	out := make(map[Coin]decimal.Decimal, len(ActiveCoins))
	for _, c := range ActiveCoins {
		out[c] = *w.coinColumn(c)
	}
	return out
}
