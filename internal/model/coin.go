package model

import (
	"wallet-ledger/pkg/errno"
)

// Coin 平台支持的币种枚举。
// 余额全部以 USD 计价，Coin 只决定记到 Wallet 的哪一列。
type Coin string

const (
	CoinBitcoin  Coin = "bitcoin"
	CoinEthereum Coin = "ethereum"
	CoinXRP      Coin = "xrp"
	CoinSolana   Coin = "solana"
	CoinUSDT     Coin = "usdt"
	CoinXLM      Coin = "xlm"
	CoinShiba    Coin = "shiba"
	CoinUSDC     Coin = "usdc"
	CoinDoge     Coin = "doge"
	CoinADA      Coin = "ada"
	CoinDOT      Coin = "dot"
	CoinTRX      Coin = "trx"
)

// ActiveCoins 当前可充值的 12 个币种。
// 历史遗留列 (ripple/stellar/bnb/bnb_tiger) 不在此列，新代码永远不写它们。
var ActiveCoins = []Coin{
	CoinBitcoin, CoinEthereum, CoinXRP, CoinSolana,
	CoinUSDT, CoinXLM, CoinShiba, CoinUSDC,
	CoinDoge, CoinADA, CoinDOT, CoinTRX,
}

var coinDisplayNames = map[Coin]string{
	CoinBitcoin:  "Bitcoin (BTC)",
	CoinEthereum: "Ethereum (ETH)",
	CoinXRP:      "Ripple (XRP)",
	CoinSolana:   "Solana (SOL)",
	CoinUSDT:     "Tether (USDT)",
	CoinXLM:      "Stellar Lumen (XLM)",
	CoinShiba:    "Shiba Inu (SHIB)",
	CoinUSDC:     "USD Coin (USDC)",
	CoinDoge:     "Dogecoin (DOGE)",
	CoinADA:      "Cardano (ADA)",
	CoinDOT:      "Polkadot (DOT)",
	CoinTRX:      "Tron (TRX)",
}

// ParseCoin 把外部输入转换为 Coin，未知币种返回 ErrUnknownCoin。
func ParseCoin(s string) (Coin, error) {
	c := Coin(s)
	if _, ok := coinDisplayNames[c]; !ok {
		return "", errno.ErrUnknownCoin
	}
	return c, nil
}

func (c Coin) String() string {
	return string(c)
}

// DisplayName 返回展示名，例如 "Bitcoin (BTC)"，用于通知文案。
func (c Coin) DisplayName() string {
	if name, ok := coinDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid 检查币种是否在枚举内。
func (c Coin) Valid() bool {
	_, ok := coinDisplayNames[c]
	return ok
}
