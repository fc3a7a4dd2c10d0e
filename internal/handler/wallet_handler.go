package handler

import (
	"github.com/gin-gonic/gin"

	"wallet-ledger/internal/handler/response"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/errno"
)

type WalletHandler struct {
	wallets *service.WalletService
}

func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// Balances 看板首页一次拉全: 各币种余额 + 实时求和的总额
func (h *WalletHandler) Balances(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	balances, total, err := h.wallets.GetBalances(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"balances":      balances,
		"total_balance": total,
	})
}

// CoinBalance 查询单个币种的余额
func (h *WalletHandler) CoinBalance(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	coin, err := model.ParseCoin(c.Param("coin"))
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.wallets.GetBalance(c.Request.Context(), uid, coin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"coin":    coin,
		"balance": balance,
	})
}
