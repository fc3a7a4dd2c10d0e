package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wallet-ledger/internal/model"
	"wallet-ledger/internal/store"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/errno"
	"wallet-ledger/pkg/logger"
)

func walletCacheKey(userID uint64) string {
	return fmt.Sprintf("wallet:balances:%d", userID)
}

// walletSnapshot 缓存里的余额快照。Decimal 走 JSON string，精度不丢。
type walletSnapshot struct {
	Balances map[model.Coin]decimal.Decimal `json:"balances"`
	Total    decimal.Decimal                `json:"total"`
}

// WalletService 面向看板的只读余额查询，读多写少，前面挡一层缓存。
// 写路径 (入账) 永远不经过这里——那是 ledger 引擎和 orchestrator 的事。
type WalletService struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration
}

func NewWalletService(st store.Store, c cache.Cache, ttl time.Duration) *WalletService {
	return &WalletService{store: st, cache: c, ttl: ttl}
}

// GetBalance 查询单个币种的余额。
func (s *WalletService) GetBalance(ctx context.Context, userID uint64, coin model.Coin) (decimal.Decimal, error) {
	if !coin.Valid() {
		return decimal.Zero, errno.ErrUnknownCoin
	}
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.Balances[coin], nil
}

// GetTotalBalance 查询全部币种余额之和。总额永远是实时求和的结果，
// 不在钱包行里存任何聚合值。
func (s *WalletService) GetTotalBalance(ctx context.Context, userID uint64) (decimal.Decimal, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return snap.Total, nil
}

// GetBalances 返回整个钱包快照 (看板首页一次拉全)。
func (s *WalletService) GetBalances(ctx context.Context, userID uint64) (map[model.Coin]decimal.Decimal, decimal.Decimal, error) {
	snap, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return snap.Balances, snap.Total, nil
}

func (s *WalletService) snapshot(ctx context.Context, userID uint64) (*walletSnapshot, error) {
	key := walletCacheKey(userID)

	var cached walletSnapshot
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrMiss {
		// 缓存故障只降级为直读，不影响正确性
		logger.Warn("余额缓存读取失败", zap.Uint64("user_id", userID), zap.Error(err))
	}

	w, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	snap := &walletSnapshot{
		Balances: w.Balances(),
		Total:    w.TotalBalance(),
	}
	if err := s.cache.Set(ctx, key, snap, s.ttl); err != nil {
		logger.Warn("余额缓存写入失败", zap.Uint64("user_id", userID), zap.Error(err))
	}
	return snap, nil
}
