package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wallet-ledger/internal/event"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/store"
	"wallet-ledger/pkg/cache"
	"wallet-ledger/pkg/errno"
	"wallet-ledger/pkg/logger"
	"wallet-ledger/pkg/monitor"
)

// ResolutionService 是充值确认的唯一入口 (管理后台、批量操作、
// 未来的自动对账器都走这里)。一次 Resolve 是一个原子单元:
// 状态迁移、入账、通知落库要么同时提交，要么全部回滚——
// 账本和充值流水不可能对一笔充值是否入账产生分歧。
type ResolutionService struct {
	store store.Store
	cache cache.Cache
	topic string
}

func NewResolutionService(st store.Store, c cache.Cache, topic string) *ResolutionService {
	if topic == "" {
		topic = event.TopicNotifications
	}
	return &ResolutionService{store: st, cache: c, topic: topic}
}

// ResolutionReceipt 单笔处理的结果回执。
type ResolutionReceipt struct {
	DepositID  uint64              `json:"deposit_id"`
	UserID     uint64              `json:"user_id"`
	Coin       model.Coin          `json:"coin"`
	Amount     *decimal.Decimal    `json:"amount,omitempty"`
	Status     model.DepositStatus `json:"status"`
	NewBalance *decimal.Decimal    `json:"new_balance,omitempty"` // 确认后该币种的余额
	ResolvedAt time.Time           `json:"resolved_at"`
}

// Resolve 处理一笔充值单。
//
// 并发语义: 行锁 + FinishDeposit 的 status 条件写保证同一单子
// 只有第一个提交成功的 resolver 赢，其余都拿到 ErrAlreadyResolved，
// 钱包绝不会被重复入账。StoreUnavailable 时整单可安全重试。
func (s *ResolutionService) Resolve(ctx context.Context, depositID uint64, decision ledger.Decision, adminID uint64, notes string) (*ResolutionReceipt, error) {
	logger.Info("充值单处理开始",
		zap.Uint64("deposit_id", depositID),
		zap.String("decision", string(decision)),
		zap.Uint64("admin_id", adminID))

	var receipt *ResolutionReceipt

	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		d, err := tx.DepositForUpdate(ctx, depositID)
		if err != nil {
			return err
		}

		resolved, err := ledger.Transition(*d, decision, adminID, time.Now())
		if err != nil {
			return err
		}
		if notes != "" {
			resolved.AdminNotes = notes
		}

		var newBalance *decimal.Decimal
		if decision == ledger.DecisionConfirm {
			w, err := tx.WalletForUpdate(ctx, d.UserID)
			if err != nil {
				return err
			}
			if err := ledger.Credit(w, d.CoinType, *d.Amount); err != nil {
				return err
			}
			if err := tx.SaveWallet(ctx, w); err != nil {
				return err
			}
			b := w.CoinBalance(d.CoinType)
			newBalance = &b
		}
		// 驳回不碰钱包

		if err := tx.FinishDeposit(ctx, &resolved); err != nil {
			return err
		}

		// 通知和事件与资金写入同一个事务落库 (Transactional Outbox):
		// 每笔已处理的单子恰好产生一条通知，投递失败由 Relay 重试，
		// 永远不会反过来影响已提交的入账。
		n := buildNotification(&resolved)
		if err := tx.CreateNotification(ctx, n); err != nil {
			return err
		}
		if err := tx.CreateOutbox(ctx, s.topic, fmt.Sprintf("%d", resolved.UserID), buildEvent(&resolved, n)); err != nil {
			return err
		}

		receipt = &ResolutionReceipt{
			DepositID:  resolved.ID,
			UserID:     resolved.UserID,
			Coin:       resolved.CoinType,
			Amount:     resolved.Amount,
			Status:     resolved.Status,
			NewBalance: newBalance,
			ResolvedAt: *resolved.ConfirmedAt,
		}
		return nil
	})

	if err != nil {
		err = mapStoreErr(err)
		monitor.ResolutionsTotal.WithLabelValues(string(decision), outcomeLabel(err)).Inc()
		logger.Warn("充值单处理失败",
			zap.Uint64("deposit_id", depositID),
			zap.String("decision", string(decision)),
			zap.Error(err))
		return nil, err
	}

	monitor.ResolutionsTotal.WithLabelValues(string(decision), string(receipt.Status)).Inc()
	if receipt.Status == model.DepositStatusConfirmed && receipt.Amount != nil {
		f, _ := receipt.Amount.Float64()
		monitor.CreditedTotal.WithLabelValues(receipt.Coin.String()).Add(f)
		// 余额已变，踢掉读缓存。缓存失效失败只record，不影响已提交的账
		if err := s.cache.Delete(ctx, walletCacheKey(receipt.UserID)); err != nil {
			logger.Warn("余额缓存失效失败", zap.Uint64("user_id", receipt.UserID), zap.Error(err))
		}
	}

	logger.Info("充值单处理成功",
		zap.Uint64("deposit_id", receipt.DepositID),
		zap.String("status", string(receipt.Status)),
		zap.Uint64("admin_id", adminID))
	return receipt, nil
}

// BatchFailure 批量处理中单笔失败的明细。
type BatchFailure struct {
	DepositID uint64 `json:"deposit_id"`
	Code      int    `json:"code"`
	Reason    string `json:"reason"`
}

// BatchResult 批量处理结果，永远是逐单明细，不做整体成败。
type BatchResult struct {
	Succeeded []uint64       `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

// ResolveBatch 批量处理。每一单是独立的原子单元:
// 某一单失败 (比如没填金额) 不影响、也不回滚其他单。
func (s *ResolutionService) ResolveBatch(ctx context.Context, ids []uint64, decision ledger.Decision, adminID uint64, notes string) BatchResult {
	result := BatchResult{
		Succeeded: make([]uint64, 0, len(ids)),
		Failed:    make([]BatchFailure, 0),
	}

	for _, id := range ids {
		if _, err := s.Resolve(ctx, id, decision, adminID, notes); err != nil {
			code, msg := errno.Decode(err)
			result.Failed = append(result.Failed, BatchFailure{DepositID: id, Code: code, Reason: msg})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	return result
}

// buildNotification 生成用户可见的通知文案。
// 文案沿用线上版本; 驳回通知的类型历史上就叫 "transaction"。
func buildNotification(d *model.DepositTransaction) *model.Notification {
	if d.Status == model.DepositStatusConfirmed {
		return &model.Notification{
			UserID: d.UserID,
			Type:   model.NotificationTypeDepositConfirmed,
			Title:  "Deposit Confirmed ✓",
			Message: fmt.Sprintf("Your %s deposit of $%s has been confirmed and credited to your account.",
				d.CoinType.DisplayName(), d.Amount.StringFixed(2)),
		}
	}
	return &model.Notification{
		UserID: d.UserID,
		Type:   model.NotificationTypeTransaction,
		Title:  "Deposit Rejected",
		Message: fmt.Sprintf("Your %s deposit has been rejected. Please contact support for more information.",
			d.CoinType.DisplayName()),
	}
}

func buildEvent(d *model.DepositTransaction, n *model.Notification) event.DepositResolvedEvent {
	e := event.DepositResolvedEvent{
		DepositID:      d.ID,
		UserID:         d.UserID,
		Coin:           d.CoinType.String(),
		Status:         string(d.Status),
		NotificationID: n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
	}
	if d.Status == model.DepositStatusConfirmed && d.Amount != nil {
		e.Amount = d.Amount.StringFixed(2)
	}
	return e
}

// mapStoreErr 把存储层的未知错误归类为可重试的 StoreUnavailable；
// 业务错误 (errno) 原样透传。
func mapStoreErr(err error) error {
	if _, ok := err.(errno.Errno); ok {
		return err
	}
	if _, ok := err.(*errno.Errno); ok {
		return err
	}
	logger.Error("存储层错误", zap.Error(err))
	return errno.ErrStoreUnavailable
}

func outcomeLabel(err error) string {
	switch {
	case errno.Is(err, errno.ErrAlreadyResolved):
		return "already_resolved"
	case errno.Is(err, errno.ErrMissingAmount):
		return "missing_amount"
	case errno.Is(err, errno.ErrInvalidAmount):
		return "invalid_amount"
	case errno.Is(err, errno.ErrDepositNotFound):
		return "not_found"
	default:
		return "store_error"
	}
}
