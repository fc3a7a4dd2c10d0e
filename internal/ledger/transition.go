// Package ledger 是资金正确性的核心: 充值单状态机和余额记账引擎。
// 这里只有纯函数，不碰数据库也不打日志，持久化和观测都在 service 层。
package ledger

import (
	"time"

	"wallet-ledger/internal/model"
	"wallet-ledger/pkg/errno"
)

// Decision 管理员对充值单的处理决定。
type Decision string

const (
	DecisionConfirm Decision = "confirm"
	DecisionReject  Decision = "reject"
)

// ParseDecision 校验外部输入的 decision 字符串。
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionConfirm, DecisionReject:
		return Decision(s), nil
	default:
		return "", errno.ErrBind
	}
}

// Transition 在内存快照上执行状态迁移 pending -> confirmed|rejected。
// 不落库——持久化由 orchestrator 与余额写入放在同一个事务里完成。
//
// 规则:
//   - 只有 pending 可以迁移，其余一律 ErrAlreadyResolved (即使目标状态相同，
//     重复提交必须显式失败，方便审计，不做静默幂等)。
//   - confirm 额外要求 Amount 已填且严格为正，否则 ErrMissingAmount。
func Transition(tx model.DepositTransaction, d Decision, adminID uint64, now time.Time) (model.DepositTransaction, error) {
	if tx.Status != model.DepositStatusPending {
		return tx, errno.ErrAlreadyResolved
	}

	switch d {
	case DecisionConfirm:
		if tx.Amount == nil || !tx.Amount.IsPositive() {
			return tx, errno.ErrMissingAmount
		}
		tx.Status = model.DepositStatusConfirmed
	case DecisionReject:
		tx.Status = model.DepositStatusRejected
	default:
		return tx, errno.ErrBind
	}

	tx.ConfirmedAt = &now
	tx.ProcessedBy = &adminID
	return tx, nil
}
