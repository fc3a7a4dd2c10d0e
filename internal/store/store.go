// Package store 是账本的持久层边界。
// 接口刻意只暴露 orchestrator 和各 service 需要的窄操作，
// 所有资金相关写入都必须发生在 WithinTx 的原子单元里。
package store

import (
	"context"

	"github.com/shopspring/decimal"

	"wallet-ledger/internal/model"
)

type Store interface {
	// WithinTx 在单个原子单元内执行 fn。fn 返回错误则整体回滚，
	// 中间状态对外不可见。fn 收到的 Store 绑定在该事务上。
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	// DepositForUpdate 按主键加行锁读取充值单，不存在返回 ErrDepositNotFound。
	DepositForUpdate(ctx context.Context, id uint64) (*model.DepositTransaction, error)

	// FinishDeposit 把充值单写入终态。条件写: 只在当前仍是 pending 时生效，
	// 并发的第二个 resolver 在这里输掉，收到 ErrAlreadyResolved。
	FinishDeposit(ctx context.Context, d *model.DepositTransaction) error

	// WalletForUpdate 取出用户钱包并加行锁，不存在则先创建 (get-or-create)。
	WalletForUpdate(ctx context.Context, userID uint64) (*model.Wallet, error)

	// GetWallet 只读获取钱包 (同样 get-or-create，钱包在首次引用时出现)。
	GetWallet(ctx context.Context, userID uint64) (*model.Wallet, error)

	SaveWallet(ctx context.Context, w *model.Wallet) error

	CreateDeposit(ctx context.Context, d *model.DepositTransaction) error
	ListDeposits(ctx context.Context, userID uint64) ([]model.DepositTransaction, error)

	// SetDepositAmount 管理员在确认前补填金额，只允许改 pending 单。
	SetDepositAmount(ctx context.Context, id uint64, amount decimal.Decimal, notes string) error

	CreateNotification(ctx context.Context, n *model.Notification) error

	// CreateOutbox 在当前事务里追加一条 outbox 消息，由 RelayService 搬运。
	CreateOutbox(ctx context.Context, topic, key string, payload interface{}) error
	PendingOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, id uint64) error

	// MarkEmailSent 投递 worker 回写充值单的通知已发标记。
	MarkEmailSent(ctx context.Context, depositID uint64) error
}
