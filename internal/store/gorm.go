package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wallet-ledger/internal/model"
	"wallet-ledger/pkg/errno"
)

// GormStore 基于 PostgreSQL 的 Store 实现。
// 行锁用 SELECT ... FOR UPDATE，终态写入用 status 条件更新双保险。
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) DepositForUpdate(ctx context.Context, id uint64) (*model.DepositTransaction, error) {
	var d model.DepositTransaction
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.ErrDepositNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormStore) FinishDeposit(ctx context.Context, d *model.DepositTransaction) error {
	// WHERE status = 'pending' 是幂等保证的最后一道闸:
	// 即使两个 resolver 都读到了 pending (理论上行锁已挡住)，
	// 也只有一个 UPDATE 会命中行。
	res := s.db.WithContext(ctx).
		Model(&model.DepositTransaction{}).
		Where("id = ? AND status = ?", d.ID, model.DepositStatusPending).
		Updates(map[string]interface{}{
			"status":       d.Status,
			"confirmed_at": d.ConfirmedAt,
			"processed_by": d.ProcessedBy,
			"admin_notes":  d.AdminNotes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errno.ErrAlreadyResolved
	}
	return nil
}

func (s *GormStore) WalletForUpdate(ctx context.Context, userID uint64) (*model.Wallet, error) {
	return s.walletLocked(ctx, userID, true)
}

func (s *GormStore) GetWallet(ctx context.Context, userID uint64) (*model.Wallet, error) {
	return s.walletLocked(ctx, userID, false)
}

func (s *GormStore) walletLocked(ctx context.Context, userID uint64, forUpdate bool) (*model.Wallet, error) {
	q := s.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var w model.Wallet
	err := q.Where("user_id = ?", userID).First(&w).Error
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 钱包在首次引用时惰性创建。并发创建靠 user_id 唯一索引 + DoNothing，
	// 然后重新读一次 (可能读到别人刚插入的行)。
	fresh := model.Wallet{UserID: userID}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&fresh).Error; err != nil {
		return nil, err
	}

	err = q.Where("user_id = ?", userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *GormStore) SaveWallet(ctx context.Context, w *model.Wallet) error {
	return s.db.WithContext(ctx).Save(w).Error
}

func (s *GormStore) CreateDeposit(ctx context.Context, d *model.DepositTransaction) error {
	return s.db.WithContext(ctx).Create(d).Error
}

func (s *GormStore) ListDeposits(ctx context.Context, userID uint64) ([]model.DepositTransaction, error) {
	var out []model.DepositTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) SetDepositAmount(ctx context.Context, id uint64, amount decimal.Decimal, notes string) error {
	updates := map[string]interface{}{"amount": amount}
	if notes != "" {
		updates["admin_notes"] = notes
	}
	res := s.db.WithContext(ctx).
		Model(&model.DepositTransaction{}).
		Where("id = ? AND status = ?", id, model.DepositStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 单子不存在，或已经处理完不允许再改金额
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.DepositTransaction{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errno.ErrDepositNotFound
		}
		return errno.ErrAlreadyResolved
	}
	return nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *GormStore) CreateOutbox(ctx context.Context, topic, key string, payload interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := model.OutboxMessage{
		Topic:   topic,
		Key:     key,
		Payload: payloadBytes,
		Status:  "PENDING",
	}
	return s.db.WithContext(ctx).Create(&msg).Error
}

func (s *GormStore) PendingOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	var messages []model.OutboxMessage
	err := s.db.WithContext(ctx).
		Where("status = ?", "PENDING").
		Order("id").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (s *GormStore) MarkOutboxSent(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.OutboxMessage{}).
		Where("id = ?", id).
		Update("status", "SENT").Error
}

func (s *GormStore) MarkEmailSent(ctx context.Context, depositID uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.DepositTransaction{}).
		Where("id = ?", depositID).
		Update("email_sent", true).Error
}
