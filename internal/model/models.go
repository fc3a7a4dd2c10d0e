package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus 充值单状态机: pending -> confirmed | rejected (终态)
type DepositStatus string

const (
	DepositStatusPending   DepositStatus = "pending"
	DepositStatusConfirmed DepositStatus = "confirmed"
	DepositStatusRejected  DepositStatus = "rejected"
)

// Resolved 终态判断。终态之后不允许任何迁移。
func (s DepositStatus) Resolved() bool {
	return s == DepositStatusConfirmed || s == DepositStatusRejected
}

// DepositTransaction 充值记录表。
// Amount 在创建时为空 (用户只申请地址)，由管理员在确认前补填——
// 这是上游业务流程的约定，确认时只做前置校验，不重新设计。
type DepositTransaction struct {
	ID            uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64           `gorm:"not null;index" json:"user_id"`
	CoinType      Coin             `gorm:"type:varchar(20);not null" json:"coin_type"`
	Amount        *decimal.Decimal `gorm:"type:numeric(15,2)" json:"amount,omitempty"` // USD 计价，未填为 NULL
	WalletAddress string           `gorm:"type:varchar(255);not null" json:"wallet_address"`
	Status        DepositStatus    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminNotes    string           `gorm:"type:text" json:"admin_notes,omitempty"`
	EmailSent     bool             `gorm:"not null;default:false" json:"email_sent"`
	CreatedAt     time.Time        `json:"created_at"`
	ConfirmedAt   *time.Time       `json:"confirmed_at,omitempty"`
	ProcessedBy   *uint64          `gorm:"index" json:"processed_by,omitempty"` // 处理该单的管理员
}

// Notification 用户通知。投递 (邮件/推送) 由外部系统消费事件完成，这里只负责落库。
type Notification struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64     `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"type:varchar(20);not null" json:"type"`
	Title     string     `gorm:"type:varchar(200);not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}

// 通知类型。历史原因: 驳回通知的类型叫 "transaction" 而不是 "deposit_rejected"。
const (
	NotificationTypeDepositConfirmed = "deposit_confirmed"
	NotificationTypeTransaction      = "transaction"
)

// OutboxMessage 本地消息表 (Transactional Outbox)。
// 业务数据和事件在同一个事务中写入，RelayService 负责搬运到 MQ。
type OutboxMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Topic     string    `gorm:"type:varchar(255);not null" json:"topic"`
	Key       string    `gorm:"type:varchar(255)" json:"key"` // 分区 Key (user_id)，保证同一用户的事件有序
	Payload   []byte    `gorm:"type:text;not null" json:"payload"`
	Status    string    `gorm:"type:varchar(50);not null;default:'PENDING';index" json:"status"` // PENDING, SENT
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DepositTransaction) TableName() string {
	return "deposit_transactions"
}

func (Notification) TableName() string {
	return "notifications"
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}
