package event

// Topic 常量。通知事件按 user_id 作为分区 Key，保证同一用户的通知有序。
const TopicNotifications = "ledger_events_notification"

// DepositResolvedEvent 充值单被处理 (确认或驳回) 后发出的事件。
// 外部通知系统消费它完成真正的投递 (邮件/推送)。
type DepositResolvedEvent struct {
	DepositID      uint64 `json:"deposit_id"`
	UserID         uint64 `json:"user_id"`
	Coin           string `json:"coin"`
	Amount         string `json:"amount,omitempty"` // Decimal string，驳回时为空
	Status         string `json:"status"`           // confirmed / rejected
	NotificationID uint64 `json:"notification_id"`
	Type           string `json:"type"` // deposit_confirmed / transaction
	Title          string `json:"title"`
	Message        string `json:"message"`
}
