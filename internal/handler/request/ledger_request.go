package request

// CreateDepositRequest 用户申请充值 (领取收款地址)
type CreateDepositRequest struct {
	Coin string `json:"coin" binding:"required"`
}

// ResolveRequest 管理员处理单笔充值
type ResolveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=confirm reject"`
	Notes    string `json:"notes"`
}

// ResolveBatchRequest 管理员批量处理
type ResolveBatchRequest struct {
	IDs      []uint64 `json:"ids" binding:"required,min=1"`
	Decision string   `json:"decision" binding:"required,oneof=confirm reject"`
	Notes    string   `json:"notes"`
}

// SetAmountRequest 管理员在确认前补填金额 (decimal string, 例如 "250.00")
type SetAmountRequest struct {
	Amount string `json:"amount" binding:"required"`
	Notes  string `json:"notes"`
}
