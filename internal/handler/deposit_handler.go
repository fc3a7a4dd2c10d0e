package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"wallet-ledger/internal/handler/request"
	"wallet-ledger/internal/handler/response"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/errno"
	"wallet-ledger/pkg/validator"
)

// userID 从请求头取用户身份。
// 登录/会话由宿主应用把关，转发到这里时带上 X-User-ID，属于可信边界内。
func userID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

type DepositHandler struct {
	deposits *service.DepositService
}

func NewDepositHandler(deposits *service.DepositService) *DepositHandler {
	return &DepositHandler{deposits: deposits}
}

// Create 用户对某币种发起充值申请，返回 pending 单和收款地址
func (h *DepositHandler) Create(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	var req request.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	coin, err := model.ParseCoin(req.Coin)
	if err != nil {
		response.Error(c, err)
		return
	}

	d, err := h.deposits.CreateDepositRequest(c.Request.Context(), uid, coin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, d)
}

// List 用户的充值历史，最新在前
func (h *DepositHandler) List(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		response.Error(c, errno.ErrTokenInvalid)
		return
	}

	list, err := h.deposits.ListDeposits(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"transactions": list})
}
