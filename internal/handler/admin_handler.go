package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wallet-ledger/internal/handler/middleware"
	"wallet-ledger/internal/handler/request"
	"wallet-ledger/internal/handler/response"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/service"
	"wallet-ledger/pkg/errno"
	"wallet-ledger/pkg/validator"
)

// AdminHandler 管理端入口: 补填金额、确认/拒收充值。
// 身份由 middleware.AdminAuth 提供。
type AdminHandler struct {
	resolutions *service.ResolutionService
	deposits    *service.DepositService
}

func NewAdminHandler(resolutions *service.ResolutionService, deposits *service.DepositService) *AdminHandler {
	return &AdminHandler{resolutions: resolutions, deposits: deposits}
}

func depositIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Resolve 处理单笔充值: confirm 入账, reject 关单
func (h *AdminHandler) Resolve(c *gin.Context) {
	id, ok := depositIDParam(c)
	if !ok {
		response.Error(c, errno.ErrBind)
		return
	}

	var req request.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	decision, err := ledger.ParseDecision(req.Decision)
	if err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	receipt, err := h.resolutions.Resolve(c.Request.Context(), id, decision, middleware.AdminID(c), req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, receipt)
}

// ResolveBatch 批量处理, 每笔独立成败, 返回成功/失败明细
func (h *AdminHandler) ResolveBatch(c *gin.Context) {
	var req request.ResolveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	decision, err := ledger.ParseDecision(req.Decision)
	if err != nil {
		response.Error(c, errno.ErrBind)
		return
	}

	result := h.resolutions.ResolveBatch(c.Request.Context(), req.IDs, decision, middleware.AdminID(c), req.Notes)
	response.Success(c, result)
}

// SetAmount 在确认前补填到账金额 (只允许 pending 单)
func (h *AdminHandler) SetAmount(c *gin.Context) {
	id, ok := depositIDParam(c)
	if !ok {
		response.Error(c, errno.ErrBind)
		return
	}

	var req request.SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, errno.ErrInvalidAmount)
		return
	}

	if err := h.deposits.SetAmount(c.Request.Context(), id, amount, req.Notes); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
