package handler

import (
	"custody-core/internal/handler/request"
	"custody-core/internal/handler/response"
	"custody-core/internal/wallet"
	"custody-core/pkg/errno"
	"custody-core/pkg/validator"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
)

// WalletHandler 转账流程接口，持有注入的编排层实例
type WalletHandler struct {
	svc *wallet.Service
}

func NewWalletHandler(svc *wallet.Service) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// LoadAccount 加载账户
// @Summary 加载账户并拉取余额/历史
// @Tags Wallet
// @Router /api/v1/wallet/load [post]
func (h *WalletHandler) LoadAccount(c *gin.Context) {
	var req request.LoadAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	if err := h.svc.LoadAccount(c.Request.Context(), req.Address, req.Chain); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.svc.Snapshot())
}

// RefreshBalance 刷新当前账户余额
// @Summary 刷新余额
// @Tags Wallet
// @Router /api/v1/wallet/refresh [post]
func (h *WalletHandler) RefreshBalance(c *gin.Context) {
	if err := h.svc.RefreshBalance(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, h.svc.Snapshot())
}

// Prepare 预备交易: 估费 → 模拟 → 风险分析
// @Summary 预备交易
// @Tags Wallet
// @Router /api/v1/wallet/prepare [post]
func (h *WalletHandler) Prepare(c *gin.Context) {
	var req request.PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	var payload []byte
	if req.Payload != "" {
		decoded, err := hexutil.Decode(req.Payload)
		if err != nil {
			response.Error(c, errno.ErrBind.WithMessage("payload must be 0x-prefixed hex"))
			return
		}
		payload = decoded
	}

	sim, alerts, err := h.svc.PrepareTransaction(c.Request.Context(), req.To, req.Value, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{
		"simulation": sim,
		"alerts":     alerts,
	})
}

// Confirm 确认交易: 签名 → 广播 → 刷新余额
// @Summary 确认交易
// @Tags Wallet
// @Router /api/v1/wallet/confirm [post]
func (h *WalletHandler) Confirm(c *gin.Context) {
	var req request.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	txHash, err := h.svc.ConfirmTransaction(c.Request.Context(), req.To, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"tx_hash": txHash})
}

// State 返回当前可观测状态快照
// @Summary 查询编排层状态
// @Tags Wallet
// @Router /api/v1/wallet/state [get]
func (h *WalletHandler) State(c *gin.Context) {
	response.Success(c, h.svc.Snapshot())
}
