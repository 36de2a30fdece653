package handler

import (
	"errors"

	"custody-core/internal/handler/request"
	"custody-core/internal/handler/response"
	"custody-core/internal/recovery"
	"custody-core/internal/wallet"
	"custody-core/pkg/errno"
	"custody-core/pkg/logger"
	"custody-core/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryHandler 分片备份/恢复接口，与转账流程相互独立
type RecoveryHandler struct {
	svc *wallet.Service
}

func NewRecoveryHandler(svc *wallet.Service) *RecoveryHandler {
	return &RecoveryHandler{svc: svc}
}

// Split 拆分机密为恢复分片
// @Summary 拆分机密
// @Tags Recovery
// @Router /api/v1/recovery/split [post]
func (h *RecoveryHandler) Split(c *gin.Context) {
	var req request.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	shares, err := h.svc.GenerateShares(req.Secret, req.Total, req.Threshold)
	if err != nil {
		logger.Error("拆分机密失败", zap.Int("total", req.Total), zap.Int("threshold", req.Threshold), zap.Error(err))
		response.Error(c, strategyErrno(errno.ErrSplitFailed, err))
		return
	}
	response.Success(c, gin.H{"shares": shares})
}

// Reconstruct 从分片还原机密
// @Summary 还原机密
// @Tags Recovery
// @Router /api/v1/recovery/reconstruct [post]
func (h *RecoveryHandler) Reconstruct(c *gin.Context) {
	var req request.ReconstructRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	secret, err := h.svc.ReconstructSecret(req.Shares)
	if err != nil {
		logger.Error("还原机密失败", zap.Int("shares", len(req.Shares)), zap.Error(err))
		response.Error(c, strategyErrno(errno.ErrReconstructFailed, err))
		return
	}
	response.Success(c, gin.H{"secret": secret})
}

// strategyErrno 把策略错误映射为对外信息。
// 哨兵错误是用户可处理的参数问题，给出明确提示；
// 其余错误 (熵源故障等) 细节只进日志，对外只给通用错误码。
func strategyErrno(base errno.Errno, err error) errno.Errno {
	switch {
	case errors.Is(err, recovery.ErrInvalidThreshold):
		return base.WithMessage("invalid total/threshold combination")
	case errors.Is(err, recovery.ErrInvalidShares):
		return base.WithMessage("invalid or incomplete share set")
	case errors.Is(err, recovery.ErrReconstructionFailed):
		return base.WithMessage("shares do not reconstruct a valid secret")
	}
	return base
}
