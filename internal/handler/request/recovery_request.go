package request

import "custody-core/pkg/wallet/types"

// SplitRequest 拆分机密参数
type SplitRequest struct {
	Secret    string `json:"secret" binding:"required"`
	Total     int    `json:"total" binding:"required,min=1"`
	Threshold int    `json:"threshold" binding:"required,min=1"`
}

// ReconstructRequest 还原机密参数
type ReconstructRequest struct {
	Shares []types.RecoveryShare `json:"shares" binding:"required,min=1"`
}
