package recovery

import (
	"errors"

	"custody-core/pkg/wallet/types"
)

var (
	ErrInvalidThreshold     = errors.New("invalid share threshold")
	ErrInvalidShares        = errors.New("invalid share set")
	ErrReconstructionFailed = errors.New("secret reconstruction failed")
)

// Strategy 把助记词等文本机密拆分为多份恢复分片，以及从分片还原机密。
// 任何少于门限数量的分片集合都不能泄露机密的任何信息。
type Strategy interface {
	// Split 把机密拆成 total 份，凑齐 threshold 份即可还原。
	Split(secret string, total, threshold int) ([]types.RecoveryShare, error)

	// Reconstruct 从分片还原机密。分片顺序无关。
	Reconstruct(shares []types.RecoveryShare) (string, error)
}
