package recovery

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"custody-core/pkg/monitor"
	"custody-core/pkg/wallet/types"

	"github.com/hashicorp/vault/shamir"
)

// ShamirStrategy 用 Shamir 秘密共享实现真正的 k-of-n 门限拆分，
// 适合把分片交给多个托管人而不要求全员到场的场景。
type ShamirStrategy struct{}

func NewShamirStrategy() *ShamirStrategy {
	return &ShamirStrategy{}
}

func (ShamirStrategy) Split(secret string, total, threshold int) ([]types.RecoveryShare, error) {
	if threshold < 2 || threshold > total || total > 255 {
		return nil, fmt.Errorf("%w: need 2 <= threshold <= total <= 255, got %d of %d", ErrInvalidThreshold, threshold, total)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidShares)
	}

	parts, err := shamir.Split([]byte(secret), total, threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShares, err)
	}

	shares := make([]types.RecoveryShare, len(parts))
	for i, part := range parts {
		shares[i] = types.RecoveryShare{
			Index:     i + 1,
			Payload:   base64.StdEncoding.EncodeToString(part),
			Threshold: threshold,
		}
	}

	if monitor.Business != nil {
		monitor.Business.SharesSplitTotal.WithLabelValues("shamir").Inc()
	}
	return shares, nil
}

func (ShamirStrategy) Reconstruct(shares []types.RecoveryShare) (string, error) {
	if len(shares) < 2 {
		return "", fmt.Errorf("%w: need at least 2 shares", ErrInvalidShares)
	}
	for _, share := range shares {
		if len(shares) < share.Threshold {
			return "", fmt.Errorf("%w: share declares threshold %d but only %d shares provided", ErrInvalidShares, share.Threshold, len(shares))
		}
	}

	parts := make([][]byte, len(shares))
	for i, share := range shares {
		part, err := base64.StdEncoding.DecodeString(share.Payload)
		if err != nil {
			return "", fmt.Errorf("%w: share %d is not valid base64", ErrInvalidShares, share.Index)
		}
		parts[i] = part
	}

	secret, err := shamir.Combine(parts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReconstructionFailed, err)
	}
	if !utf8.Valid(secret) {
		return "", ErrReconstructionFailed
	}
	return string(secret), nil
}
