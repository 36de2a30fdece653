package recovery

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"custody-core/pkg/monitor"
	"custody-core/pkg/safe_random"
	"custody-core/pkg/wallet/types"
)

// XORStrategy 是 all-or-nothing 的拆分方案：n-1 份随机 pad 加一份
// secret 与所有 pad 的异或。必须集齐全部 n 份才能还原，任何真子集
// 在信息论意义上不泄露机密。因此门限必须等于总份数。
type XORStrategy struct{}

func NewXORStrategy() *XORStrategy {
	return &XORStrategy{}
}

func (XORStrategy) Split(secret string, total, threshold int) ([]types.RecoveryShare, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: total must be at least 1, got %d", ErrInvalidThreshold, total)
	}
	if threshold != total {
		return nil, fmt.Errorf("%w: xor splitting requires threshold == total, got %d of %d", ErrInvalidThreshold, threshold, total)
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidShares)
	}

	secretBytes := []byte(secret)
	parts := make([][]byte, total)

	// 前 n-1 份是独立的随机 pad
	for i := 0; i < total-1; i++ {
		pad, err := safe_random.GenerateRandomBytes(len(secretBytes))
		if err != nil {
			return nil, err
		}
		parts[i] = pad
	}

	// 最后一份 = secret XOR 所有 pad
	last := make([]byte, len(secretBytes))
	copy(last, secretBytes)
	for i := 0; i < total-1; i++ {
		for j := range last {
			last[j] ^= parts[i][j]
		}
	}
	parts[total-1] = last

	shares := make([]types.RecoveryShare, total)
	for i, part := range parts {
		shares[i] = types.RecoveryShare{
			Index:     i + 1,
			Payload:   base64.StdEncoding.EncodeToString(part),
			Threshold: threshold,
		}
	}

	if monitor.Business != nil {
		monitor.Business.SharesSplitTotal.WithLabelValues("xor").Inc()
	}
	return shares, nil
}

func (XORStrategy) Reconstruct(shares []types.RecoveryShare) (string, error) {
	if len(shares) == 0 {
		return "", fmt.Errorf("%w: no shares provided", ErrInvalidShares)
	}

	// 份数必须达到分片上声明的门限
	for _, share := range shares {
		if share.Threshold != len(shares) {
			return "", fmt.Errorf("%w: share declares threshold %d but %d shares provided", ErrInvalidShares, share.Threshold, len(shares))
		}
	}

	var acc []byte
	for _, share := range shares {
		part, err := base64.StdEncoding.DecodeString(share.Payload)
		if err != nil {
			return "", fmt.Errorf("%w: share %d is not valid base64", ErrInvalidShares, share.Index)
		}
		if acc == nil {
			acc = part
			continue
		}
		if len(part) != len(acc) {
			return "", fmt.Errorf("%w: share %d has mismatched length", ErrInvalidShares, share.Index)
		}
		// 异或满足交换律，分片顺序不影响结果
		for j := range acc {
			acc[j] ^= part[j]
		}
	}

	if !utf8.Valid(acc) {
		return "", ErrReconstructionFailed
	}
	return string(acc), nil
}
