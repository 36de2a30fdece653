package recovery

import (
	"errors"
	"testing"

	"custody-core/pkg/wallet/types"

	"github.com/stretchr/testify/assert"
)

func TestXORSplitReconstructRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		total  int
	}{
		{"单份", "my secret", 1},
		{"三份", "my secret", 3},
		{"助记词", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", 5},
		{"非 ASCII", "日本語のシード", 2},
	}

	s := NewXORStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := s.Split(tt.secret, tt.total, tt.total)
			if err != nil {
				t.Fatalf("拆分失败: %v", err)
			}
			assert.Len(t, shares, tt.total)

			got, err := s.Reconstruct(shares)
			if err != nil {
				t.Fatalf("还原失败: %v", err)
			}
			assert.Equal(t, tt.secret, got)
		})
	}
}

func TestXORReconstructOrderIndependent(t *testing.T) {
	s := NewXORStrategy()
	shares, err := s.Split("my secret", 3, 3)
	if err != nil {
		t.Fatalf("拆分失败: %v", err)
	}

	// 任意顺序还原结果一致
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}, {2, 0, 1}}
	for _, perm := range perms {
		shuffled := []types.RecoveryShare{shares[perm[0]], shares[perm[1]], shares[perm[2]]}
		got, err := s.Reconstruct(shuffled)
		if err != nil {
			t.Fatalf("还原失败 (顺序 %v): %v", perm, err)
		}
		assert.Equal(t, "my secret", got)
	}
}

func TestXORReconstructPartialSetFails(t *testing.T) {
	s := NewXORStrategy()
	shares, err := s.Split("my secret", 3, 3)
	if err != nil {
		t.Fatalf("拆分失败: %v", err)
	}

	// 任意两份都不够门限，也绝不能还原出原文
	pairs := [][]types.RecoveryShare{
		{shares[0], shares[1]},
		{shares[0], shares[2]},
		{shares[1], shares[2]},
	}
	for _, pair := range pairs {
		got, err := s.Reconstruct(pair)
		if !errors.Is(err, ErrInvalidShares) {
			t.Errorf("期望 ErrInvalidShares, 得到 err=%v got=%q", err, got)
		}
	}
}

func TestXORSplitThresholdMustEqualTotal(t *testing.T) {
	s := NewXORStrategy()

	// XOR 方案是 all-or-nothing 的，门限 != 总数一律拒绝
	_, err := s.Split("seed phrase here", 3, 2)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = s.Split("seed phrase here", 3, 4)
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = s.Split("seed phrase here", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestXORSplitEmptySecret(t *testing.T) {
	s := NewXORStrategy()
	_, err := s.Split("", 3, 3)
	assert.ErrorIs(t, err, ErrInvalidShares)
}

func TestXORReconstructBadInput(t *testing.T) {
	s := NewXORStrategy()

	_, err := s.Reconstruct(nil)
	assert.ErrorIs(t, err, ErrInvalidShares)

	// 非 base64 的分片
	_, err = s.Reconstruct([]types.RecoveryShare{
		{Index: 1, Payload: "!!!not-base64!!!", Threshold: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidShares)

	// 长度不一致的分片
	good, _ := s.Split("my secret", 2, 2)
	other, _ := s.Split("longer secret text", 2, 2)
	_, err = s.Reconstruct([]types.RecoveryShare{good[0], {Index: 2, Payload: other[1].Payload, Threshold: 2}})
	assert.ErrorIs(t, err, ErrInvalidShares)
}

func TestXORSharesLookRandom(t *testing.T) {
	s := NewXORStrategy()
	shares, err := s.Split("my secret", 2, 2)
	if err != nil {
		t.Fatalf("拆分失败: %v", err)
	}

	// 单份分片不等于原文的任何编码，两次拆分的 pad 也不同
	again, _ := s.Split("my secret", 2, 2)
	assert.NotEqual(t, shares[0].Payload, again[0].Payload)
}
