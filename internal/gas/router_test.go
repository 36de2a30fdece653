package gas

import (
	"context"
	"testing"
	"time"

	"custody-core/pkg/cache"
	"custody-core/pkg/config"

	"github.com/stretchr/testify/assert"
)

func testChains() func(string) *config.ChainConfig {
	cfg := config.ChainConfig{
		Name:         "ETH",
		ChainID:      1,
		MinGasLimit:  21000,
		CallGasLimit: 100000,
		DefaultFee:   "1000000000",
		DefaultTip:   "100000000",
	}
	return func(name string) *config.ChainConfig {
		if name == "ETH" {
			return &cfg
		}
		return nil
	}
}

func TestEstimateSimpleTransfer(t *testing.T) {
	r := NewRouter(testChains(), nil, 0)

	est, err := r.Estimate(context.Background(), "0x22", "0x100", nil, "ETH")
	if err != nil {
		t.Fatalf("估算失败: %v", err)
	}

	// 空 payload 的普通转账按链最低成本
	assert.Equal(t, uint64(21000), est.GasLimit)
	assert.Equal(t, "1000000000", est.MaxFeePerGas)
	assert.Equal(t, "100000000", est.MaxPriority)
}

func TestEstimateContractCall(t *testing.T) {
	r := NewRouter(testChains(), nil, 0)

	est, err := r.Estimate(context.Background(), "0x22", "0", []byte{0xa9, 0x05, 0x9c, 0xbb}, "ETH")
	if err != nil {
		t.Fatalf("估算失败: %v", err)
	}

	// 带 payload 的调用返回保守上限
	assert.Equal(t, uint64(100000), est.GasLimit)
}

func TestEstimateUnknownChain(t *testing.T) {
	r := NewRouter(testChains(), nil, 0)
	_, err := r.Estimate(context.Background(), "0x22", "0x100", nil, "DOGE")
	assert.Error(t, err)
}

func TestEstimateIdempotentWithinWindow(t *testing.T) {
	ttl := time.Minute
	c := cache.NewMemoryCache(ttl, 2*ttl)
	r := NewRouter(testChains(), c, ttl)

	first, err := r.Estimate(context.Background(), "0x22", "0x100", nil, "ETH")
	if err != nil {
		t.Fatalf("估算失败: %v", err)
	}
	second, err := r.Estimate(context.Background(), "0x22", "0x100", nil, "ETH")
	if err != nil {
		t.Fatalf("估算失败: %v", err)
	}

	// 窗口内相同输入必须得到相同结果
	assert.Equal(t, first, second)

	// 不同输入不共享缓存
	other, err := r.Estimate(context.Background(), "0x22", "0x100", []byte{0x01}, "ETH")
	if err != nil {
		t.Fatalf("估算失败: %v", err)
	}
	assert.NotEqual(t, first.GasLimit, other.GasLimit)
}
