package gas

import (
	"context"
	"fmt"
	"time"

	"custody-core/pkg/cache"
	"custody-core/pkg/config"
	"custody-core/pkg/crypto_util"
	"custody-core/pkg/wallet/types"
)

// Router 负责为待发交易计算费用参数。
// 估算结果只在一个短窗口内有效，调用方必须在签名前重新获取，
// 不允许把估算结果当作权威值长期持有。
type Router struct {
	chains func(name string) *config.ChainConfig
	cache  cache.Cache
	ttl    time.Duration
}

// NewRouter 创建费用路由。
// c 用于在 ttl 窗口内对相同输入返回相同结果 (幂等性要求)。
func NewRouter(chains func(name string) *config.ChainConfig, c cache.Cache, ttl time.Duration) *Router {
	return &Router{chains: chains, cache: c, ttl: ttl}
}

// Estimate 计算一次转账的费用参数。
//
// 空 payload 的普通转账返回链配置的最低成本 (ETH: 21000)。
// 带 payload 的合约调用这里返回配置的保守固定上限——这是一个近似值，
// 精确值需要对执行做真实模拟，当前实现不提供权威估算。
func (r *Router) Estimate(ctx context.Context, to, value string, payload []byte, chain string) (*types.GasEstimate, error) {
	cfg := r.chains(chain)
	if cfg == nil {
		return nil, fmt.Errorf("unknown chain %q", chain)
	}

	key := r.cacheKey(to, value, payload, chain)
	if r.cache != nil {
		var cached types.GasEstimate
		if err := r.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	est := &types.GasEstimate{
		MaxFeePerGas: cfg.DefaultFee,
		MaxPriority:  cfg.DefaultTip,
	}
	if len(payload) == 0 {
		est.GasLimit = cfg.MinGasLimit
	} else {
		est.GasLimit = cfg.CallGasLimit
	}

	if r.cache != nil {
		_ = r.cache.Set(ctx, key, est, r.ttl)
	}
	return est, nil
}

func (r *Router) cacheKey(to, value string, payload []byte, chain string) string {
	input := fmt.Sprintf("%s|%s|%x|%s", to, value, payload, chain)
	return "gas:" + crypto_util.CalculateBlake3([]byte(input))
}
