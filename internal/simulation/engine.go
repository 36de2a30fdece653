package simulation

import (
	"context"
	"math/big"

	"custody-core/internal/chain"
	"custody-core/pkg/amount"
	"custody-core/pkg/config"
	"custody-core/pkg/monitor"
	"custody-core/pkg/wallet/types"
)

// Engine 对交易做只读的试运行：根据当前余额推演成功/失败和余额变动。
// 对链上状态绝无写入。
type Engine struct {
	provider chain.Provider
	chains   func(name string) *config.ChainConfig
}

func NewEngine(provider chain.Provider, chains func(name string) *config.ChainConfig) *Engine {
	return &Engine{provider: provider, chains: chains}
}

// Simulate 推演一笔交易。
//
// totalCost = value + gasLimit * maxFeePerGas，全部用任意精度整数计算。
// 余额不足时返回 success=false + "Insufficient funds" + 空变动映射；
// 余额或金额解析失败时返回错误，绝不静默按 0 处理。
func (e *Engine) Simulate(ctx context.Context, tx types.Transaction) (*types.SimulationResult, error) {
	bal, err := e.provider.FetchBalance(ctx, tx.From, tx.Chain)
	if err != nil {
		return nil, err
	}

	balance, err := amount.ParseBig(bal.Amount)
	if err != nil {
		return nil, err
	}
	value, err := amount.ParseBig(tx.Value)
	if err != nil {
		return nil, err
	}
	maxFee, err := amount.ParseBig(tx.MaxFeePerGas)
	if err != nil {
		return nil, err
	}

	gasCost := new(big.Int).Mul(new(big.Int).SetUint64(tx.GasLimit), maxFee)
	totalCost := new(big.Int).Add(value, gasCost)

	if balance.Cmp(totalCost) < 0 {
		e.count("failure")
		return &types.SimulationResult{
			Success:        false,
			GasUsed:        0,
			BalanceChanges: map[string]string{},
			Error:          "Insufficient funds",
		}, nil
	}

	// 标准 gas 消耗: 普通转账按链配置的最低值，合约调用按上限保守计
	gasUsed := tx.GasLimit
	if len(tx.Payload) == 0 {
		gasUsed = 21000
		if e.chains != nil {
			if cfg := e.chains(tx.Chain); cfg != nil {
				gasUsed = cfg.MinGasLimit
			}
		}
	}

	changes := make(map[string]string, 2)
	if tx.From == tx.To {
		// 自转账只消耗手续费
		net := new(big.Int).Neg(gasCost)
		changes[tx.From] = amount.Signed(net)
	} else {
		changes[tx.From] = amount.Signed(new(big.Int).Neg(totalCost))
		changes[tx.To] = amount.Signed(value)
	}

	e.count("success")
	return &types.SimulationResult{
		Success:        true,
		GasUsed:        gasUsed,
		BalanceChanges: changes,
	}, nil
}

func (e *Engine) count(result string) {
	if monitor.Business != nil {
		monitor.Business.SimulationTotal.WithLabelValues(result).Inc()
	}
}
