package risk

import (
	"fmt"
	"math/big"

	"custody-core/pkg/amount"
	"custody-core/pkg/monitor"
	"custody-core/pkg/wallet/types"
)

// zeroAddress 以太坊系链的销毁地址
const zeroAddress = "0x0000000000000000000000000000000000000000"

// BreachSink 在产生 critical 级告警时由策略层调用，用于审计。
type BreachSink interface {
	OnBreach(alert types.RiskAlert)
}

// Analyzer 根据模拟结果和交易本身产出风险告警。
// 规则彼此独立、全部求值 (不短路)，同样的输入永远得到同样的告警集合。
// 告警只是提示，是否拦截由编排层决定。
type Analyzer struct {
	// highValueThreshold 金额超过该值 (基础单位) 触发 "high value" 告警
	highValueThreshold *big.Int
}

func NewAnalyzer(highValueThreshold *big.Int) *Analyzer {
	return &Analyzer{highValueThreshold: highValueThreshold}
}

// Analyze 求值全部规则，返回累加的告警列表。
func (a *Analyzer) Analyze(sim *types.SimulationResult, tx types.Transaction) []types.RiskAlert {
	var alerts []types.RiskAlert

	if sim == nil || !sim.Success {
		desc := "Transaction simulation failed"
		if sim != nil && sim.Error != "" {
			desc = fmt.Sprintf("Transaction simulation failed: %s", sim.Error)
		}
		alerts = append(alerts, types.RiskAlert{
			Severity:    types.SeverityHigh,
			Description: desc,
		})
	}

	if a.highValueThreshold != nil {
		// 金额解析失败不在这里报错，模拟引擎会以解析错误拒绝这笔交易
		if v, err := amount.ParseBig(tx.Value); err == nil && v.Cmp(a.highValueThreshold) > 0 {
			alerts = append(alerts, types.RiskAlert{
				Severity:    types.SeverityMedium,
				Description: "High value transfer",
			})
		}
	}

	if len(tx.Payload) > 0 {
		alerts = append(alerts, types.RiskAlert{
			Severity:    types.SeverityMedium,
			Description: "Contract interaction",
		})
	}

	if tx.To == "" || tx.To == zeroAddress {
		alerts = append(alerts, types.RiskAlert{
			Severity:    types.SeverityCritical,
			Description: "Recipient is the zero address; funds sent there are unrecoverable",
		})
	}

	for _, alert := range alerts {
		if monitor.Business != nil {
			monitor.Business.RiskAlertTotal.WithLabelValues(string(alert.Severity)).Inc()
		}
	}
	return alerts
}
