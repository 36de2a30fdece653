package risk

import (
	"math/big"
	"testing"

	"custody-core/pkg/wallet/types"

	"github.com/stretchr/testify/assert"
)

func okSim() *types.SimulationResult {
	return &types.SimulationResult{Success: true, GasUsed: 21000, BalanceChanges: map[string]string{}}
}

func plainTx() types.Transaction {
	return types.Transaction{
		Chain: "ETH",
		From:  "0x1111111111111111111111111111111111111111",
		To:    "0x2222222222222222222222222222222222222222",
		Value: "1000",
	}
}

func TestAnalyzeRules(t *testing.T) {
	threshold := big.NewInt(1_000_000)
	a := NewAnalyzer(threshold)

	tests := []struct {
		name       string
		sim        *types.SimulationResult
		mutate     func(*types.Transaction)
		severities []types.Severity
	}{
		{
			name:       "无告警",
			sim:        okSim(),
			mutate:     func(tx *types.Transaction) {},
			severities: nil,
		},
		{
			name:       "模拟失败",
			sim:        &types.SimulationResult{Success: false, Error: "Insufficient funds"},
			mutate:     func(tx *types.Transaction) {},
			severities: []types.Severity{types.SeverityHigh},
		},
		{
			name:       "大额转账",
			sim:        okSim(),
			mutate:     func(tx *types.Transaction) { tx.Value = "2000000" },
			severities: []types.Severity{types.SeverityMedium},
		},
		{
			name:       "合约交互",
			sim:        okSim(),
			mutate:     func(tx *types.Transaction) { tx.Payload = []byte{0xa9} },
			severities: []types.Severity{types.SeverityMedium},
		},
		{
			name:       "零地址收款",
			sim:        okSim(),
			mutate:     func(tx *types.Transaction) { tx.To = zeroAddress },
			severities: []types.Severity{types.SeverityCritical},
		},
		{
			name: "规则叠加",
			sim:  &types.SimulationResult{Success: false, Error: "Insufficient funds"},
			mutate: func(tx *types.Transaction) {
				tx.Value = "2000000"
				tx.Payload = []byte{0xa9}
				tx.To = ""
			},
			severities: []types.Severity{
				types.SeverityHigh,
				types.SeverityMedium,
				types.SeverityMedium,
				types.SeverityCritical,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := plainTx()
			tt.mutate(&tx)

			alerts := a.Analyze(tt.sim, tx)
			var got []types.Severity
			for _, alert := range alerts {
				got = append(got, alert.Severity)
			}
			assert.Equal(t, tt.severities, got)
		})
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := NewAnalyzer(big.NewInt(1_000_000))
	tx := plainTx()
	tx.Value = "2000000"
	tx.Payload = []byte{0x01}

	// 相同输入永远得到相同告警集合
	first := a.Analyze(okSim(), tx)
	second := a.Analyze(okSim(), tx)
	assert.Equal(t, first, second)
}

func TestAnalyzeThresholdBoundary(t *testing.T) {
	a := NewAnalyzer(big.NewInt(1000))
	tx := plainTx()

	// 等于阈值不告警，超过才告警
	tx.Value = "1000"
	assert.Empty(t, a.Analyze(okSim(), tx))

	tx.Value = "1001"
	alerts := a.Analyze(okSim(), tx)
	assert.Len(t, alerts, 1)
	assert.Equal(t, "High value transfer", alerts[0].Description)
}
