package wallet

import (
	"custody-core/pkg/wallet/types"
)

// State 编排层对外可见的顶层状态。
// 状态转移: Idle → Loading → {Loaded | Error}
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// Snapshot 是编排层可观测状态的一致性快照。
// 任何时刻取到的快照都是某个操作完成后的完整状态，不存在半途可见的中间态。
// BalanceDisplay 是按链精度折算后的显示金额 (如 "0.5 ETH")，
// 余额运算一律使用 Balance.Amount 的基础单位，显示值仅供展示。
type Snapshot struct {
	State          State                   `json:"state"`
	Address        string                  `json:"address,omitempty"`
	Chain          string                  `json:"chain,omitempty"`
	Balance        *types.Balance          `json:"balance,omitempty"`
	BalanceDisplay string                  `json:"balance_display,omitempty"`
	History        []types.HistoryEntry    `json:"history,omitempty"`
	Simulation     *types.SimulationResult `json:"simulation,omitempty"`
	Alerts         []types.RiskAlert       `json:"alerts,omitempty"`
	LastTxHash     string                  `json:"last_tx_hash,omitempty"`
	Error          string                  `json:"error,omitempty"`
}
