package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"custody-core/internal/chain"
	"custody-core/internal/gas"
	"custody-core/internal/model"
	"custody-core/internal/mq"
	"custody-core/internal/recovery"
	"custody-core/internal/risk"
	"custody-core/internal/signer"
	"custody-core/internal/simulation"
	"custody-core/pkg/amount"
	"custody-core/pkg/config"
	"custody-core/pkg/errno"
	"custody-core/pkg/logger"
	"custody-core/pkg/monitor"
	"custody-core/pkg/wallet/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pendingTx 是一次成功 prepare 留下的待确认上下文。
// confirm 必须精确复用这笔交易，而不是按输入重新推导一遍，
// 否则两次调用之间费率或输入变化会导致签名的交易和用户看到的不一致。
type pendingTx struct {
	tx  types.Transaction
	sim *types.SimulationResult
}

// Deps 编排层的全部依赖，显式注入，不做任何全局查找。
// Producer 和 DB 可为 nil (不发事件 / 不写审计库)。
type Deps struct {
	Provider  chain.Provider
	Gas       *gas.Router
	Simulator *simulation.Engine
	Risk      *risk.Analyzer
	Breach    risk.BreachSink
	Signer    signer.Signer
	Recovery  recovery.Strategy
	Chains    func(name string) *config.ChainConfig
	Producer  mq.Producer
	DB        *gorm.DB
	Topic     string
}

// Service 是钱包编排层：把余额加载、费用估算、模拟、风险分析、
// 签名和广播串成一条线性管道，并持有对外可观测状态。
//
// 并发语义：共享状态的变更全部串行化；慢操作 (链上查询、授权闸口)
// 在锁外执行，结果按发起顺序提交，迟到的旧结果不允许覆盖新请求写入的状态。
type Service struct {
	deps Deps

	mu         sync.Mutex
	state      State
	address    string
	chain      string
	balance    *types.Balance
	history    []types.HistoryEntry
	pending    *pendingTx
	lastSim    *types.SimulationResult
	alerts     []types.RiskAlert
	lastTxHash string
	errMsg     string

	// 按发起顺序递增的序号，迟到的旧结果据此被丢弃
	loadSeq uint64
	prepSeq uint64
}

func NewService(deps Deps) *Service {
	return &Service{
		deps:  deps,
		state: StateIdle,
	}
}

// Snapshot 返回当前可观测状态的副本。
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:          s.state,
		Address:        s.address,
		Chain:          s.chain,
		Balance:        s.balance,
		BalanceDisplay: formatBalance(s.balance),
		History:        s.history,
		Simulation:     s.lastSim,
		Alerts:         s.alerts,
		LastTxHash:     s.lastTxHash,
		Error:          s.errMsg,
	}
}

// formatBalance 把基础单位余额折算为显示金额。折算失败不污染快照，留空。
func formatBalance(bal *types.Balance) string {
	if bal == nil {
		return ""
	}
	display, err := amount.FormatUnits(bal.Amount, bal.Decimals)
	if err != nil {
		return ""
	}
	return display + " " + bal.Currency
}

// LoadAccount 设定活跃账户并拉取余额和历史。
// 历史查询不被支持的链 (裸 RPC 节点) 按空历史处理，不算失败。
func (s *Service) LoadAccount(ctx context.Context, address, chainName string) error {
	if s.deps.Chains(chainName) == nil {
		return errno.ErrUnsupportedChain
	}

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.state = StateLoading
	s.address = address
	s.chain = chainName
	s.errMsg = ""
	s.mu.Unlock()

	balance, err := s.deps.Provider.FetchBalance(ctx, address, chainName)
	if err != nil {
		logger.Error("拉取余额失败", zap.String("address", address), zap.Error(err))
		s.commitLoadFailure(seq)
		return errno.ErrLoadAccount
	}

	history, err := s.deps.Provider.FetchHistory(ctx, address, chainName)
	if err != nil {
		if errors.Is(err, chain.ErrUnsupported) {
			history = nil
		} else {
			logger.Error("拉取历史失败", zap.String("address", address), zap.Error(err))
			s.commitLoadFailure(seq)
			return errno.ErrLoadAccount
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		// 已有更新的加载请求发出，本次结果作废
		return nil
	}
	s.state = StateLoaded
	s.balance = balance
	s.history = history
	return nil
}

func (s *Service) commitLoadFailure(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		return
	}
	s.state = StateError
	s.errMsg = errno.ErrLoadAccount.Message
}

// RefreshBalance 重新加载当前活跃账户。
func (s *Service) RefreshBalance(ctx context.Context) error {
	s.mu.Lock()
	address, chainName := s.address, s.chain
	s.mu.Unlock()

	if address == "" {
		return errno.ErrNoActiveAccount
	}
	return s.LoadAccount(ctx, address, chainName)
}

// PrepareTransaction 执行 费用估算 → 模拟 → 风险分析 管道，
// 并把构造出的交易连同模拟结果存为待确认上下文。
// 每次 prepare 作废之前的待确认上下文，不存在跨意图复用旧模拟结果。
func (s *Service) PrepareTransaction(ctx context.Context, to, value string, payload []byte) (*types.SimulationResult, []types.RiskAlert, error) {
	s.mu.Lock()
	if s.address == "" {
		s.mu.Unlock()
		return nil, nil, errno.ErrNoActiveAccount
	}
	from, chainName := s.address, s.chain
	s.prepSeq++
	seq := s.prepSeq
	s.pending = nil
	s.mu.Unlock()

	chainCfg := s.deps.Chains(chainName)
	if chainCfg == nil {
		return nil, nil, errno.ErrUnsupportedChain
	}

	estimate, err := s.deps.Gas.Estimate(ctx, to, value, payload, chainName)
	if err != nil {
		logger.Error("费用估算失败", zap.String("chain", chainName), zap.Error(err))
		s.commitPrepareFailure(seq)
		return nil, nil, errno.ErrPrepareFailed
	}

	nonce, err := s.deps.Provider.PendingNonce(ctx, from, chainName)
	if err != nil {
		logger.Error("查询 Nonce 失败", zap.String("address", from), zap.Error(err))
		s.commitPrepareFailure(seq)
		return nil, nil, errno.ErrPrepareFailed
	}

	tx := types.Transaction{
		Chain:        chainName,
		From:         from,
		To:           to,
		Value:        value,
		Payload:      payload,
		Nonce:        nonce,
		GasLimit:     estimate.GasLimit,
		MaxFeePerGas: estimate.MaxFeePerGas,
		MaxPriority:  estimate.MaxPriority,
		ChainID:      chainCfg.ChainID,
	}

	sim, err := s.deps.Simulator.Simulate(ctx, tx)
	if err != nil {
		logger.Error("交易模拟失败", zap.String("address", from), zap.Error(err))
		s.commitPrepareFailure(seq)
		return nil, nil, errno.ErrPrepareFailed
	}

	alerts := s.deps.Risk.Analyze(sim, tx)
	if s.deps.Breach != nil {
		for _, alert := range alerts {
			if alert.Severity == types.SeverityCritical {
				s.deps.Breach.OnBreach(alert)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.prepSeq {
		// 更新的 prepare 已发出，结果只返回给调用方，不落入共享状态
		return sim, alerts, nil
	}
	s.lastSim = sim
	s.alerts = alerts
	if sim.Success {
		s.pending = &pendingTx{tx: tx, sim: sim}
	}
	return sim, alerts, nil
}

func (s *Service) commitPrepareFailure(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.prepSeq {
		return
	}
	s.state = StateError
	s.errMsg = errno.ErrPrepareFailed.Message
}

// ConfirmTransaction 签名并广播此前 prepare 留下的待确认交易。
//
// 没有成功的 prepare 时立即失败，不触碰签名器和链；
// to/value 与待确认交易不一致同样拒绝，调用方必须重新 prepare。
// 意图校验通过后在锁内独占认领待确认上下文：并发的第二个 confirm
// 拿不到同一笔交易，同一次 prepare 至多签名广播一次；
// 认领后完成提交不再触碰 pending，迟到的完成不会覆盖更新的 prepare。
// 进入签名后的流程不可被调用方取消：中途放弃签名有密钥暴露
// 和 Nonce 复用的风险，必须跑到完成或明确失败。
func (s *Service) ConfirmTransaction(ctx context.Context, to, value string) (string, error) {
	s.mu.Lock()
	p := s.pending
	if p == nil || p.sim == nil || !p.sim.Success {
		s.mu.Unlock()
		return "", errno.ErrConfirmWithoutSim
	}
	if !sameIntent(p.tx, to, value) {
		s.mu.Unlock()
		return "", errno.ErrIntentMismatch
	}
	// 认领：从共享状态摘下待确认上下文，签名/广播失败后必须重新 prepare
	s.pending = nil
	tx := p.tx
	s.mu.Unlock()

	signCtx := context.WithoutCancel(ctx)

	signed, err := s.deps.Signer.SignTransaction(signCtx, tx)
	if err != nil {
		logger.Error("签名失败", zap.String("from", tx.From), zap.Error(err))
		s.setError(errno.ErrSignFailed.Message)
		switch {
		case errors.Is(err, signer.ErrKeyUnavailable):
			return "", errno.ErrAuthorization
		case errors.Is(err, signer.ErrUnsupportedChain):
			return "", errno.ErrUnsupportedChain
		}
		return "", errno.ErrSignFailed
	}

	txHash, err := s.deps.Provider.Broadcast(signCtx, signed.Raw, tx.Chain)
	if err != nil {
		logger.Error("广播失败", zap.String("tx_hash", signed.TxHash), zap.Error(err))
		s.countBroadcast(tx.Chain, "failure")
		s.recordAudit(tx, signed.TxHash, "failed")
		s.setError(errno.ErrBroadcastFailed.Message)
		return "", errno.ErrBroadcastFailed
	}

	s.countBroadcast(tx.Chain, "success")
	s.recordAudit(tx, txHash, "broadcast")
	s.publishEvent(signCtx, tx, txHash)

	s.mu.Lock()
	s.lastTxHash = txHash
	s.mu.Unlock()

	// 广播成功后刷新余额，失败只记日志，不影响已返回的交易哈希
	if err := s.RefreshBalance(ctx); err != nil {
		logger.Warn("广播后刷新余额失败", zap.Error(err))
	}
	return txHash, nil
}

// GenerateShares 把机密拆分为恢复分片，独立于转账流程。
func (s *Service) GenerateShares(secret string, total, threshold int) ([]types.RecoveryShare, error) {
	return s.deps.Recovery.Split(secret, total, threshold)
}

// ReconstructSecret 从分片还原机密。
func (s *Service) ReconstructSecret(shares []types.RecoveryShare) (string, error) {
	return s.deps.Recovery.Reconstruct(shares)
}

// sameIntent 判断确认的收款人/金额和待确认交易是否一致。
// 金额按数值比较，十进制和 0x 十六进制写法视为等价。
func sameIntent(tx types.Transaction, to, value string) bool {
	if tx.To != to {
		return false
	}
	want, err1 := amount.ParseBig(tx.Value)
	got, err2 := amount.ParseBig(value)
	if err1 != nil || err2 != nil {
		return tx.Value == value
	}
	return want.Cmp(got) == 0
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateError
	s.errMsg = msg
}

func (s *Service) countBroadcast(chainName, status string) {
	if monitor.Business != nil {
		monitor.Business.BroadcastTotal.WithLabelValues(chainName, status).Inc()
	}
}

// recordAudit 把广播结果写入审计库。审计失败只记日志，不影响主流程。
func (s *Service) recordAudit(tx types.Transaction, txHash, status string) {
	if s.deps.DB == nil {
		return
	}
	record := model.TransactionRecord{
		TxHash:    txHash,
		Chain:     tx.Chain,
		FromAddr:  tx.From,
		ToAddr:    tx.To,
		Value:     tx.Value,
		GasLimit:  tx.GasLimit,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := s.deps.DB.Create(&record).Error; err != nil {
		logger.Error("写入审计记录失败", zap.String("tx_hash", txHash), zap.Error(err))
	}
}

// publishEvent 向事件总线发布广播成功事件，下游对账/通知服务消费。
func (s *Service) publishEvent(ctx context.Context, tx types.Transaction, txHash string) {
	if s.deps.Producer == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"tx_hash":   txHash,
		"chain":     tx.Chain,
		"from":      tx.From,
		"to":        tx.To,
		"value":     tx.Value,
		"timestamp": time.Now().Unix(),
	})
	if err != nil {
		return
	}
	if err := s.deps.Producer.Publish(ctx, s.deps.Topic, tx.From, payload); err != nil {
		logger.Error("发布交易事件失败", zap.String("tx_hash", txHash), zap.Error(err))
	}
}
