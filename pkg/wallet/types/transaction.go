package types

// Transaction 表示一笔待签名的转账交易。
// 构造完成后不可变：收款人或金额变化时必须重新构造，禁止原地修改。
// 金额一律使用任意精度的字符串表示 (十进制或 0x 前缀十六进制)，
// 避免大额余额在 uint64 上溢出。
type Transaction struct {
	Chain        string `json:"chain"`            // 链名称 (ETH, BTC)
	From         string `json:"from"`             // 发送方地址
	To           string `json:"to"`               // 接收方地址
	Value        string `json:"value"`            // 金额 (基础单位: Wei, Satoshi)
	Payload      []byte `json:"payload,omitempty"` // 合约调用数据，普通转账为空
	Nonce        uint64 `json:"nonce"`            // 账户 Nonce
	GasLimit     uint64 `json:"gas_limit"`        // Gas 上限
	MaxFeePerGas string `json:"max_fee_per_gas"`  // 每单位 Gas 最高费用 (EIP-1559)
	MaxPriority  string `json:"max_priority_fee"` // 小费上限 (EIP-1559)
	ChainID      int64  `json:"chain_id"`         // EIP-155 重放保护
}

// GasEstimate 是一次费用估算的结果。
// 每次 prepare/confirm 周期内重新获取，禁止长期缓存 (估算会过期)。
type GasEstimate struct {
	GasLimit     uint64 `json:"gas_limit"`
	MaxFeePerGas string `json:"max_fee_per_gas"`
	MaxPriority  string `json:"max_priority_fee"`
}

// SimulationResult 是一次只读模拟执行的结果。
// BalanceChanges 的 value 是带 +/- 前缀的十进制字符串。
type SimulationResult struct {
	Success        bool              `json:"success"`
	GasUsed        uint64            `json:"gas_used"`
	BalanceChanges map[string]string `json:"balance_changes"`
	Error          string            `json:"error,omitempty"`
}

// Severity 风险告警级别
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskAlert 是风险分析器产出的单条告警。
// 告警仅作提示，本身不阻止签名，是否放行由编排层决定。
type RiskAlert struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// SignedData 是一次成功签名的产物，可直接广播。
// 同一份 SignedData 不得跨链/跨广播目标复用。
type SignedData struct {
	Raw       []byte `json:"raw"`       // 序列化后的已签名交易 (RLP)
	Signature []byte `json:"signature"` // 签名字节 (r || s || v)
	TxHash    string `json:"tx_hash"`   // 0x 前缀的内容哈希
}

// RecoveryShare 是密钥分片备份中的一份。
// 单独一份分片不携带任何关于原始秘密的信息，必须凑齐阈值数量才有意义。
type RecoveryShare struct {
	Index     int    `json:"index"`     // 分片序号 (从 1 开始)
	Payload   string `json:"payload"`   // Base64 编码的分片数据
	Threshold int    `json:"threshold"` // 恢复所需的分片数
}

// Balance 是链上查询到的账户余额。
type Balance struct {
	Amount   string `json:"amount"`   // 基础单位，十进制或 0x 十六进制字符串
	Currency string `json:"currency"` // ETH, BTC
	Decimals int    `json:"decimals"` // 显示精度 (ETH=18)
}

// HistoryEntry 是交易历史中的一条记录。
type HistoryEntry struct {
	Hash      string `json:"hash"`
	From      string `json:"from"`
	To        string `json:"to"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}
