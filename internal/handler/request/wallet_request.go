package request

// LoadAccountRequest 加载账户参数
type LoadAccountRequest struct {
	Address string `json:"address" binding:"required,hexaddr"`
	Chain   string `json:"chain" binding:"required"`
}

// PrepareRequest 预备交易参数。Payload 为 0x 前缀的合约调用数据，可省略。
type PrepareRequest struct {
	To      string `json:"to" binding:"required,hexaddr"`
	Value   string `json:"value" binding:"required"`
	Payload string `json:"payload"`
}

// ConfirmRequest 确认交易参数，必须与此前 prepare 的意图一致
type ConfirmRequest struct {
	To    string `json:"to" binding:"required,hexaddr"`
	Value string `json:"value" binding:"required"`
}
