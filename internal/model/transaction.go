package model

import (
	"time"
)

// TransactionRecord 已广播交易的审计记录表
type TransactionRecord struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TxHash    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_tx_hash" json:"tx_hash"`
	Chain     string    `gorm:"type:varchar(20);not null;index" json:"chain"`
	FromAddr  string    `gorm:"type:varchar(255);not null;index" json:"from_addr"`
	ToAddr    string    `gorm:"type:varchar(255);not null" json:"to_addr"`
	Value     string    `gorm:"type:varchar(80);not null" json:"value"` // 基础单位十进制字符串
	GasLimit  uint64    `gorm:"not null" json:"gas_limit"`
	Status    string    `gorm:"type:varchar(20);not null" json:"status"` // broadcast, failed
	CreatedAt time.Time `json:"created_at"`
}

func (TransactionRecord) TableName() string {
	return "transaction_records"
}
