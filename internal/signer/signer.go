package signer

import (
	"context"
	"errors"

	"custody-core/pkg/wallet/types"
)

var (
	ErrKeyUnavailable   = errors.New("signing key unavailable")
	ErrSerialization    = errors.New("transaction serialization failed")
	ErrUnsupportedChain = errors.New("no signer for chain")
)

// Signer 定义交易/消息签名接口。签名方案按链族可插拔
// (账户链用 secp256k1 ECDSA，其它链族可换 Ed25519)，契约与方案无关：
// 对规范序列化字节产出签名和内容哈希，密钥只能经由 Key Custody 获取，
// 且不得在单次签名调用之外缓存原始密钥字节。
type Signer interface {
	// SignTransaction 规范序列化并签名一笔交易。
	// 相同字段的两笔交易必须产出完全相同的序列化字节和哈希。
	SignTransaction(ctx context.Context, tx types.Transaction) (*types.SignedData, error)

	// SignMessage 签名任意文本消息。
	SignMessage(ctx context.Context, keyID string, message []byte) ([]byte, error)
}
