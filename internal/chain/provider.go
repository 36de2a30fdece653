package chain

import (
	"context"
	"errors"
	"fmt"

	"custody-core/pkg/wallet/types"
)

// 链交互失败必须以分类错误暴露给核心层，
// 核心层不允许解析任何传输层/厂商相关的原始错误。
var (
	ErrNetwork          = errors.New("network error")
	ErrInvalidAddress   = errors.New("invalid address")
	ErrRPC              = errors.New("rpc error")
	ErrParse            = errors.New("parse error")
	ErrUnsupportedChain = errors.New("unsupported chain")
	// ErrUnsupported 该 Provider 不支持此操作 (如裸 RPC 节点查不了历史)
	ErrUnsupported = errors.New("operation not supported by provider")
)

// Provider 定义核心层消费的链上数据接口。
// 实现负责自己的重试策略，核心层从不自动重试。
type Provider interface {
	// FetchBalance 查询地址余额
	FetchBalance(ctx context.Context, address, chain string) (*types.Balance, error)

	// FetchHistory 查询地址的交易历史 (按时间排序)
	FetchHistory(ctx context.Context, address, chain string) ([]types.HistoryEntry, error)

	// PendingNonce 查询账户下一个可用 Nonce
	PendingNonce(ctx context.Context, address, chain string) (uint64, error)

	// Broadcast 广播已签名的交易字节，返回交易哈希
	Broadcast(ctx context.Context, signedBytes []byte, chain string) (string, error)
}

// WrapRPC 将底层 RPC 错误包装为分类错误，保留原始信息供日志使用。
func WrapRPC(err error) error {
	return fmt.Errorf("%w: %v", ErrRPC, err)
}

// WrapNetwork 将底层网络错误包装为分类错误。
func WrapNetwork(err error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
