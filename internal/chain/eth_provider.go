package chain

import (
	"context"
	"fmt"
	"strings"

	"custody-core/pkg/config"
	"custody-core/pkg/wallet/types"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EthProvider 通过 JSON-RPC 节点实现 Provider。
// 注意: 裸 RPC 节点没有按地址索引的历史，FetchHistory 返回 ErrUnsupported，
// 需要历史时应接入索引服务 (Etherscan / 自建 Indexer)。
type EthProvider struct {
	client *ethclient.Client
	cfg    config.ChainConfig
}

// NewEthProvider 连接 RPC 节点并返回 Provider。
func NewEthProvider(cfg config.ChainConfig) (*EthProvider, error) {
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, WrapNetwork(err)
	}
	return &EthProvider{client: client, cfg: cfg}, nil
}

func (p *EthProvider) checkChain(chain string) error {
	if !strings.EqualFold(chain, p.cfg.Name) {
		return fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}
	return nil
}

// FetchBalance 查询最新区块的余额，金额以 0x 十六进制字符串返回。
func (p *EthProvider) FetchBalance(ctx context.Context, address, chain string) (*types.Balance, error) {
	if err := p.checkChain(chain); err != nil {
		return nil, err
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}

	bal, err := p.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, WrapRPC(err)
	}

	return &types.Balance{
		Amount:   hexutil.EncodeBig(bal),
		Currency: p.cfg.Currency,
		Decimals: p.cfg.Decimals,
	}, nil
}

// FetchHistory 裸 RPC 节点不支持按地址查询历史。
func (p *EthProvider) FetchHistory(ctx context.Context, address, chain string) ([]types.HistoryEntry, error) {
	if err := p.checkChain(chain); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: address history requires an indexer", ErrUnsupported)
}

// PendingNonce 查询含 pending 池的下一个 Nonce。
func (p *EthProvider) PendingNonce(ctx context.Context, address, chain string) (uint64, error) {
	if err := p.checkChain(chain); err != nil {
		return 0, err
	}
	if !common.IsHexAddress(address) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}

	nonce, err := p.client.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, WrapRPC(err)
	}
	return nonce, nil
}

// Broadcast 通过 eth_sendRawTransaction 广播原始交易。
func (p *EthProvider) Broadcast(ctx context.Context, signedBytes []byte, chain string) (string, error) {
	if err := p.checkChain(chain); err != nil {
		return "", err
	}

	var txHash common.Hash
	err := p.client.Client().CallContext(ctx, &txHash, "eth_sendRawTransaction", hexutil.Encode(signedBytes))
	if err != nil {
		return "", WrapRPC(err)
	}
	return txHash.Hex(), nil
}

// Close 释放底层连接。
func (p *EthProvider) Close() {
	p.client.Close()
}
