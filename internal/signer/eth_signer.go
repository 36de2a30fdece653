package signer

import (
	"context"
	"fmt"
	"math/big"

	"custody-core/internal/custody"
	"custody-core/pkg/amount"
	"custody-core/pkg/monitor"
	"custody-core/pkg/wallet/types"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// EthSigner 以 EIP-1559 交易格式签名。
// go-ethereum 的 secp256k1 签名是确定性的 (RFC 6979 风格的 nonce)，
// 因此相同交易两次签名得到完全相同的结果，这是哈希稳定性的前提。
type EthSigner struct {
	keys custody.KeyStore
}

func NewEthSigner(keys custody.KeyStore) *EthSigner {
	return &EthSigner{keys: keys}
}

// buildUnsigned 把内部交易表示转换为规范的 EIP-1559 envelope。
// RLP 编码字段顺序固定，这就是要求的规范序列化。
func buildUnsigned(tx types.Transaction) (*ethtypes.Transaction, *big.Int, error) {
	// EIP-155 要求正的链 ID，非 EVM 链或未配置链 ID 的交易走不到这个签名器
	if tx.ChainID <= 0 {
		return nil, nil, fmt.Errorf("%w: chain %q (chain id %d)", ErrUnsupportedChain, tx.Chain, tx.ChainID)
	}
	value, err := amount.ParseBig(tx.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	maxFee, err := amount.ParseBig(tx.MaxFeePerGas)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	tip, err := amount.ParseBig(tx.MaxPriority)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if !common.IsHexAddress(tx.To) {
		return nil, nil, fmt.Errorf("%w: invalid recipient %q", ErrSerialization, tx.To)
	}

	to := common.HexToAddress(tx.To)
	chainID := big.NewInt(tx.ChainID)

	unsigned := ethtypes.NewTx(&ethtypes.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     tx.Nonce,
		GasFeeCap: maxFee,
		GasTipCap: tip,
		Gas:       tx.GasLimit,
		To:        &to,
		Value:     value,
		Data:      tx.Payload,
	})
	return unsigned, chainID, nil
}

// CanonicalBytes 返回交易的规范序列化字节 (未签名 envelope 的 RLP)。
// 逻辑相同的两笔交易必须得到逐字节相同的结果。
func CanonicalBytes(tx types.Transaction) ([]byte, error) {
	unsigned, _, err := buildUnsigned(tx)
	if err != nil {
		return nil, err
	}
	raw, err := unsigned.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return raw, nil
}

// SignTransaction 通过 Key Custody 取回私钥，签名后立即清零密钥字节。
func (s *EthSigner) SignTransaction(ctx context.Context, tx types.Transaction) (*types.SignedData, error) {
	unsigned, chainID, err := buildUnsigned(tx)
	if err != nil {
		return nil, err
	}

	keyBytes, err := s.keys.Get(ctx, tx.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	defer custody.Zero(keyBytes)

	privateKey, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}

	ethSigner := ethtypes.LatestSignerForChainID(chainID)
	sigHash := ethSigner.Hash(unsigned)

	sig, err := crypto.Sign(sigHash.Bytes(), privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	signedTx, err := unsigned.WithSignature(ethSigner, sig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	if monitor.Business != nil {
		monitor.Business.TxSignedTotal.WithLabelValues(tx.Chain).Inc()
	}

	return &types.SignedData{
		Raw:       raw,
		Signature: sig,
		TxHash:    signedTx.Hash().Hex(),
	}, nil
}

// SignMessage 按 EIP-191 规范签名任意消息。
func (s *EthSigner) SignMessage(ctx context.Context, keyID string, message []byte) ([]byte, error) {
	keyBytes, err := s.keys.Get(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}
	defer custody.Zero(keyBytes)

	privateKey, err := crypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnavailable, err)
	}

	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	messageHash := crypto.Keccak256Hash([]byte(prefixed))

	sig, err := crypto.Sign(messageHash.Bytes(), privateKey)
	if err != nil {
		return nil, err
	}

	// eth_sign 惯例: V 值加 27
	sig[64] += 27
	return sig, nil
}
