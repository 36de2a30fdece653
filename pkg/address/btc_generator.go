package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// BTCGenerator 按指定网络参数生成比特币 P2PKH 地址
type BTCGenerator struct {
	network *chaincfg.Params
}

func NewBTCGenerator(network *chaincfg.Params) *BTCGenerator {
	if network == nil {
		network = &chaincfg.MainNetParams
	}
	return &BTCGenerator{network: network}
}

// PubKeyToAddress 将压缩公钥 (33 字节) 转换为 P2PKH 地址
func (g *BTCGenerator) PubKeyToAddress(pubKeyBytes []byte) (string, error) {
	if len(pubKeyBytes) != 33 {
		return "", fmt.Errorf("expected 33-byte compressed public key, got %d bytes", len(pubKeyBytes))
	}
	addr, err := btcutil.NewAddressPubKey(pubKeyBytes, g.network)
	if err != nil {
		return "", fmt.Errorf("build p2pkh address: %w", err)
	}
	return addr.AddressPubKeyHash().EncodeAddress(), nil
}
