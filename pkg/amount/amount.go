package amount

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBig 将十进制或 0x 前缀十六进制字符串解析为非负大整数。
// 链上余额可能超过 64 位，禁止使用定宽整数承接。
// 解析失败时返回错误，绝不静默退化为 0。
func ParseBig(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	var v *big.Int
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok = new(big.Int).SetString(s[2:], 16)
	} else {
		v, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}
	return v, nil
}

// FormatUnits 将基础单位金额转换为带小数点的显示金额。
// 例如 FormatUnits("1500000000000000000", 18) => "1.5"
func FormatUnits(base string, decimals int) (string, error) {
	v, err := ParseBig(base)
	if err != nil {
		return "", err
	}
	return decimal.NewFromBigInt(v, int32(-decimals)).String(), nil
}

// Signed 返回带 +/- 前缀的十进制字符串，用于余额变动映射。
func Signed(v *big.Int) string {
	if v.Sign() < 0 {
		return v.String() // big.Int 自带 "-"
	}
	return "+" + v.String()
}
