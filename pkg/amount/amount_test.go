package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"十进制", "1000", "1000", false},
		{"零", "0", "0", false},
		{"0x 十六进制", "0x100", "256", false},
		{"大写 0X", "0X100000000000000", "72057594037927936", false},
		{"超过 64 位", "340282366920938463463374607431768211456", "340282366920938463463374607431768211456", false},
		{"带空白", "  42  ", "42", false},
		{"空串", "", "", true},
		{"负数", "-5", "", true},
		{"小数", "1.5", "", true},
		{"乱码", "abc", "", true},
		{"裸 0x", "0x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBig(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if err != nil {
				t.Fatalf("解析失败: %v", err)
			}
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		base     string
		decimals int
		want     string
	}{
		{"1500000000000000000", 18, "1.5"},
		{"1000000000000000000", 18, "1"},
		{"1", 18, "0.000000000000000001"},
		{"0x100", 0, "256"},
	}

	for _, tt := range tests {
		got, err := FormatUnits(tt.base, tt.decimals)
		if err != nil {
			t.Fatalf("FormatUnits(%q, %d) 失败: %v", tt.base, tt.decimals, err)
		}
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatUnits("not-a-number", 18)
	assert.Error(t, err)
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+256", Signed(big.NewInt(256)))
	assert.Equal(t, "-256", Signed(big.NewInt(-256)))
	assert.Equal(t, "+0", Signed(big.NewInt(0)))
}
