package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type addrForm struct {
	Address string `binding:"required,hexaddr"`
}

func engine(t *testing.T) *validator.Validate {
	Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("gin 默认校验器不是 go-playground/validator")
	}
	return v
}

func TestHexAddr(t *testing.T) {
	v := engine(t)

	cases := []struct {
		addr string
		ok   bool
	}{
		{"0x742d35Cc6634C0532925a3b844Bc9e7595f8fA8e", true},
		{"742d35Cc6634C0532925a3b844Bc9e7595f8fA8e", false},   // 缺少 0x
		{"0x742d35Cc6634C0532925a3b844Bc9e7595f8fA8", false},  // 长度不足
		{"0xZZ2d35Cc6634C0532925a3b844Bc9e7595f8fA8e", false}, // 非法字符
		{"", false},
	}
	for _, tc := range cases {
		err := v.Struct(addrForm{Address: tc.addr})
		if tc.ok && err != nil {
			t.Errorf("地址 %q 应该通过校验: %v", tc.addr, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("地址 %q 应该校验失败", tc.addr)
		}
	}
}

func TestGetErrorMsg(t *testing.T) {
	v := engine(t)

	err := v.Struct(addrForm{Address: ""})
	if err == nil {
		t.Fatal("空地址应该校验失败")
	}
	msg := GetErrorMsg(err)
	if msg == "" || msg == "请求参数错误" {
		t.Errorf("应该返回字段级提示, 得到 %q", msg)
	}
}
