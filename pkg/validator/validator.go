package validator

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init 注册自定义校验规则到 gin 的默认校验器
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	// hexaddr: 0x 开头的 40 位十六进制地址
	_ = v.RegisterValidation("hexaddr", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 42 || !strings.HasPrefix(s, "0x") {
			return false
		}
		for _, c := range s[2:] {
			switch {
			case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			default:
				return false
			}
		}
		return true
	})
}

// GetErrorMsg 将校验错误翻译为对用户友好的提示
func GetErrorMsg(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "请求参数错误"
	}

	var msgs []string
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s 不能为空", field))
		case "hexaddr":
			msgs = append(msgs, fmt.Sprintf("%s 必须是 0x 开头的以太坊地址", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s 至少为 %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s 不能超过 %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s 校验失败 (%s)", field, e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
