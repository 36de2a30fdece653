package custody

import (
	"context"
	"crypto/subtle"
	"errors"
)

// PasscodeGate 是口令式授权闸口。
// 生产环境应替换为系统级生物识别/Secure Enclave 方案，契约不变。
type PasscodeGate struct {
	expected string
	// Prompt 向用户索取口令。服务端场景下从请求上下文取。
	Prompt func(ctx context.Context, keyID string) (string, error)
}

// NewPasscodeGate 创建口令闸口。
func NewPasscodeGate(expected string, prompt func(ctx context.Context, keyID string) (string, error)) *PasscodeGate {
	return &PasscodeGate{expected: expected, Prompt: prompt}
}

func (g *PasscodeGate) Authorize(ctx context.Context, keyID string) error {
	if g.Prompt == nil {
		return errors.New("no passcode prompt configured")
	}
	code, err := g.Prompt(ctx, keyID)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(g.expected)) != 1 {
		return errors.New("passcode mismatch")
	}
	return nil
}

// OpenGate 无条件放行，仅用于开发环境和测试。
type OpenGate struct{}

func (OpenGate) Authorize(ctx context.Context, keyID string) error { return nil }
