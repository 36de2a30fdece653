package custody

import (
	"context"
	"errors"
)

// 密钥托管错误分类。
// 任何路径都不允许在访问控制策略未生效的情况下返回或写入密钥字节。
var (
	ErrItemNotFound        = errors.New("key item not found")
	ErrAuthorizationFailed = errors.New("authorization failed")
	ErrAccessControlSetup  = errors.New("access control setup failed")
	ErrBackend             = errors.New("custody backend error")
)

// AuthGate 是外部授权闸口 (生物识别 / 口令确认)。
// Get 必须在调用内同步通过该闸口，调用方无法绕过。
type AuthGate interface {
	// Authorize 判断当前主体是否被授权使用指定密钥。
	// 拒绝时返回 ErrAuthorizationFailed (或其包装)。
	Authorize(ctx context.Context, keyID string) error
}

// KeyStore 定义受保护的密钥存取接口。
// 返回的密钥字节由调用方负责用后清零，接口实现绝不落盘明文。
type KeyStore interface {
	// Get 取回密钥字节。取回前同步执行授权检查。
	Get(ctx context.Context, id string) ([]byte, error)

	// Store 写入密钥。同 id 已存在时覆盖 (先删后写)，而不是静默失败或产生副本。
	// 访问控制策略无法建立时返回 ErrAccessControlSetup，绝不退化为无保护存储。
	Store(ctx context.Context, id string, key []byte) error

	// IsProtected 返回取回是否需要实时授权检查。
	IsProtected() bool
}

// Zero 用后清零密钥字节。
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
