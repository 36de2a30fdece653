package safe_random

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandomBytes 从系统 CSPRNG 读取 n 个随机字节。
// 用于恢复分片的一次性密码本，读取不足 n 字节视为失败。
func GenerateRandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("invalid random length: %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read system entropy: %w", err)
	}
	return b, nil
}
