package custody

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"custody-core/pkg/crypto_util"
	"custody-core/pkg/keystore"
	"custody-core/pkg/logger"
	"custody-core/pkg/monitor"

	"go.uber.org/zap"
)

// FileKeyStore 把每把密钥加密存为独立的 Keystore V3 风格文件。
// 文件名取 key id 的哈希，避免把地址等标识直接暴露在文件系统。
type FileKeyStore struct {
	dir        string
	passphrase string
	gate       AuthGate

	mu    sync.Mutex
	gates map[string]*sync.Mutex // 同一 key id 的授权提示串行化
}

// NewFileKeyStore 创建文件存储。
// gate 为 nil 时视为访问控制策略缺失，Store/Get 一律 fail closed。
func NewFileKeyStore(dir, passphrase string, gate AuthGate) (*FileKeyStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return &FileKeyStore{
		dir:        dir,
		passphrase: passphrase,
		gate:       gate,
		gates:      make(map[string]*sync.Mutex),
	}, nil
}

func (s *FileKeyStore) path(id string) string {
	return filepath.Join(s.dir, crypto_util.CalculateSHA256([]byte(id))+".json")
}

// gateFor 返回该 key id 专属的互斥锁。
// 同一密钥的授权提示不允许并发弹出，其它安全敏感操作必须等待。
func (s *FileKeyStore) gateFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.gates[id]
	if !ok {
		m = &sync.Mutex{}
		s.gates[id] = m
	}
	return m
}

// Get 同步过闸后解密并返回密钥字节。
func (s *FileKeyStore) Get(ctx context.Context, id string) ([]byte, error) {
	if s.gate == nil || s.passphrase == "" {
		return nil, ErrAccessControlSetup
	}

	gm := s.gateFor(id)
	gm.Lock()
	err := s.gate.Authorize(ctx, id)
	gm.Unlock()
	if err != nil {
		logger.Warn("密钥授权被拒绝", zap.String("key_id_hash", crypto_util.CalculateSHA256([]byte(id))[:8]))
		if monitor.Business != nil {
			monitor.Business.AuthFailureTotal.Inc()
		}
		return nil, fmt.Errorf("%w: %v", ErrAuthorizationFailed, err)
	}

	encrypted, err := keystore.LoadFromFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	key, err := keystore.DecryptSecret(encrypted, s.passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return key, nil
}

// Store 加密写入。同 id 冲突时先删后写实现覆盖。
func (s *FileKeyStore) Store(ctx context.Context, id string, key []byte) error {
	if s.gate == nil || s.passphrase == "" {
		// 策略无法建立时直接失败，绝不退化为明文/无保护存储
		return ErrAccessControlSetup
	}

	encrypted, err := keystore.EncryptSecret(key, s.passphrase)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}

	p := s.path(id)
	if _, statErr := os.Stat(p); statErr == nil {
		if rmErr := os.Remove(p); rmErr != nil {
			return fmt.Errorf("%w: %v", ErrBackend, rmErr)
		}
	}

	if err := encrypted.SaveToFile(p); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// IsProtected 文件存储始终要求实时授权。
func (s *FileKeyStore) IsProtected() bool {
	return s.gate != nil
}
