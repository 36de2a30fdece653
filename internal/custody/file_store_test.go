package custody

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// denyGate 模拟用户拒绝授权
type denyGate struct {
	calls int
}

func (g *denyGate) Authorize(ctx context.Context, keyID string) error {
	g.calls++
	return errors.New("user denied")
}

func TestFileKeyStoreRoundTrip(t *testing.T) {
	store, err := NewFileKeyStore(t.TempDir(), "passphrase", OpenGate{})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	key := []byte{0x01, 0x02, 0x03, 0x04}
	if err := store.Store(context.Background(), "0xabc", key); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	got, err := store.Get(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("取回失败: %v", err)
	}
	assert.Equal(t, key, got)
}

func TestFileKeyStoreOverwrite(t *testing.T) {
	store, err := NewFileKeyStore(t.TempDir(), "passphrase", OpenGate{})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	if err := store.Store(context.Background(), "0xabc", []byte("old")); err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	// 同 id 再写必须覆盖，而不是报错或产生副本
	if err := store.Store(context.Background(), "0xabc", []byte("new")); err != nil {
		t.Fatalf("覆盖失败: %v", err)
	}

	got, err := store.Get(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("取回失败: %v", err)
	}
	assert.Equal(t, []byte("new"), got)
}

func TestFileKeyStoreAuthorizationDenied(t *testing.T) {
	gate := &denyGate{}
	store, err := NewFileKeyStore(t.TempDir(), "passphrase", gate)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	// 写入不需要过闸，取回需要
	if err := store.Store(context.Background(), "0xabc", []byte("secret")); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	_, err = store.Get(context.Background(), "0xabc")
	assert.ErrorIs(t, err, ErrAuthorizationFailed)
	assert.Equal(t, 1, gate.calls)
}

func TestFileKeyStoreFailClosed(t *testing.T) {
	// 闸口缺失: 访问控制策略无法建立，读写一律拒绝
	store, err := NewFileKeyStore(t.TempDir(), "passphrase", nil)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	err = store.Store(context.Background(), "0xabc", []byte("secret"))
	assert.ErrorIs(t, err, ErrAccessControlSetup)

	_, err = store.Get(context.Background(), "0xabc")
	assert.ErrorIs(t, err, ErrAccessControlSetup)

	// 口令缺失同样 fail closed
	store2, err := NewFileKeyStore(t.TempDir(), "", OpenGate{})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	err = store2.Store(context.Background(), "0xabc", []byte("secret"))
	assert.ErrorIs(t, err, ErrAccessControlSetup)
}

func TestFileKeyStoreNotFound(t *testing.T) {
	store, err := NewFileKeyStore(t.TempDir(), "passphrase", OpenGate{})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	_, err = store.Get(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestFileKeyStoreIsProtected(t *testing.T) {
	withGate, _ := NewFileKeyStore(t.TempDir(), "p", OpenGate{})
	assert.True(t, withGate.IsProtected())

	withoutGate, _ := NewFileKeyStore(t.TempDir(), "p", nil)
	assert.False(t, withoutGate.IsProtected())
}

func TestPasscodeGate(t *testing.T) {
	gate := NewPasscodeGate("123456", func(ctx context.Context, keyID string) (string, error) {
		return "123456", nil
	})
	assert.NoError(t, gate.Authorize(context.Background(), "0xabc"))

	wrong := NewPasscodeGate("123456", func(ctx context.Context, keyID string) (string, error) {
		return "000000", nil
	})
	assert.Error(t, wrong.Authorize(context.Background(), "0xabc"))
}
