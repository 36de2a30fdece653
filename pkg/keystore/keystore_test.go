package keystore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEncryptDecryptSecret(t *testing.T) {
	secret := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	password := "secure-password"

	// 1. Encrypt
	keyJSON, err := EncryptSecret(secret, password)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	if keyJSON.Crypto.Cipher != "aes-256-gcm" {
		t.Errorf("Expected cipher aes-256-gcm, got %s", keyJSON.Crypto.Cipher)
	}
	if keyJSON.Version != 3 {
		t.Errorf("Expected version 3, got %d", keyJSON.Version)
	}

	// 2. Decrypt with correct password
	plaintext, err := DecryptSecret(keyJSON, password)
	if err != nil {
		t.Fatalf("Decryption failed: %v", err)
	}
	if string(plaintext) != string(secret) {
		t.Errorf("Decryption mismatch. Expected %x, got %x", secret, plaintext)
	}

	// 3. Decrypt with wrong password
	_, err = DecryptSecret(keyJSON, "wrong-password")
	if err != ErrMACMismatch {
		t.Errorf("Expected ErrMACMismatch with wrong password, got %v", err)
	}
}

func TestEncryptSecretUniqueSalt(t *testing.T) {
	secret := []byte("same secret")
	a, err := EncryptSecret(secret, "pw")
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	b, err := EncryptSecret(secret, "pw")
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	// 每次加密必须使用新的 salt 和 IV
	if a.Crypto.KDFParams.Salt == b.Crypto.KDFParams.Salt {
		t.Error("两次加密使用了相同的 salt")
	}
	if a.Crypto.CipherParams.IV == b.Crypto.CipherParams.IV {
		t.Error("两次加密使用了相同的 IV")
	}
}

func TestFileSaveLoad(t *testing.T) {
	secret := []byte("file secret")
	password := "123456"
	filename := filepath.Join(t.TempDir(), "test_key.json")

	keyJSON, err := EncryptSecret(secret, password)
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}

	if err := keyJSON.SaveToFile(filename); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 权限必须是 0600
	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %o", info.Mode().Perm())
	}

	loaded, err := LoadFromFile(filename)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	plaintext, err := DecryptSecret(loaded, password)
	if err != nil {
		t.Fatalf("Decryption after load failed: %v", err)
	}
	if string(plaintext) != string(secret) {
		t.Errorf("Round trip mismatch. Expected %q, got %q", secret, plaintext)
	}
}
