package plaid

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var errCiphertextTooShort = errors.New("ciphertext is too short")

// TokenCipher encrypts access tokens at rest. Without a key, tokens pass
// through unchanged, matching the behavior when no encryption key is
// configured.
type TokenCipher struct {
	aead cipher.AEAD
}

// NewTokenCipher creates a cipher from a base64-encoded 32 byte key. An
// empty key yields a pass-through cipher.
func NewTokenCipher(key string) (*TokenCipher, error) {
	if key == "" {
		return &TokenCipher{}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("decoding encryption key: %w", err)
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &TokenCipher{aead: aead}, nil
}

func (t *TokenCipher) Encrypt(plain string) (string, error) {
	if t.aead == nil {
		return plain, nil
	}

	nonce := make([]byte, t.aead.NonceSize())
	_, err := io.ReadFull(rand.Reader, nonce)
	if err != nil {
		return "", err
	}

	sealed := t.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (t *TokenCipher) Decrypt(encrypted string) (string, error) {
	if t.aead == nil {
		return encrypted, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	if len(raw) < t.aead.NonceSize() {
		return "", errCiphertextTooShort
	}

	nonce, sealed := raw[:t.aead.NonceSize()], raw[t.aead.NonceSize():]
	plain, err := t.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}
