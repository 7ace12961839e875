// Package crypto seals provider tokens before they reach the database.
package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// sealedPrefix marks values written by XChaCha20Cipher so plaintext rows
// stored before a key was configured can still be read.
const sealedPrefix = "enc:v1:"

// TokenCipher seals and opens token strings for storage.
type TokenCipher interface {
	Seal(plaintext string) (string, error)
	Open(stored string) (string, error)
}

// NewTokenCipher returns an XChaCha20-Poly1305 cipher for a base64 encoded
// 32 byte key, or a pass-through cipher when key is empty.
func NewTokenCipher(key string) (TokenCipher, error) {
	if key == "" {
		return PlainCipher{}, nil
	}
	return NewXChaCha20Cipher(key)
}

// PlainCipher stores tokens as-is.
type PlainCipher struct{}

func (PlainCipher) Seal(plaintext string) (string, error) { return plaintext, nil }

func (PlainCipher) Open(stored string) (string, error) {
	if strings.HasPrefix(stored, sealedPrefix) {
		return "", fmt.Errorf("token is encrypted but no encryption key is configured")
	}
	return stored, nil
}

type XChaCha20Cipher struct {
	aead cipher.AEAD
}

func NewXChaCha20Cipher(encodedKey string) (*XChaCha20Cipher, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("token encryption key is not valid base64: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("token encryption key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}
	return &XChaCha20Cipher{aead: aead}, nil
}

func (c *XChaCha20Cipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.RawStdEncoding.EncodeToString(sealed), nil
}

func (c *XChaCha20Cipher) Open(stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed token: %w", err)
	}
	if len(raw) < c.aead.NonceSize() {
		return "", fmt.Errorf("sealed token too short")
	}
	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open sealed token: %w", err)
	}
	return string(plain), nil
}
