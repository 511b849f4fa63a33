// Package crypto encrypts free-text notes at rest with Fernet tokens.
package crypto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

// ErrInvalidToken indicates a stored value looks like a Fernet token but could
// not be verified with the configured key.
var ErrInvalidToken = errors.New("invalid encrypted value")

// Every Fernet token starts with the version byte 0x80 followed by a
// timestamp, which base64url encodes to this prefix.
const tokenPrefix = "gAAAAA"

// Cipher seals and opens note values. A Cipher without a key passes values
// through unchanged.
type Cipher struct {
	keys []*fernet.Key
}

// NewCipher builds a Cipher from a base64 encoded 32-byte Fernet key.
// An empty key yields a passthrough Cipher.
func NewCipher(encodedKey string) (*Cipher, error) {
	if strings.TrimSpace(encodedKey) == "" {
		return &Cipher{}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", err)
	}

	return &Cipher{keys: []*fernet.Key{key}}, nil
}

// GenerateKey returns a fresh encoded Fernet key.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

// Enabled reports whether values are actually encrypted.
func (c *Cipher) Enabled() bool {
	return c != nil && len(c.keys) > 0
}

// Seal encrypts plaintext. Empty strings stay empty.
func (c *Cipher) Seal(plaintext string) (string, error) {
	if !c.Enabled() || plaintext == "" {
		return plaintext, nil
	}

	token, err := fernet.EncryptAndSign([]byte(plaintext), c.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Open decrypts a value produced by Seal. Values that are not Fernet tokens,
// such as notes written before a key was configured, are returned as is.
func (c *Cipher) Open(stored string) (string, error) {
	if !c.Enabled() || stored == "" {
		return stored, nil
	}

	// TTL 0 disables token expiry
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, c.keys)
	if plain != nil {
		return string(plain), nil
	}

	if strings.HasPrefix(stored, tokenPrefix) {
		return "", ErrInvalidToken
	}
	return stored, nil
}
