// Package cryptox hashes and verifies the administrator password.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the salt length in bytes generated by NewSalt.
const SaltSize = 16

// HashPassword derives a 32-byte argon2id key from password and salt.
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}
	return salt, nil
}

// HashPasswordHex returns hex encoded salt and hash for storage in config.
func HashPasswordHex(password []byte) (saltHex, hashHex string, err error) {
	salt, err := NewSalt()
	if err != nil {
		return "", "", err
	}
	return hex.EncodeToString(salt), hex.EncodeToString(HashPassword(password, salt)), nil
}

// VerifyPassword checks password against hex encoded salt and hash.
// Malformed or empty config values never verify.
func VerifyPassword(password []byte, saltHex, hashHex string) bool {
	if saltHex == "" || hashHex == "" {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(HashPassword(password, salt), want) == 1
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
