// Package kdf provides the password hashing primitives used by the stores:
// an argon2id derivation for new deployments and a sha256 derivation
// compatible with databases written by the legacy library.
package kdf

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/sessionforge/authcore/internal/model"
)

// saltBytes hex-encodes to the 64 characters the salt column holds.
const saltBytes = 32

// Argon2 derives password hashes with argon2id. The 32-byte key
// hex-encodes to 64 characters.
type Argon2 struct {
	time   uint32
	memKiB uint32
	par    uint8
}

var _ model.KDF = (*Argon2)(nil)

// NewArgon2 creates an argon2id KDF with the given cost parameters.
func NewArgon2(time, memKiB uint32, par uint8) *Argon2 {
	return &Argon2{time: time, memKiB: memKiB, par: par}
}

func (k *Argon2) Derive(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), k.time, k.memKiB, k.par, 32)
	return hex.EncodeToString(key)
}

func (k *Argon2) Name() string {
	return fmt.Sprintf("argon2id(t=%d,m=%d,p=%d)", k.time, k.memKiB, k.par)
}

// SHA256 derives password hashes as sha256(password || salt), hex encoded.
// This matches rows written by the legacy library and exists only so those
// databases keep verifying; it is far too fast for new deployments.
type SHA256 struct{}

var _ model.KDF = SHA256{}

func (SHA256) Derive(password, salt string) string {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write([]byte(salt))
	return hex.EncodeToString(h.Sum(nil))
}

func (SHA256) Name() string {
	return "sha256"
}

// NewSalt returns a fresh random salt: 32 bytes from crypto/rand, hex
// encoded to 64 characters.
func NewSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Equal compares two derived hashes in constant time.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
