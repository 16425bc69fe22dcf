package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/personeltakip/backend/internal/config"
	"golang.org/x/crypto/scrypt"
)

// PasswordHasher produces "<hash>.<salt>" strings, both hex encoded. The hex
// salt string itself is the scrypt salt, so existing hashes keep verifying.
type PasswordHasher struct {
	n, r, p    int
	keyLen     int
	saltLength int
}

func NewPasswordHasher(cfg *config.AuthConfig) *PasswordHasher {
	return &PasswordHasher{
		n:          cfg.ScryptN,
		r:          cfg.ScryptR,
		p:          cfg.ScryptP,
		keyLen:     cfg.ScryptKeyLen,
		saltLength: cfg.SaltLength,
	}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	saltHex := hex.EncodeToString(salt)

	key, err := scrypt.Key([]byte(password), []byte(saltHex), h.n, h.r, h.p, h.keyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	return hex.EncodeToString(key) + "." + saltHex, nil
}

// Verify recomputes the hash with the stored salt and compares in constant time.
func (h *PasswordHasher) Verify(password, stored string) bool {
	hashHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok || hashHex == "" || saltHex == "" {
		return false
	}

	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	got, err := scrypt.Key([]byte(password), []byte(saltHex), h.n, h.r, h.p, len(want))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
