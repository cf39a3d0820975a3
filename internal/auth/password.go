package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ccoveille/go-safecast"
	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	keyLength   = 32
	iterations  = 3
	memory      = 64 * 1024
	parallelism = 2
)

const phcPrefix = "$argon2id$"

var errPasswordMismatch = errors.New("password does not match")

// HashPassword returns a PHC formatted argon2id hash of password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword compares password against stored. A hashed value must be a
// PHC argon2id string produced by HashPassword; anything else is plaintext.
func VerifyPassword(password, stored string, hashed bool) error {
	if !hashed {
		if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1 {
			return nil
		}
		return errPasswordMismatch
	}

	if !strings.HasPrefix(stored, phcPrefix) {
		return errors.New("invalid hash format: not argon2id")
	}
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return errors.New("invalid hash format: wrong version")
	}

	var m, t, p int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}
	mem, err := safecast.ToUint32(m)
	if err != nil {
		return fmt.Errorf("invalid hash format: memory: %w", err)
	}
	iters, err := safecast.ToUint32(t)
	if err != nil {
		return fmt.Errorf("invalid hash format: iterations: %w", err)
	}
	par, err := safecast.ToUint8(p)
	if err != nil {
		return fmt.Errorf("invalid hash format: parallelism: %w", err)
	}
	if mem != memory || iters != iterations || par != parallelism {
		return errors.New("invalid hash format: unsupported parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}
	keyLen, err := safecast.ToUint32(len(expected))
	if err != nil || keyLen != keyLength {
		return errors.New("invalid hash format: unsupported key length")
	}

	computed := argon2.IDKey([]byte(password), salt, iters, mem, par, keyLen)
	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return errPasswordMismatch
}
