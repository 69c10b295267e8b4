package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm names a password hashing strategy. The set is closed on
// purpose: the comparison path for credentials must not be pluggable at
// runtime beyond what is listed here.
type Algorithm string

const (
	AlgorithmArgon2id Algorithm = "argon2id"
	AlgorithmBcrypt   Algorithm = "bcrypt"
)

// Fixed argon2id parameters (64 MiB, 3 passes, 2 lanes).
const (
	argonMemory  = 64 * 1024
	argonTime    = 3
	argonThreads = 2
	argonSaltLen = 16
	argonKeyLen  = 32
)

var ErrMismatch = errors.New("credential mismatch")

func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AlgorithmArgon2id, AlgorithmBcrypt:
		return Algorithm(s), nil
	}
	return "", fmt.Errorf("unknown hash algorithm %q", s)
}

// Hash derives a PHC-encoded hash of plain under the strategy.
func (a Algorithm) Hash(plain string) (string, error) {
	switch a {
	case AlgorithmArgon2id:
		salt := make([]byte, argonSaltLen)
		if _, err := rand.Read(salt); err != nil {
			return "", fmt.Errorf("generate salt: %w", err)
		}
		key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
		return encodeArgon2PHC(salt, key), nil
	case AlgorithmBcrypt:
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	}
	return "", fmt.Errorf("unknown hash algorithm %q", string(a))
}

// VerifyHash compares plain against a PHC-encoded hash, dispatching on
// the hash prefix. Any failure is reported as ErrMismatch so callers
// cannot distinguish a malformed hash from a wrong password.
func VerifyHash(phc string, plain string) error {
	switch {
	case strings.HasPrefix(phc, "$argon2"):
		params, salt, key, err := parseArgon2PHC(phc)
		if err != nil {
			return ErrMismatch
		}
		derived := argon2.IDKey([]byte(plain), salt, params.time, params.memory, params.threads, uint32(len(key)))
		if subtle.ConstantTimeCompare(derived, key) != 1 {
			return ErrMismatch
		}
		return nil
	case strings.HasPrefix(phc, "$2"):
		if err := bcrypt.CompareHashAndPassword([]byte(phc), []byte(plain)); err != nil {
			return ErrMismatch
		}
		return nil
	}
	return ErrMismatch
}

// validHash reports whether phc is a hash this package can verify.
func validHash(phc string) bool {
	if strings.HasPrefix(phc, "$argon2") {
		_, _, _, err := parseArgon2PHC(phc)
		return err == nil
	}
	if strings.HasPrefix(phc, "$2") {
		_, err := bcrypt.Cost([]byte(phc))
		return err == nil
	}
	return false
}

func encodeArgon2PHC(salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func parseArgon2PHC(phc string) (params argon2Params, salt, key []byte, err error) {
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || !strings.HasPrefix(parts[1], "argon2") {
		return params, nil, nil, errors.New("malformed argon2 hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2 version: %w", err)
	}
	var m, t, p int
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2 params: %w", err)
	}
	if m <= 0 || t <= 0 || p <= 0 || p > 255 {
		return params, nil, nil, errors.New("argon2 params out of range")
	}
	params = argon2Params{memory: uint32(m), time: uint32(t), threads: uint8(p)}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2 salt: %w", err)
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, fmt.Errorf("malformed argon2 digest: %w", err)
	}
	return params, salt, key, nil
}
