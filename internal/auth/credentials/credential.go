package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Credential is either a transient plaintext secret or a PHC-encoded
// hash. Only the hashed form is serializable; attempting to marshal a
// plaintext credential is a programming error and fails loudly instead
// of silently hashing or leaking the secret.
type Credential struct {
	plain  string
	hashed string
}

var errPlainSerialize = errors.New("refusing to serialize plaintext credential")

// Plain wraps a plaintext secret. The value exists only to be hashed or
// verified in memory and can never be written anywhere.
func Plain(secret string) Credential {
	return Credential{plain: secret}
}

// New hashes a plaintext secret under the given strategy.
func New(plain string, alg Algorithm) (Credential, error) {
	phc, err := alg.Hash(plain)
	if err != nil {
		return Credential{}, err
	}
	return Credential{hashed: phc}, nil
}

// FromHash wraps an existing PHC string, validating its shape.
func FromHash(phc string) (Credential, error) {
	if !validHash(phc) {
		return Credential{}, fmt.Errorf("%q is not a valid password hash", phc)
	}
	return Credential{hashed: phc}, nil
}

func (c Credential) IsHashed() bool {
	return c.hashed != ""
}

// Hash returns the PHC string of a hashed credential.
func (c Credential) Hash() (string, error) {
	if c.hashed == "" {
		return "", errors.New("credential is not hashed")
	}
	return c.hashed, nil
}

// Verify checks plain against the stored hash. Plaintext credentials
// cannot be verified against; hash them first.
func (c Credential) Verify(plain string) error {
	if c.hashed == "" {
		return errors.New("attempt to verify against a plaintext credential")
	}
	return VerifyHash(c.hashed, plain)
}

func (c Credential) MarshalJSON() ([]byte, error) {
	if c.hashed == "" {
		return nil, errPlainSerialize
	}
	return json.Marshal(c.hashed)
}

func (c *Credential) UnmarshalJSON(data []byte) error {
	var phc string
	if err := json.Unmarshal(data, &phc); err != nil {
		return err
	}
	parsed, err := FromHash(phc)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
