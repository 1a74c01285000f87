// Package argon2id hashes and verifies the admin password. Hashes use the PHC
// string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("argon2id hash is malformed")
	ErrIncompatibleVersion = errors.New("argon2id hash has an unsupported version")
)

const algorithm = "argon2id"

var b64 = base64.RawStdEncoding.Strict()

// Params are the key derivation settings. SaltLength and KeyLength are only
// read when hashing; parsed hashes take them from the encoded values.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultParams = Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

func (p Params) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

// Hash is a parsed PHC string.
type Hash struct {
	Params Params
	Salt   []byte
	Key    []byte
}

func (h Hash) String() string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithm, argon2.Version,
		h.Params.Memory, h.Params.Iterations, h.Params.Parallelism,
		b64.EncodeToString(h.Salt), b64.EncodeToString(h.Key))
}

// New derives a key for password with a random salt and returns the encoded
// hash.
func New(password string, p Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	return WithSalt(password, p, salt).String(), nil
}

func WithSalt(password string, p Params, salt []byte) Hash {
	return Hash{Params: p, Salt: salt, Key: p.derive(password, salt)}
}

// Parse decodes a PHC string produced by New.
func Parse(encoded string) (Hash, error) {
	sections := strings.Split(encoded, "$")
	if len(sections) != 6 || sections[0] != "" || sections[1] != algorithm {
		return Hash{}, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(sections[2], "v=%d", &version); err != nil {
		return Hash{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return Hash{}, ErrIncompatibleVersion
	}

	var h Hash
	if _, err := fmt.Sscanf(sections[3], "m=%d,t=%d,p=%d",
		&h.Params.Memory, &h.Params.Iterations, &h.Params.Parallelism); err != nil {
		return Hash{}, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}

	var err error
	if h.Salt, err = b64.DecodeString(sections[4]); err != nil {
		return Hash{}, fmt.Errorf("%w: salt: %w", ErrInvalidHash, err)
	}
	if h.Key, err = b64.DecodeString(sections[5]); err != nil {
		return Hash{}, fmt.Errorf("%w: key: %w", ErrInvalidHash, err)
	}
	h.Params.SaltLength = uint32(len(h.Salt))
	h.Params.KeyLength = uint32(len(h.Key))
	return h, nil
}

// Verify reports whether password matches encoded. The keys are compared in
// constant time.
func Verify(password, encoded string) (bool, error) {
	h, err := Parse(encoded)
	if err != nil {
		return false, err
	}
	other := h.Params.derive(password, h.Salt)
	return subtle.ConstantTimeCompare(h.Key, other) == 1, nil
}
