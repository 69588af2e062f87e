package credentials

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	algorithm     = "argon2id"
	argon2Version = 19 // argon2.Version
)

// PasswordHash is the encoded digest stored next to the salt.
type PasswordHash string

// Params are the Argon2id cost parameters used for new hashes.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultParams is the production baseline.
func DefaultParams() Params {
	return Params{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		KeyLength:   32,
	}
}

func (p Params) validate() error {
	switch {
	case p.Parallelism == 0:
		return fmt.Errorf("%w: parallelism must be positive", ErrHashing)
	case p.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", ErrHashing)
	case p.Memory < 8*uint32(p.Parallelism):
		return fmt.Errorf("%w: memory must be at least 8KiB per lane", ErrHashing)
	case p.KeyLength < 16 || p.KeyLength > 128:
		return fmt.Errorf("%w: key length out of range", ErrHashing)
	}
	return nil
}

// Hasher hashes and verifies passwords with a fixed set of parameters.
// It is immutable and safe for concurrent use.
type Hasher struct {
	params Params
}

func NewHasher(p Params) *Hasher {
	if p.KeyLength == 0 {
		p.KeyLength = DefaultParams().KeyLength
	}
	return &Hasher{params: p}
}

// Params returns the parameters used for new hashes.
func (h *Hasher) Params() Params {
	return h.params
}

// HashPassword derives the stored hash of plaintext+salt. The result is
// deterministic for a given (plaintext, salt, params).
func (h *Hasher) HashPassword(plaintext string, salt Salt) (PasswordHash, error) {
	if salt == "" {
		return "", ErrEmptySalt
	}
	if err := h.params.validate(); err != nil {
		return "", err
	}

	key := derive(plaintext, salt, h.params)

	return PasswordHash(fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s",
		algorithm,
		argon2Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(key),
	)), nil
}

// VerifyPassword reports whether plaintext+salt produces stored. A wrong
// password, a malformed hash or a hash whose parameters are far above the
// configured ones all yield false with a nil error; only an empty salt is
// an error. The digest comparison is constant-time.
func (h *Hasher) VerifyPassword(plaintext string, salt Salt, stored PasswordHash) (bool, error) {
	if salt == "" {
		return false, ErrEmptySalt
	}

	params, expected, ok := decode(string(stored))
	if !ok || !withinBounds(params, h.params) {
		return false, nil
	}

	key := derive(plaintext, salt, params)

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

func derive(plaintext string, salt Salt, p Params) []byte {
	return argon2.IDKey(
		[]byte(plaintext+string(salt)),
		[]byte(salt),
		p.Iterations,
		p.Memory,
		p.Parallelism,
		p.KeyLength,
	)
}

// withinBounds refuses hashes that would cost far more than configured, so a
// tampered row cannot turn a login into a resource sink.
func withinBounds(got, limits Params) bool {
	if got.Memory > limits.Memory*2 {
		return false
	}
	if got.Iterations > limits.Iterations*2 {
		return false
	}
	if uint32(got.Parallelism) > uint32(limits.Parallelism)*2 {
		return false
	}
	return got.validate() == nil
}

// decode parses $argon2id$v=19$m=<m>,t=<t>,p=<p>$<digest>.
func decode(encoded string) (Params, []byte, bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != algorithm {
		return Params{}, nil, false
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Params{}, nil, false
	}

	var mem, it, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
		return Params{}, nil, false
	}
	// Sscanf stops at the last verb, so trailing input has to be caught here.
	if parts[3] != fmt.Sprintf("m=%d,t=%d,p=%d", mem, it, par) {
		return Params{}, nil, false
	}
	if par == 0 || par > 255 {
		return Params{}, nil, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(key) == 0 {
		return Params{}, nil, false
	}

	return Params{
		Memory:      mem,
		Iterations:  it,
		Parallelism: uint8(par),
		KeyLength:   uint32(len(key)),
	}, key, true
}
