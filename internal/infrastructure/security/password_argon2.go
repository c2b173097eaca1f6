package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/marcelo-m-oliveira/quaint-money-flow-sub001/internal/domain/interfaces"
)

// Argon2idParams holds the tunable work factors for Argon2id hashing.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams returns moderate production defaults.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{
		Memory:      64 * 1024, // 64MB
		Iterations:  3,
		Parallelism: 4,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2idHasher implements interfaces.PasswordHasher using Argon2id.
// Hashes are encoded as:
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt_b64>$<hash_b64>
type Argon2idHasher struct {
	params Argon2idParams
}

// NewArgon2idHasher creates a new Argon2idHasher. Zero-valued params fall
// back to the defaults.
func NewArgon2idHasher(params Argon2idParams) *Argon2idHasher {
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 ||
		params.SaltLength == 0 || params.KeyLength == 0 {
		params = DefaultArgon2idParams()
	}
	return &Argon2idHasher{params: params}
}

// Hash creates an Argon2id hash with a fresh random salt.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt,
		h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Iterations, h.params.Parallelism, b64Salt, b64Hash)
	return encoded, nil
}

// Verify checks a password against an encoded hash. A malformed hash
// verifies as false rather than returning an error; the comparison itself
// is constant-time.
func (h *Argon2idHasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, hash, ok := decodeHash(encodedHash)
	if !ok {
		return false, nil
	}

	// Use the parameters embedded in the hash, not h.params, so hashes
	// created under older settings still verify.
	other := argon2.IDKey([]byte(password), salt,
		params.Iterations, params.Memory, params.Parallelism, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, other) == 1, nil
}

func decodeHash(encodedHash string) (Argon2idParams, []byte, []byte, bool) {
	var params Argon2idParams

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return params, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, false
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, false
	}

	params.SaltLength = uint32(len(salt))
	params.KeyLength = uint32(len(hash))
	return params, salt, hash, true
}

var _ interfaces.PasswordHasher = (*Argon2idHasher)(nil)
