package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2idHasher_HashAndVerify(t *testing.T) {
	hasher := NewArgon2idHasher(DefaultArgon2idParams())

	encoded, err := hasher.Hash("Correct!Horse1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	ok, err := hasher.Verify("Correct!Horse1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("Wrong!Horse1", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idHasher_SaltsAreUnique(t *testing.T) {
	hasher := NewArgon2idHasher(DefaultArgon2idParams())

	first, err := hasher.Hash("Same!Password1")
	require.NoError(t, err)
	second, err := hasher.Hash("Same!Password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2idHasher_MalformedHashVerifiesFalse(t *testing.T) {
	hasher := NewArgon2idHasher(DefaultArgon2idParams())

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$onlyfourparts",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=banana,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
	}

	for _, hash := range malformed {
		ok, err := hasher.Verify("whatever", hash)
		require.NoError(t, err, "hash %q", hash)
		assert.False(t, ok, "hash %q", hash)
	}
}

func TestArgon2idHasher_VerifyUsesEmbeddedParams(t *testing.T) {
	// A hash minted under lighter settings must still verify after the
	// service's defaults change.
	old := NewArgon2idHasher(Argon2idParams{
		Memory:      16 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	encoded, err := old.Hash("Legacy!Pass1")
	require.NoError(t, err)

	current := NewArgon2idHasher(DefaultArgon2idParams())
	ok, err := current.Verify("Legacy!Pass1", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewArgon2idHasher_ZeroParamsFallBack(t *testing.T) {
	hasher := NewArgon2idHasher(Argon2idParams{})

	encoded, err := hasher.Hash("Some!Password1")
	require.NoError(t, err)
	assert.Contains(t, encoded, "m=65536,t=3,p=4")
}
