package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrong(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets policy", "Abcdef1!", true},
		{"long and mixed", "Tr0ub4dor&3xyz", true},
		{"exotic symbol counts", "Abcdefg1~", true},
		{"too short", "Ab1!xyz", false},
		{"no upper", "abcdef1!", false},
		{"no lower", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"empty", "", false},
		{"spaces are not symbols", "Abcdef1 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrong(tt.password))
		})
	}
}

func TestGenerateRandom(t *testing.T) {
	out, err := GenerateRandom(32)
	require.NoError(t, err)
	assert.Len(t, out, 32)

	other, err := GenerateRandom(32)
	require.NoError(t, err)
	assert.NotEqual(t, out, other)
}

func TestGenerateRandom_EnforcesMinimumLength(t *testing.T) {
	out, err := GenerateRandom(2)
	require.NoError(t, err)
	assert.Len(t, out, 8)
}
