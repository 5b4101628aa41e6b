package randtoken_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladanze/auth-api/pkg/randtoken"
)

var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestNew(t *testing.T) {
	t.Parallel()

	token, err := randtoken.New()
	require.NoError(t, err)
	assert.Len(t, token, randtoken.Size)
	assert.Regexp(t, tokenPattern, token)
}

func TestNewWithSize(t *testing.T) {
	t.Parallel()

	token, err := randtoken.NewWithSize(16)
	require.NoError(t, err)
	assert.Len(t, token, 16)

	_, err = randtoken.NewWithSize(0)
	assert.Error(t, err)

	_, err = randtoken.NewWithSize(-1)
	assert.Error(t, err)
}

func TestUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 1000 {
		token := randtoken.Must()
		require.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}
