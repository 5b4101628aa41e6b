package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ladanze/auth-api/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("no failures returns nil", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.ValidEmail("email", "alice@example.com"),
			validator.MinLength("password", "password1", 8),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.ValidEmail("email", "not-an-email"),
			validator.MinLength("password", "short", 8),
		)
		require.Error(t, err)

		ve := validator.Extract(err)
		require.Len(t, ve, 2)
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("password"))
		assert.Equal(t, []string{"email", "password"}, ve.Fields())
	})

	t.Run("extract from non-validation error", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, validator.Extract(assert.AnError))
		assert.Nil(t, validator.Extract(nil))
	})
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"alice@example.com",
		"a.b+tag@sub.domain.org",
		"x_y@host.co",
	}
	for _, email := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}

	invalid := []string{
		"",
		"   ",
		"plainaddress",
		"@example.com",
		"user@",
		"user@nodot",
		"user@.example.com",
		"user@example.com.",
		"Alice <alice@example.com>",
	}
	for _, email := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", email)), email)
	}
}

func TestMinLength(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MinLength("password", "12345678", 8)))
	assert.Error(t, validator.Apply(validator.MinLength("password", "1234567", 8)))

	// Multibyte input counts characters, not bytes.
	assert.NoError(t, validator.Apply(validator.MinLength("password", "pässwörd", 8)))
	assert.Error(t, validator.Apply(validator.MinLength("password", "pässwö", 8)))
}

func TestRequired(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.Required("username", "alice")))
	assert.Error(t, validator.Apply(validator.Required("username", "  ")))
}
