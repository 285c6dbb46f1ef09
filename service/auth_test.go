package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	users := newMemUserRepo()
	tokenizer := &stubTokenizer{}
	auth, err := NewAuthService(users, tokenizer)
	require.NoError(t, err)

	const password = "correct-horse-battery-staple"

	t.Run("Register then sign in", func(t *testing.T) {
		require.NoError(t, auth.Register("builder", password))

		user, token, err := auth.SignIn("builder", password)
		require.NoError(t, err)
		assert.Equal(t, "token", token)
		assert.Equal(t, "builder", user.Username)
		assert.Equal(t, user.ID.String(), tokenizer.claims["userID"])
		assert.Equal(t, tokenLifetime, tokenizer.exp)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		assert.ErrorIs(t, auth.Register("builder", password), ErrUsernameTaken)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn("builder", "not-the-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, _, err := auth.SignIn("nobody", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Missing dependencies", func(t *testing.T) {
		_, err := NewAuthService(nil, tokenizer)
		assert.Error(t, err)
	})
}
