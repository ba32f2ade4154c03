package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)

	user, pair, err := env.auth.SignUp("Alice@Example.com", "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsOnline)
	require.NotNil(t, user.RefreshToken)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	// The hash round-trips, the plaintext is gone.
	assert.NotEqual(t, "password123", user.Password)
	require.NoError(t, env.auth.ComparePassword("password123", user.Password))

	signedIn, pair, err := env.auth.SignIn("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.SignUp("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, _, err = env.auth.SignUp("alice@example.com", "other", "password456")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestSignUp_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.SignUp("not-an-email", "alice", "password123")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.auth.SignUp("alice@example.com", "alice", "short")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.auth.SignUp("alice@example.com", "", "password123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.SignIn("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = env.auth.SignUp("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, _, err = env.auth.SignIn("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken(t *testing.T) {
	env := newTestEnv(t)

	pair, err := env.auth.IssueTokens("user-1")
	require.NoError(t, err)

	subject, err := env.auth.VerifyToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	_, err = env.auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with another secret is rejected.
	other := NewAuthService(env.users, "other-secret", time.Hour, time.Hour, false)
	otherPair, err := other.IssueTokens("user-1")
	require.NoError(t, err)
	_, err = env.auth.VerifyToken(otherPair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	env := newTestEnv(t)

	expired := NewAuthService(env.users, "test-secret", -time.Minute, -time.Minute, false)
	pair, err := expired.IssueTokens("user-1")
	require.NoError(t, err)

	_, err = env.auth.VerifyToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)

	user, pair, err := env.auth.SignUp("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	refreshed, newPair, err := env.auth.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.ID)
	assert.NotEmpty(t, newPair.AccessToken)

	// The old refresh token still verifies after rotation; only signature
	// and expiry are checked.
	_, _, err = env.auth.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	_, _, err = env.auth.Refresh("garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestSignOut(t *testing.T) {
	env := newTestEnv(t)

	user, _, err := env.auth.SignUp("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	require.NoError(t, env.auth.SignOut(user.ID))

	stored, err := env.users.ByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOnline)
	assert.Nil(t, stored.RefreshToken)
}
