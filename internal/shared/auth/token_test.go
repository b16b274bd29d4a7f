package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "autoshop-test", time.Hour)
	require.NoError(t, err)

	identity := Identity{ID: "profile-1", Email: "ada@example.com", FullName: "Ada Lovelace", Role: RoleAdmin}
	token, expiresAt, err := issuer.Issue(identity, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	parsed, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, identity.ID, parsed.ID)
	require.Equal(t, identity.Email, parsed.Email)
	require.Equal(t, RoleAdmin, parsed.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer("secret-a", "autoshop-test", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("secret-b", "autoshop-test", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue(Identity{ID: "profile-1", Role: RoleCustomer}, time.Now())
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", "autoshop-test", time.Minute)
	require.NoError(t, err)

	token, _, err := issuer.Issue(Identity{ID: "profile-1", Role: RoleCustomer}, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("", "autoshop-test", time.Hour)
	require.Error(t, err)
}
