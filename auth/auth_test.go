package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAuthenticator_GenerateAndValidate(t *testing.T) {
	req := require.New(t)
	authenticator := NewAuthenticator([]byte("test-signing-key"), time.Hour)

	token, err := authenticator.GenerateToken("admin")
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := authenticator.ValidateToken(token)
	req.NoError(err)
	req.Equal("admin", claims.Subject)
	req.Contains(claims.Roles, "admin")
	req.Equal("roulette-lab", claims.Issuer)
}

func TestAuthenticator_RejectsExpiredToken(t *testing.T) {
	req := require.New(t)
	authenticator := NewAuthenticator([]byte("test-signing-key"), -time.Minute)

	token, err := authenticator.GenerateToken("admin")
	req.NoError(err)

	_, err = authenticator.ValidateToken(token)
	req.Error(err)
}

func TestAuthenticator_RejectsForeignKey(t *testing.T) {
	req := require.New(t)

	token, err := NewAuthenticator([]byte("key-a"), time.Hour).GenerateToken("admin")
	req.NoError(err)

	_, err = NewAuthenticator([]byte("key-b"), time.Hour).ValidateToken(token)
	req.Error(err)
}

func TestCompareSecret(t *testing.T) {
	req := require.New(t)

	hash, err := HashSecret("s3cret-roulette")
	req.NoError(err)

	ok, err := CompareSecret("s3cret-roulette", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = CompareSecret("wrong", hash)
	req.NoError(err)
	req.False(ok)
}

func TestCompareSecret_InvalidHashFormat(t *testing.T) {
	_, err := CompareSecret("anything", "not-a-hash")
	require.Error(t, err)
}
