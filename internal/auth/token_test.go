package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/auth"
)

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenCodec("   ")
	require.ErrorIs(t, err, auth.ErrSecretRequired)
}

func TestTokenRoundTrip(t *testing.T) {
	codec, err := auth.NewTokenCodec("test-secret")
	require.NoError(t, err)

	token, err := codec.Issue("651a4f9c2b3d4e5f6a7b8c9d")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, access, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "651a4f9c2b3d4e5f6a7b8c9d", subject)
	assert.Equal(t, auth.AccessAuth, access)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec, err := auth.NewTokenCodec("test-secret")
	require.NoError(t, err)

	for _, token := range []string{"", "1234", "a.b.c", "header.payload"} {
		_, _, err := codec.Verify(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, "token %q should not verify", token)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer, err := auth.NewTokenCodec("secret-one")
	require.NoError(t, err)
	verifier, err := auth.NewTokenCodec("secret-two")
	require.NoError(t, err)

	token, err := issuer.Issue("651a4f9c2b3d4e5f6a7b8c9d")
	require.NoError(t, err)

	_, _, err = verifier.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	codec, err := auth.NewTokenCodec("test-secret")
	require.NoError(t, err)

	token, err := codec.Issue("651a4f9c2b3d4e5f6a7b8c9d")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, _, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
