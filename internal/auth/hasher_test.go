package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", digest)

	assert.True(t, auth.CheckPassword("s3cret!", digest))
	assert.False(t, auth.CheckPassword("wrong", digest))
	assert.False(t, auth.CheckPassword("s3cret!", "not-a-digest"))
}

func TestHashPasswordSaltsEveryDigest(t *testing.T) {
	first, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	second, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
