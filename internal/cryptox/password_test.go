package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	ok, err := ComparePassword(hash, []byte("s3cret"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePassword(hash, []byte("wrong"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestComparePassword_MalformedHash(t *testing.T) {
	ok, err := ComparePassword("not-a-bcrypt-hash", []byte("x"))
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword([]byte("pw"), 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestWipeBytes(t *testing.T) {
	b := []byte("secret")
	WipeBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("b[%d] = %d, want 0", i, v)
		}
	}
	WipeBytes(nil)
}
