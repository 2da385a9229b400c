package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	digest, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2a$12$"), "digest should carry cost 12: %s", digest)

	assert.True(t, Verify("correct horse battery staple", digest))
	assert.False(t, Verify("correct horse battery stapl", digest))
	assert.False(t, Verify("", digest))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("same password")
	require.NoError(t, err)
	b, err := Hash("same password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two hashes of the same password must differ")
}

func TestVerify_GarbageDigest(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-digest"))
}
