package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPIN(t *testing.T) {
	t.Parallel()

	hash, err := HashPIN("4821")
	require.NoError(t, err)

	assert.True(t, CheckPIN(hash, "4821"))
	assert.False(t, CheckPIN(hash, "4822"))
	assert.False(t, CheckPIN(nil, "4821"))
}

func TestEqualizeCompare_DoesNotPanic(t *testing.T) {
	t.Parallel()
	EqualizeCompare("0000")
}
