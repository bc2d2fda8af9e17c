package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/forkful/menuboard/internal/errors"
)

func TestNewStateToken_Shape(t *testing.T) {
	seen := map[string]bool{}
	for range 50 {
		tok, err := NewStateToken()
		require.NoError(t, err)
		assert.Len(t, tok, 32)
		for _, c := range tok {
			assert.Contains(t, stateTokenAlphabet, string(c))
		}
		assert.False(t, seen[tok], "tokens must not repeat")
		seen[tok] = true
	}
}

func TestValidateStateToken(t *testing.T) {
	tok := strings.Repeat("A", 32)

	require.NoError(t, ValidateStateToken(tok, tok))

	err := ValidateStateToken(tok, "WRONG")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	// Near miss: differs in one byte.
	almost := tok[:31] + "B"
	assert.True(t, apperrors.IsInvalidState(ValidateStateToken(tok, almost)))

	// A session with no issued token rejects every received token.
	assert.True(t, apperrors.IsInvalidState(ValidateStateToken("", tok)))
	assert.True(t, apperrors.IsInvalidState(ValidateStateToken("", "")))
}
