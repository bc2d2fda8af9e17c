package service

import (
	"crypto/rand"
	"fmt"

	apperrors "github.com/forkful/menuboard/internal/errors"
)

// State tokens are the per-session anti-forgery values echoed back by the
// provider redirect. 32 characters drawn uniformly from A-Z0-9 via
// crypto/rand; single use.
const (
	stateTokenLength   = 32
	stateTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewStateToken produces a fresh cryptographically unpredictable state token.
func NewStateToken() (string, error) {
	buf := make([]byte, stateTokenLength)
	out := make([]byte, 0, stateTokenLength)
	for len(out) < stateTokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate state token: %w", err)
		}
		// Rejection sampling keeps the distribution uniform over the alphabet.
		for _, b := range buf {
			if int(b) >= 256-256%len(stateTokenAlphabet) {
				continue
			}
			out = append(out, stateTokenAlphabet[int(b)%len(stateTokenAlphabet)])
			if len(out) == stateTokenLength {
				break
			}
		}
	}
	return string(out), nil
}

// ValidateStateToken checks the token echoed by the provider against the one
// issued for this session. Exact byte equality only; a session that never
// issued a token rejects everything. The caller must clear the session token
// immediately on success so it cannot be replayed.
func ValidateStateToken(sessionToken, receivedToken string) error {
	if sessionToken == "" {
		return apperrors.InvalidState("no state token was issued for this session")
	}
	if sessionToken != receivedToken {
		return apperrors.InvalidState("invalid state parameter")
	}
	return nil
}
