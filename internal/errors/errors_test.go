package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := NotFound("restaurant not found")
	assert.Equal(t, "restaurant not found", e.Error())

	cause := errors.New("boom")
	wrapped := Wrap(cause, ErrCodeInternal, "query failed")
	assert.Equal(t, "query failed: boom", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestAuthErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  ErrorCode
	}{
		{"invalid state", InvalidState("state mismatch"), IsInvalidState, ErrCodeInvalidState},
		{"exchange", Exchange("token exchange rejected", errors.New("401")), IsExchange, ErrCodeExchange},
		{"profile", Profile("profile missing email", nil), IsProfile, ErrCodeProfile},
		{"already connected", AlreadyConnected("current user already connected"), IsAlreadyConnected, ErrCodeAlreadyConnected},
		{"not connected", NotConnected("current user not connected"), IsNotConnected, ErrCodeNotConnected},
		{"forbidden", Forbidden(), IsForbidden, ErrCodeForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, tc.check(tc.err))
			assert.Equal(t, tc.code, GetCode(tc.err))
		})
	}
}

func TestAuthErrorKinds_SurviveWrapping(t *testing.T) {
	err := fmt.Errorf("complete login: %w", InvalidState("state mismatch"))
	assert.True(t, IsInvalidState(err))
	assert.False(t, IsExchange(err))
}

func TestIsInformational(t *testing.T) {
	assert.True(t, IsInformational(AlreadyConnected("already")))
	assert.True(t, IsInformational(NotConnected("nothing to do")))
	assert.False(t, IsInformational(Forbidden()))
	assert.False(t, IsInformational(nil))
}

func TestGetField(t *testing.T) {
	err := ValidationField("email", "email is required")
	assert.Equal(t, "email", GetField(err))
	assert.Equal(t, "", GetField(errors.New("plain")))
}

func TestForbidden_GenericMessage(t *testing.T) {
	// The authorization denial message must never leak ownership details.
	assert.NotContains(t, Forbidden().Error(), "owner")
}
