package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    AuthMode
		wantErr bool
	}{
		{in: "oauth", want: AuthModeOAuth},
		{in: "OAuth", want: AuthModeOAuth},
		{in: "mock", want: AuthModeMock},
		{in: "basic", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var m AuthMode
			err := m.UnmarshalText([]byte(tc.in))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, m)
		})
	}
}

func TestAuthConfig_SanitizeDefaults(t *testing.T) {
	a := AuthConfig{SessionTTL: -time.Minute, ProviderTimeout: 0}
	a.Sanitize()
	assert.Equal(t, 24*time.Hour, a.SessionTTL)
	assert.Equal(t, 10*time.Second, a.ProviderTimeout)
}

func TestHTTPConfig_SanitizeCookieDomain(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		want   string
	}{
		{name: "empty stays empty", domain: "", want: ""},
		{name: "registrable domain kept", domain: "menu.example.com", want: "menu.example.com"},
		{name: "bare TLD rejected", domain: "com", want: ""},
		{name: "multi-label public suffix rejected", domain: ".co.uk", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := HTTPConfig{Addr: ":8080", CookieDomain: tc.domain}
			h.Sanitize()
			assert.Equal(t, tc.want, h.CookieDomain)
		})
	}
}

func TestHTTPConfig_SanitizeAddr(t *testing.T) {
	h := HTTPConfig{}
	h.Sanitize()
	assert.Equal(t, ":8080", h.Addr)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	c := AppConfig{}
	c.Sanitize()
	assert.True(t, c.IsDev)
}
