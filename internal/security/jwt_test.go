package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/security"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := security.NewJWTManager("secret", time.Hour)

	token, expiresAt, err := m.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "shopchat", claims.Issuer)
}

func TestJWTManager_RejectsOtherSecret(t *testing.T) {
	token, _, err := security.NewJWTManager("secret", time.Hour).GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = security.NewJWTManager("other", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := security.NewJWTManager("secret", -time.Minute)
	token, _, err := m.GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	_, err := security.NewJWTManager("secret", time.Hour).ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := security.HashPassword("s3cret")
	require.NoError(t, err)

	assert.NoError(t, security.CheckPassword(hash, "s3cret"))
	assert.ErrorIs(t, security.CheckPassword(hash, "wrong"), security.ErrPasswordMismatch)
	assert.ErrorIs(t, security.CheckPassword("", "s3cret"), security.ErrPasswordMismatch)
}

func TestMessageSanitizer(t *testing.T) {
	s := security.NewMessageSanitizer(10)

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "hola", "hola", false},
		{"keeps newline", "a\nb", "a\nb", false},
		{"strips control", "ho\x00la\x07", "hola", false},
		{"accents count as runes", "áéíóúñáéíó", "áéíóúñáéíó", false},
		{"too long", "12345678901", "", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Sanitize(tt.in)
			if tt.wantErr {
				var ve *security.ValidationError
				assert.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessageSanitizer_NoLimit(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'a'
	}
	got, err := security.NewMessageSanitizer(0).Sanitize(string(long))
	require.NoError(t, err)
	assert.Len(t, got, 5000)
}
