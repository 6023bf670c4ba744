package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/security"
)

func TestAdminService_Login(t *testing.T) {
	hash, err := security.HashPassword("s3cret")
	require.NoError(t, err)
	jwtManager := security.NewJWTManager("test-secret", time.Hour)
	svc := NewAdminService(hash, jwtManager)

	_, err = svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	token, err := svc.Login(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	claims, err := jwtManager.ValidateAccessToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestAdminService_Disabled(t *testing.T) {
	svc := NewAdminService("", security.NewJWTManager("x", time.Hour))
	assert.False(t, svc.Enabled())

	_, err := svc.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrAuthDisabled)
}
