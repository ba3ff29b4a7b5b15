package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	utils.InitJWT("test-secret")
	svc, err := NewAuthService([]Operator{
		{ID: "1", Username: "admin", Password: "admin123", Role: "admin", DisplayName: "Administrator"},
		{ID: "2", Username: "staff", Password: "staff123", Role: "staff", DisplayName: "Staff Toko"},
	})
	require.NoError(t, err)
	return svc
}

func TestAuthServiceLogin(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("Valid credentials issue a token", func(t *testing.T) {
		resp, err := svc.Login(models.Credentials{Username: "admin", Password: "admin123"})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.User.Username)
		assert.Equal(t, "admin", resp.User.Role)
		require.NotEmpty(t, resp.AccessToken)

		claims, err := utils.ValidateToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(models.Credentials{Username: "admin", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown username", func(t *testing.T) {
		_, err := svc.Login(models.Credentials{Username: "nobody", Password: "admin123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthServiceGetUserProfile(t *testing.T) {
	svc := newTestAuthService(t)

	t.Run("Known user", func(t *testing.T) {
		user, err := svc.GetUserProfile("staff")
		require.NoError(t, err)
		assert.Equal(t, "Staff Toko", user.DisplayName)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := svc.GetUserProfile("nobody")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDefaultOperators(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "kepala")
	t.Setenv("ADMIN_PASSWORD", "rahasia")

	operators := DefaultOperators()
	require.Len(t, operators, 2)
	assert.Equal(t, "kepala", operators[0].Username)
	assert.Equal(t, "rahasia", operators[0].Password)
	assert.Equal(t, "staff", operators[1].Username)
}
