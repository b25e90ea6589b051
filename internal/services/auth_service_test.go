package services

import (
	"testing"

	"github.com/electrobid/electrobid-api/internal/dto"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db, testConfig())

	tests := []struct {
		name     string
		req      dto.RegisterRequest
		wantRole string
		wantErr  bool
	}{
		{
			name:     "seller_registration",
			req:      dto.RegisterRequest{FullName: "Ada Seller", Email: "Ada@Example.com", Password: "secret-pass", Role: "Seller"},
			wantRole: models.RoleSeller,
		},
		{
			name:     "unknown_role_falls_back_to_buyer",
			req:      dto.RegisterRequest{FullName: "Bob Buyer", Email: "bob@example.com", Password: "secret-pass", Role: "superuser"},
			wantRole: models.RoleBuyer,
		},
		{
			name:    "missing_full_name",
			req:     dto.RegisterRequest{Email: "x@example.com", Password: "secret-pass"},
			wantErr: true,
		},
		{
			name:    "short_password",
			req:     dto.RegisterRequest{FullName: "C", Email: "c@example.com", Password: "short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Register(&tt.req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, resp.Role)
		})
	}

	// Email is stored lowercase and duplicates are rejected case-insensitively.
	_, err := service.Register(&dto.RegisterRequest{FullName: "Imposter", Email: "ada@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	service := NewAuthService(db, cfg)

	_, err := service.Register(&dto.RegisterRequest{
		FullName: "Ada Seller", Email: "ada@example.com", Password: "secret-pass", Role: "seller",
	})
	require.NoError(t, err)

	resp, err := service.Login(&dto.LoginRequest{Email: "ADA@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, resp.User.Role)
	require.NotEmpty(t, resp.Token)

	// Token carries the role claim the middleware gates on.
	parsed, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, models.RoleSeller, claims["role"])
	assert.Equal(t, resp.User.ID.String(), claims["sub"])

	_, err = service.Login(&dto.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Users(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(db, testConfig())

	created, err := service.Register(&dto.RegisterRequest{
		FullName: "Ada Seller", Email: "ada@example.com", Password: "secret-pass", Role: "seller",
	})
	require.NoError(t, err)

	user, err := service.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)

	users, err := service.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
