package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
	"github.com/vfg2006/budget-pacing-api/pkg/apiErrors"
)

const secret = "segredo-de-teste"

func sign(t *testing.T, method jwt.SigningMethod, key any, expiresAt time.Time) string {
	t.Helper()

	claims := domain.Claims{
		UserID:     7,
		UserEmail:  "gestor@agencia.com",
		UserRoleID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: secret}})

	t.Run("Token válido", func(t *testing.T) {
		claims, err := service.ValidateToken(sign(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, 1, claims.UserRoleID)
	})

	tests := []struct {
		name         string
		token        func(t *testing.T) string
		expectedErr  error
		expectedCode string
	}{
		{
			name:         "Token ausente",
			token:        func(*testing.T) string { return "" },
			expectedErr:  ErrMissingToken,
			expectedCode: apiErrors.ErrInvalidToken,
		},
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(secret), time.Now().Add(-time.Hour))
			},
			expectedErr:  ErrExpiredToken,
			expectedCode: apiErrors.ErrExpiredToken,
		},
		{
			name: "Assinado com outro segredo",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("outro"), time.Now().Add(time.Hour))
			},
			expectedErr:  ErrInvalidToken,
			expectedCode: apiErrors.ErrInvalidToken,
		},
		{
			name:         "Token malformado",
			token:        func(*testing.T) string { return "abc.def" },
			expectedErr:  ErrInvalidToken,
			expectedCode: apiErrors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.expectedCode, authErr.Code)
		})
	}
}
