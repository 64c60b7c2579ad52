package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.True(t, CheckPassword(hash, "rahasia123"))
	assert.False(t, CheckPassword(hash, "salah"))
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "seller@candi.id", RoleSeller, testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "seller@candi.id", claims.Email)
	assert.Equal(t, RoleSeller, claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "a@b.id", RoleCustomer, testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_EmptySecret(t *testing.T) {
	_, err := GenerateAccessToken(1, "a@b.id", RoleCustomer, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	_, err = ValidateToken("whatever", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestValidateToken_Expired(t *testing.T) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:    7,
		Email:     "expired@lokatiket.id",
		Role:      RoleSeller,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "lokatiket-api",
			Audience:  []string{"lokatiket-users"},
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshAccessToken(t *testing.T) {
	_, refreshToken, err := GenerateTokens(9, "admin@lokatiket.id", RoleAdmin, testSecret, testSecret)
	require.NoError(t, err)

	newAccess, claims, err := RefreshAccessToken(refreshToken, testSecret, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.Equal(t, 9, claims.UserID)

	validated, err := ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", validated.TokenType)
}

func TestRefreshAccessToken_RejectsAccessToken(t *testing.T) {
	accessToken, err := GenerateAccessToken(9, "admin@lokatiket.id", RoleAdmin, testSecret)
	require.NoError(t, err)

	_, _, err = RefreshAccessToken(accessToken, testSecret, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
