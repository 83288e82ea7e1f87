package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"compliance-hub-backend/pkg/models"
)

// JWTService issues and verifies the HS256 tokens shared with the identity
// provider. The API only verifies; issuing is used by local tooling and tests.
type JWTService struct {
	secretKey []byte
}

// NewJWTService creates a JWTService around the shared secret.
func NewJWTService(secretKey string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
	}
}

// GenerateAccessToken issues a 15-minute access token for the given user.
func (j *JWTService) GenerateAccessToken(userID, email string) (string, int64, error) {
	now := time.Now()
	expiry := now.Add(15 * time.Minute)

	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Type:   "access",
		Exp:    expiry.Unix(),
		Iat:    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	return tokenString, expiry.Unix(), nil
}

// ValidateToken parses and verifies a token string, returning its claims.
func (j *JWTService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}

	return claims, nil
}
