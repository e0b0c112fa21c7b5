package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"nestview/config"
	"nestview/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT carrying the caller's id and role.
// The token expires after the specified duration.
func GenerateToken(identity models.Identity, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  identity.ID,
		"role": string(identity.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIdentityFromToken extracts the caller identity from a valid JWT.
// The role claim is validated against the closed role enum.
func ExtractIdentityFromToken(tokenString string) (models.Identity, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Identity{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Identity{}, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Identity{}, errors.New("token does not contain a valid 'sub' claim")
	}
	rawRole, ok := claims["role"].(string)
	if !ok {
		return models.Identity{}, errors.New("token does not contain a 'role' claim")
	}
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return models.Identity{}, err
	}

	return models.Identity{ID: sub, Role: role}, nil
}
