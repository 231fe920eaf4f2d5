package security

import (
	"encoding/json"
	"errors"
	"time"

	"stackit/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a signed token carrying the user's identity snapshot.
// Expiry is config-driven (7 days by default).
func GenerateToken(userID int64, email, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    email,
		"username": username,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(config.AppConfig.JWTExp).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, can be used in middleware or services.
// Verified tokens pass through JSON, so numeric claims come back as float64
// or json.Number depending on the decoder.
func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	switch v := claims["user_id"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	}
	return 0, errors.New("user_id claim is missing or not a number")
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}
