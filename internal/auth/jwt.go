package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secretKey returns the signing key for every token we issue. It is read on
// each use rather than at package init, because main loads the .env file after
// this package initializes: a startup-time read would silently miss a
// JWT_SECRET supplied that way. The fallback only exists so local development
// works without a .env.
func secretKey() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-secret-change-me")
}

// GenerateToken creates a new JWT for a given customer ID.
func GenerateToken(customerID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": customerID,                           // subject = customer ID
		"exp": time.Now().Add(time.Hour * 1).Unix(), // expires in 1 hour
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the customer ID (subject) if the token is valid.
func ValidateToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return 0, err // expired or malformed
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		customerIDFloat, ok := claims["sub"].(float64)
		if !ok {
			return 0, errors.New("invalid subject claim")
		}
		return int64(customerIDFloat), nil
	}

	return 0, errors.New("invalid token")
}
