package middlewares

import (
	"fmt"
	"strings"

	"kataserver/auth"
	"kataserver/models"

	jwt "github.com/dgrijalva/jwt-go"
)

// ParseGuestToken memverifikasi token tamu dari header Authorization
// (dengan atau tanpa prefiks Bearer) dan mengembalikan claims-nya.
func ParseGuestToken(tokenString string) (*models.GuestClaims, error) {
	if strings.HasPrefix(tokenString, "Bearer ") {
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	}
	if tokenString == "" {
		return nil, fmt.Errorf("token kosong")
	}

	claims := &models.GuestClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return auth.JwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	return claims, nil
}
