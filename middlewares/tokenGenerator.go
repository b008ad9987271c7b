package middlewares

import (
	"time"

	"kataserver/auth"
	"kataserver/models"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// GenerateGuestToken membuat token tamu baru berisi identitas sesi dan
// nama tampilan. Pemain tidak punya akun; token ini satu-satunya identitas.
func GenerateGuestToken(username string) (string, string, error) {
	sessionID := uuid.New().String()
	expirationTime := time.Now().Add(72 * time.Hour)

	claims := &models.GuestClaims{
		SessionID: sessionID,
		Username:  username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JwtKey)
	if err != nil {
		return "", "", err
	}
	return tokenString, sessionID, nil
}
