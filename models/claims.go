package models

import (
	jwt "github.com/dgrijalva/jwt-go"
)

// GuestClaims adalah isi token tamu yang dibawa klien ke handshake websocket.
type GuestClaims struct {
	SessionID string `json:"sessionId"`
	Username  string `json:"username"`
	jwt.StandardClaims
}
