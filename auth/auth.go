package auth

import (
	"os"
)

// JwtKey dipakai untuk menandatangani token tamu. Di produksi diisi
// lewat environment variable JWT_KEY.
var JwtKey = loadJwtKey()

func loadJwtKey() []byte {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("kataserver-dev-key")
}
