package screens

import (
	"net/http"

	"kataserver/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GuestTokenRequest adalah body permintaan token tamu.
type GuestTokenRequest struct {
	Username string `json:"username"`
}

// GuestTokenHandler menerbitkan token tamu yang dibawa klien ke
// handshake websocket. Pemain tidak punya akun.
func GuestTokenHandler(c *gin.Context, logger *zap.Logger) {
	var request GuestTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Error("Request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}
	if request.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	token, sessionID, err := middlewares.GenerateGuestToken(request.Username)
	if err != nil {
		logger.Error("Failed to generate guest token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"sessionId": sessionID,
		"username":  request.Username,
	})
}
