package screens

import (
	"net/http"

	"kataserver/arena/registry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomInfoHandler menerjemahkan kode undangan menjadi info publik room,
// dipakai layar join sebelum klien membuka websocket.
func RoomInfoHandler(c *gin.Context, reg *registry.Registry, logger *zap.Logger) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code is required"})
		return
	}

	roomID, ok := reg.ResolveInvite(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var response gin.H
	err := reg.WithRoom(roomID, func(live *registry.LiveRoom) error {
		response = gin.H{
			"roomId":       live.Room.ID,
			"status":       live.Room.Status,
			"playerCount":  len(live.Members),
			"gameSettings": live.Room.Settings,
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	c.JSON(http.StatusOK, response)
}
