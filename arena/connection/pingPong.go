package connection

import (
	"time"

	"kataserver/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// MaintainWebSocketConnection menjaga koneksi klien dengan Ping/Pong.
// Kegagalan ping menutup koneksi, yang membuat loop baca klien berakhir
// dan jalur disconnect berjalan.
func MaintainWebSocketConnection(c *models.Client, logger *zap.Logger) {
	defer c.Conn.Close()

	// Setiap Pong memperpanjang deadline baca
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingPeriod := 10 * time.Second
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		// WriteControl aman dipanggil bersamaan dengan tulisan lain
		err := c.Conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		if err != nil {
			logger.Info("Ping failed, closing connection", zap.String("connID", c.ID), zap.Error(err))
			return
		}
	}
}
