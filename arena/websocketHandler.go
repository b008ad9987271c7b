package arena

import (
	"context"
	"net/http"

	"kataserver/arena/connection"
	"kataserver/arena/registry"
	"kataserver/arena/rounds"
	"kataserver/arena/validation"
	"kataserver/middlewares"
	"kataserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// HandleConnections meng-upgrade request menjadi koneksi websocket dan
// memasang goroutine baca serta ping/pong untuk klien baru.
func HandleConnections(ctx context.Context, w http.ResponseWriter, r *http.Request, reg *registry.Registry, engine *validation.Engine, sched *rounds.Scheduler, rdb *redis.Client, logger *zap.Logger, upgrader websocket.Upgrader) {
	// Nama tampilan diambil dari token tamu jika ada, selain itu dari query
	username := r.URL.Query().Get("username")
	if claims, err := middlewares.ParseGuestToken(r.Header.Get("Authorization")); err == nil && claims.Username != "" {
		username = claims.Username
	}
	if username == "" {
		username = "Tamu"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := &models.Client{
		Conn:     conn,
		ID:       uuid.New().String(),
		Username: username,
	}

	// Pemulihan sesi: identitas koneksi lama dipakai lagi, sesi lama
	// dihapus dan sesi baru diterbitkan. Timer ronde yang hilang karena
	// restart proses tidak dipulihkan di sini.
	if sessionID := r.Header.Get("SessionID"); sessionID != "" {
		if restored := connection.ValidateSessionID(ctx, rdb, sessionID, logger); restored != nil {
			client.ID = restored.ID
			if restored.Username != "" {
				client.Username = restored.Username
			}
			connection.DeleteSession(ctx, rdb, sessionID)
			logger.Info("Session restored", zap.String("connID", client.ID))
		}
	}

	if err := connection.GenerateAndStoreSessionID(ctx, client, rdb, logger); err != nil {
		logger.Error("Failed to generate or store session ID", zap.Error(err))
	}

	logger.Info("New client connected", zap.String("connID", client.ID), zap.String("username", client.Username))

	go connection.MaintainWebSocketConnection(client, logger)
	go connection.HandleClient(ctx, client, reg, engine, sched, logger)
}
