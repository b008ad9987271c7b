package connection

import (
	"context"

	"kataserver/arena/actions"
	"kataserver/arena/registry"
	"kataserver/arena/rounds"
	"kataserver/arena/validation"
	"kataserver/models"

	"go.uber.org/zap"
)

// HandleClient membaca pesan dari satu klien dan meneruskannya ke
// handler sesuai field "type". Satu goroutine per klien; karena semua
// mutasi room lewat lock per room, pesan satu room diproses sesuai
// urutan tiba.
func HandleClient(ctx context.Context, client *models.Client, reg *registry.Registry, engine *validation.Engine, sched *rounds.Scheduler, logger *zap.Logger) {
	defer func() {
		client.Conn.Close()
		actions.HandleDisconnect(ctx, client, reg, logger)
		logger.Info("Client removed", zap.String("connID", client.ID))
	}()

	for {
		var msg map[string]interface{}
		if err := client.Conn.ReadJSON(&msg); err != nil {
			logger.Info("Client read loop ended", zap.String("connID", client.ID), zap.Error(err))
			return
		}

		msgType, _ := msg["type"].(string)
		switch msgType {
		case "createRoom":
			actions.HandleCreateRoom(ctx, client, msg, reg, logger)
		case "joinRoom":
			actions.HandleJoinRoom(ctx, client, msg, reg, logger)
		case "joinByInvite":
			actions.HandleJoinByInvite(ctx, client, msg, reg, logger)
		case "startGame":
			actions.HandleStartGame(ctx, client, sched, logger)
		case "updateSettings":
			actions.HandleUpdateSettings(ctx, client, msg, reg, logger)
		case "submitAnswer":
			actions.HandleSubmitAnswer(ctx, client, msg, reg, engine, logger)
		default:
			logger.Warn("Unknown message type", zap.String("type", msgType), zap.String("connID", client.ID))
		}
	}
}
