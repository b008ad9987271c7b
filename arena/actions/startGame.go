package actions

import (
	"context"

	"kataserver/arena/broadcast"
	"kataserver/arena/rounds"
	"kataserver/models"

	"go.uber.org/zap"
)

// HandleStartGame memulai permainan pada room milik pengirim.
func HandleStartGame(ctx context.Context, client *models.Client, sched *rounds.Scheduler, logger *zap.Logger) {
	roomID := client.RoomID()
	if err := sched.StartGame(ctx, roomID, client.ID); err != nil {
		logger.Info("Start game rejected",
			zap.String("roomID", roomID),
			zap.String("clientID", client.ID),
			zap.Error(err),
		)
		broadcast.SendRoomError(client, Reason(err), logger)
	}
}
