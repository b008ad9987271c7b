package actions

import (
	"context"

	"kataserver/arena/broadcast"
	"kataserver/arena/registry"
	"kataserver/models"

	"go.uber.org/zap"
)

// HandleJoinRoom memasukkan pengirim ke room berdasarkan room id.
func HandleJoinRoom(ctx context.Context, client *models.Client, msg map[string]interface{}, reg *registry.Registry, logger *zap.Logger) {
	roomID, _ := msg["roomId"].(string)
	join(ctx, client, msg, reg, logger, func() (*registry.LiveRoom, error) {
		return reg.Join(ctx, client, roomID)
	})
}

// HandleJoinByInvite memasukkan pengirim lewat kode undangan.
func HandleJoinByInvite(ctx context.Context, client *models.Client, msg map[string]interface{}, reg *registry.Registry, logger *zap.Logger) {
	code, _ := msg["inviteCode"].(string)
	join(ctx, client, msg, reg, logger, func() (*registry.LiveRoom, error) {
		return reg.JoinByInvite(ctx, client, code)
	})
}

func join(ctx context.Context, client *models.Client, msg map[string]interface{}, reg *registry.Registry, logger *zap.Logger, joinFn func() (*registry.LiveRoom, error)) {
	if client.RoomID() != "" {
		broadcast.SendRoomError(client, "Kamu masih berada di room lain", logger)
		return
	}
	applyPlayerData(client, msg)

	live, err := joinFn()
	if err != nil {
		broadcast.SendRoomError(client, Reason(err), logger)
		return
	}

	reg.WithRoom(live.Room.ID, func(live *registry.LiveRoom) error {
		broadcast.RoomJoined(client, &live.Room, logger)
		broadcast.RoomInfoUpdate(live.Clients(), &live.Room, live.OwnerName(), logger)
		broadcast.PlayersUpdate(live.Clients(), live.Summaries(), logger)
		return nil
	})
}
