package actions

import (
	"context"

	"kataserver/arena/broadcast"
	"kataserver/arena/registry"
	"kataserver/models"

	"go.uber.org/zap"
)

// HandleDisconnect mengeluarkan klien dari room-nya saat koneksi putus.
// Perpindahan kepemilikan sudah ditulis durable oleh registry sebelum
// broadcast apa pun di sini berjalan.
func HandleDisconnect(ctx context.Context, client *models.Client, reg *registry.Registry, logger *zap.Logger) {
	roomID := client.RoomID()
	result, err := reg.Leave(ctx, client)
	if err != nil {
		logger.Error("Failed to process disconnect", zap.Error(err), zap.String("clientID", client.ID))
		return
	}
	if result.Live == nil || result.Left == nil || result.TornDown {
		return
	}

	reg.WithRoom(roomID, func(live *registry.LiveRoom) error {
		if result.NewOwner != nil {
			broadcast.OwnershipTransferred(live.Clients(), result.NewOwner.Player.ID, result.NewOwner.Player.Username, logger)
			broadcast.RoomInfoUpdate(live.Clients(), &live.Room, live.OwnerName(), logger)
		}
		broadcast.PlayersUpdate(live.Clients(), live.Summaries(), logger)
		return nil
	})
}
