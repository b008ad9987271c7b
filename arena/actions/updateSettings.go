package actions

import (
	"context"
	"time"

	"kataserver/arena/broadcast"
	"kataserver/arena/registry"
	"kataserver/arena/rounds"
	"kataserver/models"

	"go.uber.org/zap"
)

// HandleUpdateSettings mengganti pengaturan room. Hanya owner yang
// boleh, dan hanya selama permainan belum dimulai.
func HandleUpdateSettings(ctx context.Context, client *models.Client, msg map[string]interface{}, reg *registry.Registry, logger *zap.Logger) {
	err := reg.WithRoom(client.RoomID(), func(live *registry.LiveRoom) error {
		if live.Room.OwnerID != client.ID {
			return rounds.ErrNotRoomOwner
		}
		if live.Room.Status != models.StatusWaiting {
			logger.Info("Settings update ignored, game already running", zap.String("roomID", live.Room.ID))
			return nil
		}

		settings := live.Room.Settings
		if !decodeField(msg, "settings", &settings) {
			decodeField(msg, "gameSettings", &settings)
		}
		live.Room.Settings = settings.Sanitized()
		live.Touch(time.Now())

		if err := reg.Save(ctx, live); err != nil {
			return err
		}
		broadcast.RoomInfoUpdate(live.Clients(), &live.Room, live.OwnerName(), logger)
		return nil
	})
	if err != nil {
		broadcast.SendRoomError(client, Reason(err), logger)
	}
}
