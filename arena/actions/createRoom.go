package actions

import (
	"context"
	"encoding/json"

	"kataserver/arena/broadcast"
	"kataserver/arena/registry"
	"kataserver/models"

	"go.uber.org/zap"
)

// decodeField menuangkan satu field payload (hasil unmarshal generik)
// ke struct bertipe lewat marshal ulang.
func decodeField(msg map[string]interface{}, key string, out interface{}) bool {
	raw, ok := msg[key]
	if !ok {
		return false
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal(encoded, out) == nil
}

// applyPlayerData mengambil nama tampilan dari payload playerData.
func applyPlayerData(client *models.Client, msg map[string]interface{}) {
	data, ok := msg["playerData"].(map[string]interface{})
	if !ok {
		return
	}
	if username, ok := data["username"].(string); ok && username != "" {
		client.Username = username
	}
}

// HandleCreateRoom membuat room baru dengan pengirim sebagai owner.
func HandleCreateRoom(ctx context.Context, client *models.Client, msg map[string]interface{}, reg *registry.Registry, logger *zap.Logger) {
	if client.RoomID() != "" {
		broadcast.SendRoomError(client, "Kamu masih berada di room lain", logger)
		return
	}
	applyPlayerData(client, msg)

	settings := models.DefaultSettings()
	decodeField(msg, "gameSettings", &settings)

	live, err := reg.CreateRoom(ctx, client, settings)
	if err != nil {
		logger.Error("Failed to create room", zap.Error(err), zap.String("clientID", client.ID))
		broadcast.SendRoomError(client, Reason(err), logger)
		return
	}

	// Broadcast di bawah lock room supaya tidak menyela join yang menyusul.
	reg.WithRoom(live.Room.ID, func(live *registry.LiveRoom) error {
		broadcast.RoomCreated(client, &live.Room, logger)
		broadcast.RoomInfoUpdate(live.Clients(), &live.Room, live.OwnerName(), logger)
		broadcast.PlayersUpdate(live.Clients(), live.Summaries(), logger)
		return nil
	})
}
