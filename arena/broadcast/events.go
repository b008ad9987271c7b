package broadcast

import (
	"kataserver/models"

	"go.uber.org/zap"
)

// Semua event keluar berbentuk peta JSON dengan field "type", dikirim
// ke tiap koneksi anggota lewat Client.SendJSON.

func send(client *models.Client, payload map[string]interface{}, logger *zap.Logger) {
	if err := client.SendJSON(payload); err != nil {
		logger.Error("Failed to send event",
			zap.String("event", payload["type"].(string)),
			zap.String("clientID", client.ID),
			zap.Error(err),
		)
	}
}

// ToRoom mengirim satu payload ke seluruh anggota room.
func ToRoom(clients []*models.Client, payload map[string]interface{}, logger *zap.Logger) {
	for _, client := range clients {
		send(client, payload, logger)
	}
}

// RoomCreated dikirim hanya ke pembuat room.
func RoomCreated(client *models.Client, room *models.RoomRecord, logger *zap.Logger) {
	send(client, map[string]interface{}{
		"type":         "roomCreated",
		"roomId":       room.ID,
		"inviteCode":   room.InviteCode,
		"isOwner":      true,
		"gameSettings": room.Settings,
	}, logger)
}

// RoomJoined dikirim hanya ke anggota yang baru masuk.
func RoomJoined(client *models.Client, room *models.RoomRecord, logger *zap.Logger) {
	send(client, map[string]interface{}{
		"type":         "roomJoined",
		"roomId":       room.ID,
		"isOwner":      room.OwnerID == client.ID,
		"inviteCode":   room.InviteCode,
		"gameSettings": room.Settings,
	}, logger)
}

func RoomInfoUpdate(clients []*models.Client, room *models.RoomRecord, ownerUsername string, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":          "roomInfoUpdate",
		"ownerId":       room.OwnerID,
		"ownerUsername": ownerUsername,
		"inviteCode":    room.InviteCode,
		"gameSettings":  room.Settings,
	}, logger)
}

func PlayersUpdate(clients []*models.Client, players []models.PlayerSummary, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":    "playersUpdate",
		"players": players,
	}, logger)
}

func RoundStart(clients []*models.Client, round *models.Round, currentRound, totalRounds int, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":         "roundStart",
		"theme":        round.Theme,
		"requirements": round.Requirements,
		"timeLeft":     round.Duration,
		"currentRound": currentRound,
		"totalRounds":  totalRounds,
	}, logger)
}

func NewAnswer(clients []*models.Client, answer models.Answer, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":   "newAnswer",
		"answer": answer,
	}, logger)
}

func RoundEnd(clients []*models.Client, answers []models.Answer, players []models.PlayerSummary, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":    "roundEnd",
		"answers": answers,
		"scores":  players,
	}, logger)
}

func GameEnd(clients []*models.Client, ranking, topThree []models.RankEntry, totalRounds int, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":         "gameEnd",
		"finalRanking": ranking,
		"topThree":     topThree,
		"totalRounds":  totalRounds,
	}, logger)
}

func OwnershipTransferred(clients []*models.Client, newOwnerID, newOwnerUsername string, logger *zap.Logger) {
	ToRoom(clients, map[string]interface{}{
		"type":             "ownershipTransferred",
		"newOwnerId":       newOwnerID,
		"newOwnerUsername": newOwnerUsername,
		"message":          newOwnerUsername + " sekarang menjadi owner room",
	}, logger)
}

// SendRoomError dikirim hanya ke koneksi yang requestnya gagal.
func SendRoomError(client *models.Client, message string, logger *zap.Logger) {
	send(client, map[string]interface{}{
		"type":    "roomError",
		"message": message,
	}, logger)
}
