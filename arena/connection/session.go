package connection

import (
	"context"
	"encoding/json"
	"time"

	"kataserver/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionTTL = 24 * time.Hour

// ValidateSessionID memeriksa session ID di Redis dan mengembalikan
// identitas klien jika sesi masih berlaku.
func ValidateSessionID(ctx context.Context, rdb *redis.Client, sessionID string, logger *zap.Logger) *models.Client {
	if sessionID == "" {
		return nil
	}

	sessionInfoJSON, err := rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		logger.Info("Session not found or expired", zap.String("sessionID", sessionID))
		return nil
	}

	var sessionInfo map[string]string
	if err := json.Unmarshal([]byte(sessionInfoJSON), &sessionInfo); err != nil {
		logger.Error("Failed to decode session info", zap.Error(err))
		return nil
	}

	connID, ok := sessionInfo["connId"]
	if !ok || connID == "" {
		logger.Error("Invalid session info: missing connId")
		return nil
	}

	return &models.Client{
		ID:       connID,
		Username: sessionInfo["username"],
	}
}

// DeleteSession menghapus sesi lama setelah dipulihkan.
func DeleteSession(ctx context.Context, rdb *redis.Client, sessionID string) {
	rdb.Del(ctx, "session:"+sessionID)
}

// GenerateAndStoreSessionID menerbitkan session ID baru, menyimpannya di
// Redis, lalu mengirimkannya kembali ke klien.
func GenerateAndStoreSessionID(ctx context.Context, client *models.Client, rdb *redis.Client, logger *zap.Logger) error {
	sessionID := uuid.New().String()

	sessionInfo := map[string]string{
		"connId":   client.ID,
		"username": client.Username,
	}
	sessionInfoJSON, err := json.Marshal(sessionInfo)
	if err != nil {
		logger.Error("Error encoding session info", zap.Error(err))
		return err
	}

	if err := rdb.Set(ctx, "session:"+sessionID, sessionInfoJSON, sessionTTL).Err(); err != nil {
		logger.Error("Error storing session info in Redis", zap.Error(err))
		return err
	}

	response := map[string]interface{}{
		"type":      "session",
		"sessionId": sessionID,
		"connId":    client.ID,
	}
	if err := client.SendJSON(response); err != nil {
		logger.Error("Error sending session ID to client", zap.Error(err))
		return err
	}
	logger.Info("Session ID issued", zap.String("sessionID", sessionID), zap.String("connID", client.ID))
	return nil
}
