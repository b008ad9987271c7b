package actions

import (
	"context"
	"errors"
	"time"

	"kataserver/arena/broadcast"
	"kataserver/arena/registry"
	"kataserver/arena/validation"
	"kataserver/models"

	"go.uber.org/zap"
)

// HandleSubmitAnswer menilai satu jawaban terhadap ronde berjalan.
// Prasyarat diperiksa berurutan dengan alasan penolakan masing-masing;
// submission yang lolos prasyarat selalu dicatat dan disiarkan,
// valid maupun tidak.
func HandleSubmitAnswer(ctx context.Context, client *models.Client, msg map[string]interface{}, reg *registry.Registry, engine *validation.Engine, logger *zap.Logger) {
	raw, _ := msg["answer"].(string)

	err := reg.WithRoom(client.RoomID(), func(live *registry.LiveRoom) error {
		if live.Room.Status != models.StatusPlaying || live.Room.Round == nil {
			return ErrNoActiveRound
		}
		if live.Room.Round.Expired(time.Now()) {
			// Waktu ronde habis tapi timer akhir ronde belum menyala.
			return ErrNoActiveRound
		}
		member := live.Member(client.ID)
		if member == nil {
			return registry.ErrRoomNotFound
		}

		// Penghitung naik pada SETIAP percobaan yang sampai ke pemeriksaan
		// ini, valid maupun tidak, sampai batasnya tercapai.
		if member.Player.AnswerCount >= live.Room.Settings.MaxAnswersPerRound {
			return ErrAnswerLimitReached
		}
		member.Player.AnswerCount++

		round := live.Room.Round
		normalized := validation.Normalize(raw)
		for _, recorded := range round.Answers {
			if recorded.Valid && validation.Normalize(recorded.Text) == normalized {
				return ErrDuplicateAnswer
			}
		}

		verdict, err := engine.Evaluate(ctx, round.Theme, raw, round.Requirements)
		if errors.Is(err, validation.ErrBackendUnavailable) {
			// Backend validasi mati: jawaban diperlakukan tidak valid
			// supaya permainan tetap berjalan.
			logger.Warn("Validation degraded to invalid",
				zap.String("roomID", live.Room.ID),
				zap.Error(err),
			)
			verdict = validation.Verdict{}
		} else if err != nil {
			return err
		}

		now := time.Now()
		answer := models.Answer{
			PlayerID:    member.Player.ID,
			Username:    member.Player.Username,
			Text:        raw,
			Valid:       verdict.Valid,
			Points:      verdict.Points,
			Satisfied:   verdict.Satisfied,
			SubmittedAt: now,
		}
		round.Answers = append(round.Answers, answer)
		if verdict.Valid {
			member.Player.Score += verdict.Points
		}
		member.Player.LastActivity = now
		live.Touch(now)

		// Durable dulu, baru broadcast.
		if err := reg.Save(ctx, live); err != nil {
			return err
		}
		broadcast.NewAnswer(live.Clients(), answer, logger)
		broadcast.PlayersUpdate(live.Clients(), live.Summaries(), logger)
		return nil
	})
	if err != nil {
		broadcast.SendRoomError(client, Reason(err), logger)
	}
}
