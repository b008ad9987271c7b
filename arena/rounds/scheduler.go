package rounds

import (
	"context"
	"errors"
	"sort"
	"time"

	"kataserver/arena/broadcast"
	"kataserver/arena/registry"
	"kataserver/models"

	"go.uber.org/zap"
)

var (
	ErrNotRoomOwner        = errors.New("hanya owner yang boleh melakukan aksi ini")
	ErrBelowMinimumPlayers = errors.New("jumlah pemain belum mencukupi")
)

// Scheduler menggerakkan state machine per room lewat timer wall-clock:
// waiting -> playing -> (akhir ronde) -> playing ... -> finished.
// Tiap room paling banyak punya satu timer hidup; memasang timer baru
// selalu membatalkan timer lama, dan tiap callback membawa token
// generasi yang dicocokkan saat fire supaya firing basi jadi no-op.
//
// Catatan deployment: scheduler ini mengandaikan satu proses server.
// Beberapa proses yang berbagi satu PostgreSQL tanpa koordinasi (misal
// lease per room) akan menjadwalkan ronde sebuah room dua kali.
type Scheduler struct {
	reg    *registry.Registry
	logger *zap.Logger

	// Grace adalah jeda antara akhir ronde dan ronde berikutnya;
	// Retention berapa lama room finished ditahan untuk broadcast susulan.
	Grace     time.Duration
	Retention time.Duration
}

func NewScheduler(reg *registry.Registry, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		reg:       reg,
		logger:    logger,
		Grace:     5 * time.Second,
		Retention: 30 * time.Second,
	}
}

// StartGame memulai permainan. Hanya owner yang boleh, dan jumlah
// anggota harus mencapai minimum pengaturan room.
func (s *Scheduler) StartGame(ctx context.Context, roomID, requesterID string) error {
	return s.reg.WithRoom(roomID, func(live *registry.LiveRoom) error {
		if live.Room.OwnerID != requesterID {
			return ErrNotRoomOwner
		}
		if len(live.Members) < live.Room.Settings.MinPlayers {
			return ErrBelowMinimumPlayers
		}
		if live.Room.Status != models.StatusWaiting {
			s.logger.Info("Start ignored, game already running", zap.String("roomID", roomID))
			return nil
		}

		live.Room.Status = models.StatusPlaying
		live.Room.CurrentRound = 1
		return s.startRoundLocked(ctx, live)
	})
}

// startRoundLocked membangkitkan ronde baru untuk nomor ronde saat ini,
// menuliskannya, lalu memasang timer akhir ronde. Lock room harus
// sedang dipegang pemanggil.
func (s *Scheduler) startRoundLocked(ctx context.Context, live *registry.LiveRoom) error {
	round := NewRound(live.Room.Settings, NewRandGenerator())
	live.Room.Round = round
	for _, player := range live.Players() {
		player.AnswerCount = 0
	}
	live.Touch(time.Now())

	if err := s.reg.Save(ctx, live); err != nil {
		return err
	}
	broadcast.RoundStart(live.Clients(), round, live.Room.CurrentRound, live.Room.Settings.TotalRounds, s.logger)

	roomID := live.Room.ID
	live.ArmTimer(time.Duration(round.Duration)*time.Second, func(gen uint64) {
		s.onRoundEnd(roomID, gen)
	})
	s.logger.Info("Round started",
		zap.String("roomID", roomID),
		zap.Int("round", live.Room.CurrentRound),
		zap.String("theme", round.Theme),
	)
	return nil
}

// onRoundEnd dipanggil saat waktu ronde habis: jawaban dan skor ronde
// disiarkan, lalu timer grace dipasang sebelum transisi berikutnya.
func (s *Scheduler) onRoundEnd(roomID string, gen uint64) {
	err := s.reg.WithRoom(roomID, func(live *registry.LiveRoom) error {
		if live.TimerGen() != gen || live.Room.Status != models.StatusPlaying || live.Room.Round == nil {
			// Timer basi: room sudah maju lewat jalur lain.
			return nil
		}
		broadcast.RoundEnd(live.Clients(), live.Room.Round.Answers, live.Summaries(), s.logger)
		live.ArmTimer(s.Grace, func(g uint64) {
			s.onGraceOver(roomID, g)
		})
		return nil
	})
	if err != nil && !errors.Is(err, registry.ErrRoomNotFound) {
		s.logger.Error("Round end failed", zap.Error(err), zap.String("roomID", roomID))
	}
}

// onGraceOver memutuskan langkah setelah jeda: berhenti jika room
// kosong, selesai jika ronde terakhir sudah lewat, selain itu ronde
// berikutnya dimulai.
func (s *Scheduler) onGraceOver(roomID string, gen uint64) {
	ctx := context.Background()
	err := s.reg.WithRoom(roomID, func(live *registry.LiveRoom) error {
		if live.TimerGen() != gen || live.Room.Status != models.StatusPlaying {
			return nil
		}

		if len(live.Members) == 0 {
			// Tidak ada lagi yang bermain; penjadwalan berhenti.
			live.CancelTimer()
			live.Room.Status = models.StatusWaiting
			live.Room.Round = nil
			live.Room.CurrentRound = 0
			return s.reg.Save(ctx, live)
		}

		if live.Room.CurrentRound >= live.Room.Settings.TotalRounds {
			return s.finishLocked(ctx, live)
		}

		live.Room.CurrentRound++
		return s.startRoundLocked(ctx, live)
	})
	if err != nil && !errors.Is(err, registry.ErrRoomNotFound) {
		s.logger.Error("Round transition failed", zap.Error(err), zap.String("roomID", roomID))
	}
}

// finishLocked menutup permainan: peringkat akhir dihitung dan ditulis,
// gameEnd disiarkan, lalu room ditahan sebentar sebelum dibongkar.
func (s *Scheduler) finishLocked(ctx context.Context, live *registry.LiveRoom) error {
	live.CancelTimer()
	live.Room.Status = models.StatusFinished
	live.Room.Round = nil
	live.Room.Ranking = Rank(live.Players())
	live.Touch(time.Now())

	if err := s.reg.Save(ctx, live); err != nil {
		return err
	}

	topThree := live.Room.Ranking
	if len(topThree) > 3 {
		topThree = topThree[:3]
	}
	broadcast.GameEnd(live.Clients(), live.Room.Ranking, topThree, live.Room.Settings.TotalRounds, s.logger)
	s.logger.Info("Game finished", zap.String("roomID", live.Room.ID))

	roomID := live.Room.ID
	live.ArmTimer(s.Retention, func(gen uint64) {
		s.onRetentionOver(roomID, gen)
	})
	return nil
}

// onRetentionOver membongkar room finished setelah masa tahan habis.
// Room default hanya dikembalikan ke waiting.
func (s *Scheduler) onRetentionOver(roomID string, gen uint64) {
	ctx := context.Background()
	stale := false
	isDefault := roomID == s.reg.DefaultRoomID()

	err := s.reg.WithRoom(roomID, func(live *registry.LiveRoom) error {
		if live.TimerGen() != gen || live.Room.Status != models.StatusFinished {
			stale = true
			return nil
		}
		if isDefault {
			live.Room.Status = models.StatusWaiting
			live.Room.Round = nil
			live.Room.CurrentRound = 0
			live.Room.Ranking = nil
			for _, player := range live.Players() {
				player.Score = 0
				player.AnswerCount = 0
			}
			return s.reg.Save(ctx, live)
		}
		return nil
	})
	if err != nil || stale || isDefault {
		return
	}
	s.reg.Teardown(ctx, roomID)
}

// Rank mengurutkan skor kumulatif menurun dan memberi peringkat
// berurutan 1-based. Skor seri tetap mendapat peringkat berbeda,
// mengikuti urutan join.
func Rank(players []*models.PlayerRecord) []models.RankEntry {
	sorted := make([]*models.PlayerRecord, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	ranking := make([]models.RankEntry, 0, len(sorted))
	for i, player := range sorted {
		ranking = append(ranking, models.RankEntry{
			PlayerID: player.ID,
			Username: player.Username,
			Score:    player.Score,
			Rank:     i + 1,
		})
	}
	return ranking
}
