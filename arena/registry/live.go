package registry

import (
	"sync"
	"time"

	"kataserver/models"
)

// Member menggabungkan koneksi websocket dan record pemain volatile
// milik satu anggota room.
type Member struct {
	Client *models.Client
	Player *models.PlayerRecord
}

// LiveRoom adalah entri indeks aktif untuk satu room: record room,
// daftar anggota terurut sesuai waktu join, dan timer ronde berjalan.
// Seluruh state di dalamnya hanya boleh disentuh selagi Mu dipegang,
// sehingga event masuk dan timer ronde tidak pernah saling menyela.
type LiveRoom struct {
	Mu      sync.Mutex
	Room    models.RoomRecord
	Members []*Member

	closed   bool // sedang dibongkar, join ditolak
	timer    *time.Timer
	timerGen uint64
}

// Member mencari anggota berdasarkan identitas koneksi.
func (l *LiveRoom) Member(id string) *Member {
	for _, m := range l.Members {
		if m.Player.ID == id {
			return m
		}
	}
	return nil
}

// Clients mengembalikan seluruh koneksi anggota untuk broadcast.
func (l *LiveRoom) Clients() []*models.Client {
	clients := make([]*models.Client, 0, len(l.Members))
	for _, m := range l.Members {
		clients = append(clients, m.Client)
	}
	return clients
}

// Players mengembalikan seluruh record pemain volatile.
func (l *LiveRoom) Players() []*models.PlayerRecord {
	players := make([]*models.PlayerRecord, 0, len(l.Members))
	for _, m := range l.Members {
		players = append(players, m.Player)
	}
	return players
}

// Summaries menyusun daftar ringkas pemain untuk event playersUpdate.
func (l *LiveRoom) Summaries() []models.PlayerSummary {
	summaries := make([]models.PlayerSummary, 0, len(l.Members))
	for _, m := range l.Members {
		summaries = append(summaries, m.Player.Summary())
	}
	return summaries
}

// OwnerName mengembalikan nama tampilan owner saat ini.
func (l *LiveRoom) OwnerName() string {
	if owner := l.Member(l.Room.OwnerID); owner != nil {
		return owner.Player.Username
	}
	return ""
}

// ArmTimer membatalkan timer sebelumnya lalu memasang timer baru.
// Nilai kembaliannya adalah token generasi; callback wajib mencocokkan
// token itu dengan TimerGen sebelum bertindak supaya timer basi
// (room sudah maju atau sudah dihapus) menjadi no-op.
func (l *LiveRoom) ArmTimer(d time.Duration, fn func(gen uint64)) uint64 {
	l.stopTimer()
	l.timerGen++
	gen := l.timerGen
	l.timer = time.AfterFunc(d, func() { fn(gen) })
	return gen
}

// CancelTimer mematikan timer berjalan dan membuat token lama basi.
func (l *LiveRoom) CancelTimer() {
	l.stopTimer()
	l.timerGen++
}

// TimerGen mengembalikan token generasi timer saat ini.
func (l *LiveRoom) TimerGen() uint64 {
	return l.timerGen
}

func (l *LiveRoom) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// Touch memperbarui stempel aktivitas room.
func (l *LiveRoom) Touch(now time.Time) {
	l.Room.LastActivity = now
}
