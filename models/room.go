package models

import (
	"time"
)

// Status permainan di dalam sebuah room.
const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// GameSettings adalah pengaturan permainan yang hanya bisa diubah oleh owner
// selama status masih "waiting".
type GameSettings struct {
	RoundDuration      int      `json:"roundDuration"` // durasi ronde dalam detik
	MaxAnswersPerRound int      `json:"maxAnswersPerRound"`
	MinPlayers         int      `json:"minPlayers"`
	MaxPlayers         int      `json:"maxPlayers"`
	TotalRounds        int      `json:"totalRounds"`
	Themes             []string `json:"themes"`
}

// DefaultSettings dipakai untuk room default dan sebagai dasar
// sebelum owner mengubah pengaturan.
func DefaultSettings() GameSettings {
	return GameSettings{
		RoundDuration:      60,
		MaxAnswersPerRound: 3,
		MinPlayers:         2,
		MaxPlayers:         8,
		TotalRounds:        5,
		Themes:             []string{"Hewan"},
	}
}

// Sanitized mengembalikan salinan pengaturan dengan nilai di luar batas
// dikembalikan ke nilai default, supaya pengaturan kiriman klien tidak
// bisa merusak penjadwalan ronde.
func (s GameSettings) Sanitized() GameSettings {
	defaults := DefaultSettings()
	if s.RoundDuration < 5 || s.RoundDuration > 300 {
		s.RoundDuration = defaults.RoundDuration
	}
	if s.MaxAnswersPerRound < 1 || s.MaxAnswersPerRound > 10 {
		s.MaxAnswersPerRound = defaults.MaxAnswersPerRound
	}
	if s.MinPlayers < 1 {
		s.MinPlayers = defaults.MinPlayers
	}
	if s.MaxPlayers < s.MinPlayers || s.MaxPlayers > 16 {
		s.MaxPlayers = defaults.MaxPlayers
	}
	if s.MaxPlayers < s.MinPlayers {
		s.MaxPlayers = s.MinPlayers
	}
	if s.TotalRounds < 1 || s.TotalRounds > 20 {
		s.TotalRounds = defaults.TotalRounds
	}
	if len(s.Themes) == 0 {
		s.Themes = defaults.Themes
	}
	return s
}

// RankEntry adalah satu baris pada peringkat akhir permainan.
type RankEntry struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// RoomRecord adalah record durable sebuah room di PostgreSQL.
// Indeks aktif (in-memory) selalu dimutakhirkan bersama record ini
// sebelum ada broadcast ke anggota.
type RoomRecord struct {
	ID           string       `gorm:"primaryKey"`
	InviteCode   string       `gorm:"index;not null"`
	OwnerID      string       // identitas anggota yang sedang menjadi owner, kosong jika room kosong
	Status       string       `gorm:"not null;default:'waiting'"`
	CurrentRound int          `gorm:"not null;default:0"` // 1-based selama permainan berjalan
	Settings     GameSettings `gorm:"serializer:json"`
	Round        *Round       `gorm:"serializer:json"` // ronde aktif, nil di luar permainan
	Ranking      []RankEntry  `gorm:"serializer:json"` // terisi hanya saat status finished
	LastActivity time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
