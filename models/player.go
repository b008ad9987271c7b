package models

import (
	"time"
)

// PlayerRecord adalah keanggotaan satu pemain di dalam satu room.
// Dibuat saat join, dihapus saat disconnect atau saat room dibongkar.
type PlayerRecord struct {
	ID           string `gorm:"primaryKey"` // identitas koneksi
	RoomID       string `gorm:"index;not null"`
	Username     string `gorm:"not null"`
	Score        int    `gorm:"not null;default:0"` // skor kumulatif, tidak pernah turun
	AnswerCount  int    `gorm:"not null;default:0"` // jumlah submit pada ronde berjalan
	JoinedAt     time.Time
	LastActivity time.Time
}

// PlayerSummary adalah bentuk ringkas pemain untuk event playersUpdate.
type PlayerSummary struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Score       int    `json:"score"`
	AnswerCount int    `json:"answerCount"`
}

func (p *PlayerRecord) Summary() PlayerSummary {
	return PlayerSummary{
		ID:          p.ID,
		Username:    p.Username,
		Score:       p.Score,
		AnswerCount: p.AnswerCount,
	}
}
