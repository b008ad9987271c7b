package models

import (
	"time"
)

// Jenis requirement pada sebuah ronde.
const (
	ReqPrefix = "prefix"
	ReqSuffix = "suffix"
	ReqLength = "length"
)

// Requirement adalah satu syarat leksikal dengan nilai poinnya.
// Value berisi satu huruf untuk prefix/suffix atau angka untuk length.
type Requirement struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Points int    `json:"points"`
}

// Answer adalah satu jawaban yang tercatat pada sebuah ronde.
// Setelah ditulis tidak pernah diubah lagi.
type Answer struct {
	PlayerID    string    `json:"playerId"`
	Username    string    `json:"username"`
	Text        string    `json:"text"`
	Valid       bool      `json:"valid"`
	Points      int       `json:"points"`
	Satisfied   []string  `json:"satisfied"` // jenis requirement yang terpenuhi
	SubmittedAt time.Time `json:"submittedAt"`
}

// Round adalah satu ronde berjalan. Setiap transisi ronde membuat
// instance baru, bukan memodifikasi yang lama.
type Round struct {
	ID           string        `json:"id"`
	Theme        string        `json:"theme"`
	Requirements []Requirement `json:"requirements"`
	StartedAt    time.Time     `json:"startedAt"`
	Duration     int           `json:"duration"` // detik
	Answers      []Answer      `json:"answers"`
}

// Expired melaporkan apakah waktu ronde sudah habis pada saat now.
func (r *Round) Expired(now time.Time) bool {
	return now.After(r.StartedAt.Add(time.Duration(r.Duration) * time.Second))
}
