package models

// LexiconEntry adalah data referensi kata per tema. Dibuat sekali lewat
// seeding dan setelah itu hanya dibaca saat validasi jawaban.
type LexiconEntry struct {
	ID          uint   `gorm:"primaryKey"`
	Theme       string `gorm:"index:idx_lexicon_lookup;not null"`
	Word        string `gorm:"not null"`
	Normalized  string `gorm:"index:idx_lexicon_lookup;not null"`
	Length      int    `gorm:"not null"`
	FirstLetter string `gorm:"not null"`
	LastLetter  string `gorm:"not null"`
}
