package validation

import (
	"context"
	"errors"
	"strings"

	"kataserver/models"

	"gorm.io/gorm"
)

// WordSource menjawab apakah sebuah kata (bentuk normal) ada pada sebuah
// tema, beserta panjang dan huruf pertama/terakhirnya.
type WordSource interface {
	Lookup(ctx context.Context, theme, normalized string) (*models.LexiconEntry, error)
}

// LexiconStore adalah WordSource di atas tabel leksikon PostgreSQL.
type LexiconStore struct {
	db *gorm.DB
}

func NewLexiconStore(db *gorm.DB) *LexiconStore {
	return &LexiconStore{db: db}
}

// Lookup mengembalikan (nil, nil) jika kata tidak dikenal pada tema itu.
func (s *LexiconStore) Lookup(ctx context.Context, theme, normalized string) (*models.LexiconEntry, error) {
	var entry models.LexiconEntry
	err := s.db.WithContext(ctx).
		Where("theme = ? AND normalized = ?", theme, normalized).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Normalize menyeragamkan teks jawaban sebelum dicocokkan dengan leksikon.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
