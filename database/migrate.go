package database

import (
	"encoding/json"
	"os"
	"strings"
	"unicode/utf8"

	"kataserver/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate membuat tabel room, pemain dan leksikon jika belum ada.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&models.RoomRecord{},
		&models.PlayerRecord{},
		&models.LexiconEntry{},
	)
	if err != nil {
		logger.Error("Failed to migrate tables", zap.Error(err))
		return err
	}
	logger.Info("Database migration completed")
	return nil
}

// NewLexiconEntry menurunkan bentuk normal, panjang serta huruf pertama
// dan terakhir dari sebuah kata.
func NewLexiconEntry(theme, word string) models.LexiconEntry {
	normalized := strings.ToLower(strings.TrimSpace(word))
	first, _ := utf8.DecodeRuneInString(normalized)
	last, _ := utf8.DecodeLastRuneInString(normalized)
	return models.LexiconEntry{
		Theme:       theme,
		Word:        word,
		Normalized:  normalized,
		Length:      utf8.RuneCountInString(normalized),
		FirstLetter: string(first),
		LastLetter:  string(last),
	}
}

// SeedLexicon mengisi tabel leksikon dari file JSON berbentuk
// {"Tema": ["kata", ...]}. Seeding dilewati jika tabel sudah terisi.
func SeedLexicon(db *gorm.DB, filename string, logger *zap.Logger) error {
	if filename == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.LexiconEntry{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Lexicon already seeded", zap.Int64("entries", count))
		return nil
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	wordsByTheme := map[string][]string{}
	if err := json.Unmarshal(raw, &wordsByTheme); err != nil {
		return err
	}

	entries := []models.LexiconEntry{}
	for theme, words := range wordsByTheme {
		for _, word := range words {
			entries = append(entries, NewLexiconEntry(theme, word))
		}
	}
	if len(entries) == 0 {
		return nil
	}

	if err := db.CreateInBatches(entries, 500).Error; err != nil {
		logger.Error("Failed to seed lexicon", zap.Error(err))
		return err
	}
	logger.Info("Lexicon seeded", zap.Int("entries", len(entries)))
	return nil
}
