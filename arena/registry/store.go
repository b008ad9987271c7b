package registry

import (
	"context"

	"kataserver/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store adalah sisi durable dari registry. Setiap perubahan keanggotaan
// ditulis ke sini sebelum broadcast apa pun dikirim ke anggota.
type Store interface {
	SaveRoom(ctx context.Context, room *models.RoomRecord) error
	// SaveRoomAndPlayers menulis record room beserta seluruh pemainnya
	// dalam satu transaksi.
	SaveRoomAndPlayers(ctx context.Context, room *models.RoomRecord, players []*models.PlayerRecord) error
	// SaveRoomAndRemovePlayer menulis record room dan menghapus satu
	// pemain secara atomik; dipakai saat owner pergi supaya tidak ada
	// jendela di mana owner menunjuk anggota yang sudah tidak ada.
	SaveRoomAndRemovePlayer(ctx context.Context, room *models.RoomRecord, playerID string) error
	// RemoveRoom menghapus record room beserta seluruh pemainnya.
	RemoveRoom(ctx context.Context, roomID string) error
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore membungkus koneksi gorm sebagai Store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SaveRoom(ctx context.Context, room *models.RoomRecord) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(room).Error
}

func (s *gormStore) SaveRoomAndPlayers(ctx context.Context, room *models.RoomRecord, players []*models.PlayerRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(room).Error; err != nil {
			return err
		}
		for _, player := range players {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(player).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *gormStore) SaveRoomAndRemovePlayer(ctx context.Context, room *models.RoomRecord, playerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(room).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", playerID).Delete(&models.PlayerRecord{}).Error
	})
}

func (s *gormStore) RemoveRoom(ctx context.Context, roomID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&models.PlayerRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", roomID).Delete(&models.RoomRecord{}).Error
	})
}
