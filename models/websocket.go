package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client mewakili satu koneksi websocket.
type Client struct {
	Conn     *websocket.Conn
	ID       string // identitas koneksi, dipakai juga sebagai PlayerRecord.ID
	Username string

	// roomID ditulis bukan hanya oleh goroutine klien sendiri: sweeper
	// dan timer retensi juga mengosongkannya saat room dibongkar.
	mu     sync.Mutex
	roomID string

	writeMu sync.Mutex // tulisan ke Conn bisa datang dari goroutine timer dan loop klien
}

// RoomID mengembalikan room yang sedang diikuti, kosong jika belum join.
func (c *Client) RoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// SetRoomID mencatat perpindahan keanggotaan room koneksi ini.
func (c *Client) SetRoomID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = id
}

// SendJSON menulis satu pesan JSON ke koneksi klien. Aman dipanggil
// dari goroutine mana pun; no-op jika koneksi tidak ada.
func (c *Client) SendJSON(v interface{}) error {
	if c == nil || c.Conn == nil {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}
