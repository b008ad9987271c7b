package registry

import "errors"

// Kesalahan keanggotaan yang dilaporkan kembali hanya ke koneksi peminta.
var (
	ErrRoomNotFound      = errors.New("room tidak ditemukan")
	ErrRoomFull          = errors.New("room sudah penuh")
	ErrInvalidInviteCode = errors.New("kode undangan tidak berlaku")
)
