package actions

import (
	"errors"

	"kataserver/arena/registry"
	"kataserver/arena/rounds"
	"kataserver/arena/validation"
)

// Kesalahan submit yang dilaporkan kembali hanya ke koneksi peminta.
var (
	ErrNoActiveRound      = errors.New("tidak ada ronde yang sedang berjalan")
	ErrAnswerLimitReached = errors.New("batas jawaban untuk ronde ini sudah tercapai")
	ErrDuplicateAnswer    = errors.New("kata itu sudah dijawab benar pada ronde ini")
)

// Reason menerjemahkan kesalahan recoverable menjadi pesan roomError
// untuk pemain. Tidak ada kesalahan di sini yang membongkar room atau
// menyentuh anggota lain.
func Reason(err error) string {
	switch {
	case errors.Is(err, registry.ErrRoomNotFound):
		return "Room tidak ditemukan"
	case errors.Is(err, registry.ErrRoomFull):
		return "Room sudah penuh"
	case errors.Is(err, registry.ErrInvalidInviteCode):
		return "Kode undangan tidak berlaku"
	case errors.Is(err, rounds.ErrNotRoomOwner):
		return "Hanya owner room yang boleh melakukan ini"
	case errors.Is(err, rounds.ErrBelowMinimumPlayers):
		return "Jumlah pemain belum mencukupi untuk mulai"
	case errors.Is(err, ErrNoActiveRound):
		return "Tidak ada ronde yang sedang berjalan"
	case errors.Is(err, ErrAnswerLimitReached):
		return "Batas jawaban untuk ronde ini sudah tercapai"
	case errors.Is(err, ErrDuplicateAnswer):
		return "Kata itu sudah dijawab benar pada ronde ini"
	case errors.Is(err, validation.ErrBackendUnavailable):
		return "Validasi sedang terganggu, coba lagi"
	default:
		return "Terjadi kesalahan, coba lagi"
	}
}
