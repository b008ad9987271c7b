package registry

import (
	"math/rand"
)

const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const inviteLength = 6

// NewInviteCode membuat kode undangan 6 karakter dari sumber acak
// bersama paket math/rand, sehingga pemanggilan beruntun pada instan
// yang sama tetap menghasilkan kode berbeda. Keunikan terhadap kode
// yang sudah ada tidak diperiksa; tabrakan kode membuat join-by-invite
// bisa masuk ke room lain.
func NewInviteCode() string {
	code := make([]byte, inviteLength)
	for i := range code {
		code[i] = inviteAlphabet[rand.Intn(len(inviteAlphabet))]
	}
	return string(code)
}
