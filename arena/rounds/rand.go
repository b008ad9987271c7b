package rounds

import (
	"math/rand"
	"time"
)

// Dipakai untuk pemilihan tema, huruf requirement dan pembagian poin.
func NewRandGenerator() *rand.Rand {
	source := rand.NewSource(time.Now().UnixNano())
	return rand.New(source)
}
