package rounds

import (
	"math/rand"
	"sort"
	"strconv"
	"time"

	"kataserver/models"

	"github.com/google/uuid"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// Batas panjang kata target pada requirement length.
const (
	minTargetLength = 3
	maxTargetLength = 10
)

// SplitPoints membagi 100 poin menjadi tiga bagian positif. Dua titik
// potong ditarik sehingga tiap bagian minimal 10; sisanya jatuh ke
// bagian ketiga sehingga totalnya pasti tepat 100.
func SplitPoints(randGen *rand.Rand) [3]int {
	first := 10 + randGen.Intn(71)        // [10, 80]
	second := 10 + randGen.Intn(81-first) // [10, 90-first]
	third := 100 - first - second         // minimal 10
	return [3]int{first, second, third}
}

// GenerateRequirements membangkitkan tepat tiga requirement (prefix,
// suffix, length) dengan pembagian poin acak. Hasilnya diurutkan
// menurun berdasarkan poin; urutan itu hanya untuk prioritas tampilan,
// bukan prioritas penilaian.
func GenerateRequirements(randGen *rand.Rand) []models.Requirement {
	points := SplitPoints(randGen)
	targetLength := minTargetLength + randGen.Intn(maxTargetLength-minTargetLength+1)

	reqs := []models.Requirement{
		{Type: models.ReqPrefix, Value: string(letters[randGen.Intn(len(letters))]), Points: points[0]},
		{Type: models.ReqSuffix, Value: string(letters[randGen.Intn(len(letters))]), Points: points[1]},
		{Type: models.ReqLength, Value: strconv.Itoa(targetLength), Points: points[2]},
	}
	sort.SliceStable(reqs, func(i, j int) bool { return reqs[i].Points > reqs[j].Points })
	return reqs
}

// NewRound membuat ronde baru: satu tema diambil seragam dari pengaturan
// room, plus tiga requirement segar. Ronde lama tidak dipakai ulang.
func NewRound(settings models.GameSettings, randGen *rand.Rand) *models.Round {
	theme := settings.Themes[randGen.Intn(len(settings.Themes))]
	return &models.Round{
		ID:           uuid.New().String(),
		Theme:        theme,
		Requirements: GenerateRequirements(randGen),
		StartedAt:    time.Now(),
		Duration:     settings.RoundDuration,
		Answers:      []models.Answer{},
	}
}
