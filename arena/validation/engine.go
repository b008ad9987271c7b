package validation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"kataserver/models"

	"go.uber.org/zap"
)

// ErrBackendUnavailable menandakan store leksikon tidak bisa dihubungi.
// Pemanggil menurunkan submission menjadi tidak valid alih-alih gagal,
// supaya permainan jalan terus saat backend sebagian mati.
var ErrBackendUnavailable = errors.New("backend validasi tidak tersedia")

// Verdict adalah hasil penilaian satu kata terhadap requirement ronde.
type Verdict struct {
	Valid     bool     `json:"valid"`
	Points    int      `json:"points"`
	Satisfied []string `json:"satisfied"`
}

// Engine menilai jawaban lewat jalur cache -> store (read-through).
type Engine struct {
	source WordSource
	cache  TierCache
	logger *zap.Logger
}

func NewEngine(source WordSource, cache TierCache, logger *zap.Logger) *Engine {
	return &Engine{source: source, cache: cache, logger: logger}
}

// Evaluate menilai teks (belum dinormalkan) terhadap requirement ronde
// pada tema tertentu. Kata valid jika ada di leksikon tema itu dan
// memenuhi minimal satu requirement; poinnya adalah jumlah poin dari
// SEMUA requirement yang terpenuhi.
func (e *Engine) Evaluate(ctx context.Context, theme, raw string, reqs []models.Requirement) (Verdict, error) {
	normalized := Normalize(raw)
	canon := CanonicalKey(reqs)

	if v, ok := e.cache.GetVerdict(ctx, theme, normalized, canon); ok {
		return *v, nil
	}

	entry, exists, hit := e.cache.GetWord(ctx, theme, normalized)
	if !hit {
		var err error
		entry, err = e.source.Lookup(ctx, theme, normalized)
		if err != nil {
			e.logger.Error("Lexicon lookup failed", zap.Error(err), zap.String("theme", theme))
			return Verdict{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		exists = entry != nil
		e.cache.SetWord(ctx, theme, normalized, entry)
	}

	verdict := score(entry, exists, reqs)
	e.cache.SetVerdict(ctx, theme, normalized, canon, &verdict)
	return verdict, nil
}

func score(entry *models.LexiconEntry, exists bool, reqs []models.Requirement) Verdict {
	if !exists || entry == nil {
		return Verdict{}
	}
	verdict := Verdict{}
	for _, req := range reqs {
		if Satisfies(entry, req) {
			verdict.Satisfied = append(verdict.Satisfied, req.Type)
			verdict.Points += req.Points
		}
	}
	verdict.Valid = len(verdict.Satisfied) > 0
	return verdict
}

// Satisfies memeriksa satu requirement terhadap satu entri leksikon.
func Satisfies(entry *models.LexiconEntry, req models.Requirement) bool {
	switch req.Type {
	case models.ReqPrefix:
		return entry.FirstLetter == Normalize(req.Value)
	case models.ReqSuffix:
		return entry.LastLetter == Normalize(req.Value)
	case models.ReqLength:
		length, err := strconv.Atoi(req.Value)
		return err == nil && entry.Length == length
	default:
		return false
	}
}
