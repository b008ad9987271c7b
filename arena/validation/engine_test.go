package validation

import (
	"context"
	"errors"
	"testing"

	"kataserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource adalah WordSource in-memory dengan penghitung panggilan,
// untuk membuktikan tier cache memang memotong jalur ke store.
type fakeSource struct {
	words map[string]map[string]*models.LexiconEntry // tema -> kata normal -> entri
	calls int
	fail  error
}

func newFakeSource(theme string, words ...string) *fakeSource {
	source := &fakeSource{words: map[string]map[string]*models.LexiconEntry{theme: {}}}
	for _, word := range words {
		normalized := Normalize(word)
		runes := []rune(normalized)
		source.words[theme][normalized] = &models.LexiconEntry{
			Theme:       theme,
			Word:        word,
			Normalized:  normalized,
			Length:      len(runes),
			FirstLetter: string(runes[0]),
			LastLetter:  string(runes[len(runes)-1]),
		}
	}
	return source
}

func (s *fakeSource) Lookup(ctx context.Context, theme, normalized string) (*models.LexiconEntry, error) {
	s.calls++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.words[theme][normalized], nil
}

// memoryCache adalah TierCache berbasis map, pengganti Redis di pengujian.
type memoryCache struct {
	words    map[string]*models.LexiconEntry
	missing  map[string]bool
	verdicts map[string]*Verdict
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		words:    map[string]*models.LexiconEntry{},
		missing:  map[string]bool{},
		verdicts: map[string]*Verdict{},
	}
}

func (c *memoryCache) GetWord(ctx context.Context, theme, normalized string) (*models.LexiconEntry, bool, bool) {
	key := wordKey(theme, normalized)
	if c.missing[key] {
		return nil, false, true
	}
	if entry, ok := c.words[key]; ok {
		return entry, true, true
	}
	return nil, false, false
}

func (c *memoryCache) SetWord(ctx context.Context, theme, normalized string, entry *models.LexiconEntry) {
	key := wordKey(theme, normalized)
	if entry == nil {
		c.missing[key] = true
		return
	}
	c.words[key] = entry
}

func (c *memoryCache) GetVerdict(ctx context.Context, theme, normalized, canon string) (*Verdict, bool) {
	v, ok := c.verdicts[verdictKey(theme, normalized, canon)]
	return v, ok
}

func (c *memoryCache) SetVerdict(ctx context.Context, theme, normalized, canon string, v *Verdict) {
	c.verdicts[verdictKey(theme, normalized, canon)] = v
}

func sampleRequirements() []models.Requirement {
	return []models.Requirement{
		{Type: models.ReqLength, Value: "5", Points: 50},
		{Type: models.ReqPrefix, Value: "s", Points: 30},
		{Type: models.ReqSuffix, Value: "a", Points: 20},
	}
}

func TestEvaluateSumsAllSatisfiedRequirements(t *testing.T) {
	source := newFakeSource("Hewan", "Singa")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	verdict, err := engine.Evaluate(context.Background(), "Hewan", "Singa", sampleRequirements())
	require.NoError(t, err)

	// "singa": panjang 5, awalan s, akhiran a; ketiganya terpenuhi
	assert.True(t, verdict.Valid)
	assert.Equal(t, 100, verdict.Points)
	assert.ElementsMatch(t, []string{models.ReqLength, models.ReqPrefix, models.ReqSuffix}, verdict.Satisfied)
}

func TestEvaluatePartialMatch(t *testing.T) {
	source := newFakeSource("Hewan", "Serigala")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	verdict, err := engine.Evaluate(context.Background(), "Hewan", "serigala", sampleRequirements())
	require.NoError(t, err)

	// panjang 8: hanya awalan s dan akhiran a yang kena
	assert.True(t, verdict.Valid)
	assert.Equal(t, 50, verdict.Points)
	assert.ElementsMatch(t, []string{models.ReqPrefix, models.ReqSuffix}, verdict.Satisfied)
}

func TestEvaluateUnknownWordIsInvalid(t *testing.T) {
	source := newFakeSource("Hewan", "Singa")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	verdict, err := engine.Evaluate(context.Background(), "Hewan", "meja", sampleRequirements())
	require.NoError(t, err)

	assert.False(t, verdict.Valid)
	assert.Zero(t, verdict.Points)
	assert.Empty(t, verdict.Satisfied)
}

func TestEvaluateKnownWordWithoutMatchIsInvalid(t *testing.T) {
	source := newFakeSource("Hewan", "Kuda")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	reqs := []models.Requirement{
		{Type: models.ReqPrefix, Value: "z", Points: 40},
		{Type: models.ReqSuffix, Value: "x", Points: 30},
		{Type: models.ReqLength, Value: "9", Points: 30},
	}
	verdict, err := engine.Evaluate(context.Background(), "Hewan", "kuda", reqs)
	require.NoError(t, err)

	// ada di leksikon tapi tak memenuhi satu pun requirement
	assert.False(t, verdict.Valid)
	assert.Zero(t, verdict.Points)
}

func TestEvaluateNormalizesBeforeLookup(t *testing.T) {
	source := newFakeSource("Hewan", "Singa")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	verdict, err := engine.Evaluate(context.Background(), "Hewan", "  SINGA  ", sampleRequirements())
	require.NoError(t, err)
	assert.True(t, verdict.Valid)
}

func TestVerdictTierSkipsSourceOnRepeat(t *testing.T) {
	source := newFakeSource("Hewan", "Singa")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())
	reqs := sampleRequirements()

	_, err := engine.Evaluate(context.Background(), "Hewan", "Singa", reqs)
	require.NoError(t, err)
	_, err = engine.Evaluate(context.Background(), "Hewan", "singa", reqs)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls, "evaluasi ulang harus dijawab dari tier verdict")
}

func TestWordTierSharedAcrossRequirementSets(t *testing.T) {
	source := newFakeSource("Hewan", "Singa")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	_, err := engine.Evaluate(context.Background(), "Hewan", "Singa", sampleRequirements())
	require.NoError(t, err)

	otherReqs := []models.Requirement{
		{Type: models.ReqPrefix, Value: "s", Points: 60},
		{Type: models.ReqSuffix, Value: "u", Points: 25},
		{Type: models.ReqLength, Value: "4", Points: 15},
	}
	verdict, err := engine.Evaluate(context.Background(), "Hewan", "Singa", otherReqs)
	require.NoError(t, err)

	// requirement-set berbeda tidak kena tier verdict, tapi keberadaan
	// kata dijawab dari tier kata tanpa menyentuh store lagi
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 60, verdict.Points)
}

func TestNegativeWordLookupIsCached(t *testing.T) {
	source := newFakeSource("Hewan", "Singa")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	_, err := engine.Evaluate(context.Background(), "Hewan", "meja", sampleRequirements())
	require.NoError(t, err)

	otherReqs := []models.Requirement{
		{Type: models.ReqPrefix, Value: "m", Points: 100},
	}
	_, err = engine.Evaluate(context.Background(), "Hewan", "meja", otherReqs)
	require.NoError(t, err)

	assert.Equal(t, 1, source.calls, "ketiadaan kata juga harus di-cache")
}

func TestEvaluateWrapsBackendFailure(t *testing.T) {
	source := newFakeSource("Hewan")
	source.fail = errors.New("connection refused")
	engine := NewEngine(source, newMemoryCache(), zap.NewNop())

	_, err := engine.Evaluate(context.Background(), "Hewan", "singa", sampleRequirements())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestCanonicalKeyOrderIndependent(t *testing.T) {
	a := []models.Requirement{
		{Type: models.ReqSuffix, Value: "a", Points: 20},
		{Type: models.ReqLength, Value: "5", Points: 50},
		{Type: models.ReqPrefix, Value: "s", Points: 30},
	}
	b := []models.Requirement{
		{Type: models.ReqPrefix, Value: "s", Points: 30},
		{Type: models.ReqSuffix, Value: "a", Points: 20},
		{Type: models.ReqLength, Value: "5", Points: 50},
	}
	assert.Equal(t, CanonicalKey(a), CanonicalKey(b))

	c := []models.Requirement{
		{Type: models.ReqPrefix, Value: "s", Points: 35},
		{Type: models.ReqSuffix, Value: "a", Points: 20},
		{Type: models.ReqLength, Value: "5", Points: 45},
	}
	assert.NotEqual(t, CanonicalKey(a), CanonicalKey(c), "bobot berbeda tidak boleh berbagi entri")
}

func TestSatisfiesLengthRejectsMalformedValue(t *testing.T) {
	entry := &models.LexiconEntry{Normalized: "kuda", Length: 4, FirstLetter: "k", LastLetter: "a"}
	assert.False(t, Satisfies(entry, models.Requirement{Type: models.ReqLength, Value: "empat"}))
	assert.True(t, Satisfies(entry, models.Requirement{Type: models.ReqLength, Value: "4"}))
}
