package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"kataserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TTL kedua tier cache. Entri tidak pernah di-invalidate secara aktif,
// hanya kedaluwarsa; jendela basi beberapa menit diterima demi throughput.
const (
	wordTTL            = 2 * time.Hour
	verdictPositiveTTL = time.Hour
	verdictNegativeTTL = 30 * time.Minute
)

const missingWordMarker = "missing"

// TierCache adalah dua tier cache di depan WordSource: keberadaan kata
// per (tema, kata) dan hasil validasi per (tema, kata, requirement-set).
type TierCache interface {
	GetWord(ctx context.Context, theme, normalized string) (entry *models.LexiconEntry, exists bool, hit bool)
	SetWord(ctx context.Context, theme, normalized string, entry *models.LexiconEntry)
	GetVerdict(ctx context.Context, theme, normalized, canon string) (*Verdict, bool)
	SetVerdict(ctx context.Context, theme, normalized, canon string, v *Verdict)
}

// RedisCache menyimpan kedua tier di Redis dengan nilai JSON.
type RedisCache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisCache(rdb *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{rdb: rdb, logger: logger}
}

func wordKey(theme, normalized string) string {
	return "lexicon:" + theme + ":" + normalized
}

func verdictKey(theme, normalized, canon string) string {
	return "verdict:" + theme + ":" + normalized + ":" + canon
}

func (c *RedisCache) GetWord(ctx context.Context, theme, normalized string) (*models.LexiconEntry, bool, bool) {
	raw, err := c.rdb.Get(ctx, wordKey(theme, normalized)).Result()
	if err == redis.Nil {
		return nil, false, false
	}
	if err != nil {
		// Redis tumbang diperlakukan sebagai cache miss; lookup lanjut ke store.
		c.logger.Warn("Word tier read failed", zap.Error(err))
		return nil, false, false
	}
	if raw == missingWordMarker {
		return nil, false, true
	}
	var entry models.LexiconEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.Warn("Word tier decode failed", zap.Error(err))
		return nil, false, false
	}
	return &entry, true, true
}

func (c *RedisCache) SetWord(ctx context.Context, theme, normalized string, entry *models.LexiconEntry) {
	value := missingWordMarker
	if entry != nil {
		encoded, err := json.Marshal(entry)
		if err != nil {
			c.logger.Warn("Word tier encode failed", zap.Error(err))
			return
		}
		value = string(encoded)
	}
	if err := c.rdb.Set(ctx, wordKey(theme, normalized), value, wordTTL).Err(); err != nil {
		c.logger.Warn("Word tier write failed", zap.Error(err))
	}
}

func (c *RedisCache) GetVerdict(ctx context.Context, theme, normalized, canon string) (*Verdict, bool) {
	raw, err := c.rdb.Get(ctx, verdictKey(theme, normalized, canon)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Verdict tier read failed", zap.Error(err))
		return nil, false
	}
	var v Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		c.logger.Warn("Verdict tier decode failed", zap.Error(err))
		return nil, false
	}
	return &v, true
}

func (c *RedisCache) SetVerdict(ctx context.Context, theme, normalized, canon string, v *Verdict) {
	encoded, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Verdict tier encode failed", zap.Error(err))
		return
	}
	ttl := verdictNegativeTTL
	if v.Valid {
		ttl = verdictPositiveTTL
	}
	if err := c.rdb.Set(ctx, verdictKey(theme, normalized, canon), encoded, ttl).Err(); err != nil {
		c.logger.Warn("Verdict tier write failed", zap.Error(err))
	}
}

// CanonicalKey menyusun kunci requirement-set yang tidak tergantung
// urutan pembangkitan: requirement diurutkan berdasarkan jenisnya dulu,
// sehingga set yang setara berbagi satu entri cache.
func CanonicalKey(reqs []models.Requirement) string {
	sorted := make([]models.Requirement, len(reqs))
	copy(sorted, reqs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Type < sorted[j].Type })

	parts := make([]string, 0, len(sorted))
	for _, req := range sorted {
		parts = append(parts, fmt.Sprintf("%s=%s:%d", req.Type, req.Value, req.Points))
	}
	return strings.Join(parts, "|")
}
