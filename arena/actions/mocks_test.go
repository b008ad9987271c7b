package actions

import (
	"context"
	"sync"

	"kataserver/arena/validation"
	"kataserver/models"
)

// fakeStore adalah registry.Store in-memory untuk pengujian handler.
type fakeStore struct {
	mu      sync.Mutex
	rooms   map[string]models.RoomRecord
	players map[string]models.PlayerRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:   map[string]models.RoomRecord{},
		players: map[string]models.PlayerRecord{},
	}
}

func (s *fakeStore) SaveRoom(ctx context.Context, room *models.RoomRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = *room
	return nil
}

func (s *fakeStore) SaveRoomAndPlayers(ctx context.Context, room *models.RoomRecord, players []*models.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = *room
	for _, player := range players {
		s.players[player.ID] = *player
	}
	return nil
}

func (s *fakeStore) SaveRoomAndRemovePlayer(ctx context.Context, room *models.RoomRecord, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = *room
	delete(s.players, playerID)
	return nil
}

func (s *fakeStore) RemoveRoom(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
	for id, player := range s.players {
		if player.RoomID == roomID {
			delete(s.players, id)
		}
	}
	return nil
}

func (s *fakeStore) room(roomID string) (models.RoomRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	return room, ok
}

// fakeSource adalah validation.WordSource berisi daftar kata tetap.
type fakeSource struct {
	words map[string]map[string]*models.LexiconEntry
	fail  error
}

func newFakeSource(theme string, words ...string) *fakeSource {
	source := &fakeSource{words: map[string]map[string]*models.LexiconEntry{theme: {}}}
	for _, word := range words {
		normalized := validation.Normalize(word)
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
	if s.fail != nil {
		return nil, s.fail
	}
	return s.words[theme][normalized], nil
}

// nopCache adalah validation.TierCache yang selalu miss, supaya setiap
// evaluasi di pengujian benar-benar menyentuh source.
type nopCache struct{}

func (nopCache) GetWord(ctx context.Context, theme, normalized string) (*models.LexiconEntry, bool, bool) {
	return nil, false, false
}
func (nopCache) SetWord(ctx context.Context, theme, normalized string, entry *models.LexiconEntry) {}
func (nopCache) GetVerdict(ctx context.Context, theme, normalized, canon string) (*validation.Verdict, bool) {
	return nil, false
}
func (nopCache) SetVerdict(ctx context.Context, theme, normalized, canon string, v *validation.Verdict) {
}
