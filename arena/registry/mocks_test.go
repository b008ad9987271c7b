package registry

import (
	"context"
	"sync"

	"kataserver/models"
)

// fakeStore adalah Store in-memory. failSave bisa diisi untuk
// mensimulasikan kegagalan tulis durable.
type fakeStore struct {
	mu       sync.Mutex
	rooms    map[string]models.RoomRecord
	players  map[string]models.PlayerRecord
	failSave error
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
	if s.failSave != nil {
		return s.failSave
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *fakeStore) SaveRoomAndPlayers(ctx context.Context, room *models.RoomRecord, players []*models.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.rooms[room.ID] = *room
	for _, player := range players {
		s.players[player.ID] = *player
	}
	return nil
}

func (s *fakeStore) SaveRoomAndRemovePlayer(ctx context.Context, room *models.RoomRecord, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
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

func (s *fakeStore) player(playerID string) (models.PlayerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerID]
	return player, ok
}
