package registry

import (
	"context"
	"sync"
	"time"

	"kataserver/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry memegang pemetaan room id -> record durable sekaligus indeks
// aktif in-memory untuk fan-out broadcast. Kedua sisi selalu diperbarui
// bersama lewat metode di sini; handler tidak pernah menyentuh salah
// satunya sendiri-sendiri.
type Registry struct {
	store  Store
	logger *zap.Logger

	mu            sync.RWMutex
	rooms         map[string]*LiveRoom
	invites       map[string]string // kode undangan -> room id
	defaultRoomID string
}

// LeaveResult merangkum akibat dari satu disconnect.
type LeaveResult struct {
	Live     *LiveRoom
	Left     *models.PlayerRecord
	NewOwner *Member // terisi jika kepemilikan berpindah
	TornDown bool    // room ikut dibongkar karena kosong
}

func NewRegistry(store Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:   store,
		logger:  logger,
		rooms:   make(map[string]*LiveRoom),
		invites: make(map[string]string),
	}
}

// EnsureDefaultRoom menyiapkan satu room default yang selalu hidup dan
// tidak pernah dibongkar walau kosong.
func (r *Registry) EnsureDefaultRoom(ctx context.Context, id string) error {
	if id == "" {
		id = "lobby"
	}
	now := time.Now()
	live := &LiveRoom{
		Room: models.RoomRecord{
			ID:           id,
			InviteCode:   NewInviteCode(),
			Status:       models.StatusWaiting,
			Settings:     models.DefaultSettings(),
			LastActivity: now,
			CreatedAt:    now,
		},
	}
	if err := r.store.SaveRoom(ctx, &live.Room); err != nil {
		return err
	}

	r.mu.Lock()
	r.defaultRoomID = id
	r.rooms[id] = live
	r.invites[live.Room.InviteCode] = id
	r.mu.Unlock()

	r.logger.Info("Default room ready", zap.String("roomID", id))
	return nil
}

func (r *Registry) DefaultRoomID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultRoomID
}

// Room mengambil entri indeks aktif untuk sebuah room id.
func (r *Registry) Room(id string) (*LiveRoom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	live, ok := r.rooms[id]
	return live, ok
}

// ResolveInvite menerjemahkan kode undangan menjadi room id.
func (r *Registry) ResolveInvite(code string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.invites[code]
	return id, ok
}

// WithRoom menjalankan fn selagi memegang lock room tersebut. Semua
// mutasi state room oleh handler maupun timer lewat jalur ini, sehingga
// "baca -> ubah -> simpan -> broadcast" berlangsung atomik per room.
func (r *Registry) WithRoom(id string, fn func(live *LiveRoom) error) error {
	live, ok := r.Room(id)
	if !ok {
		return ErrRoomNotFound
	}
	live.Mu.Lock()
	defer live.Mu.Unlock()
	if live.closed {
		return ErrRoomNotFound
	}
	return fn(live)
}

// Save menulis record room dan seluruh pemainnya ke store. Dipanggil
// selagi lock room dipegang, sebelum broadcast.
func (r *Registry) Save(ctx context.Context, live *LiveRoom) error {
	return r.store.SaveRoomAndPlayers(ctx, &live.Room, live.Players())
}

// CreateRoom membuat room baru dengan klien sebagai owner sekaligus
// anggota pertamanya.
func (r *Registry) CreateRoom(ctx context.Context, client *models.Client, settings models.GameSettings) (*LiveRoom, error) {
	now := time.Now()
	player := &models.PlayerRecord{
		ID:           client.ID,
		Username:     client.Username,
		JoinedAt:     now,
		LastActivity: now,
	}
	live := &LiveRoom{
		Room: models.RoomRecord{
			ID:           uuid.New().String(),
			InviteCode:   NewInviteCode(),
			OwnerID:      client.ID,
			Status:       models.StatusWaiting,
			Settings:     settings.Sanitized(),
			LastActivity: now,
			CreatedAt:    now,
		},
	}
	player.RoomID = live.Room.ID
	live.Members = append(live.Members, &Member{Client: client, Player: player})

	if err := r.store.SaveRoomAndPlayers(ctx, &live.Room, live.Players()); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.rooms[live.Room.ID] = live
	r.invites[live.Room.InviteCode] = live.Room.ID
	r.mu.Unlock()

	client.SetRoomID(live.Room.ID)
	r.logger.Info("Room created",
		zap.String("roomID", live.Room.ID),
		zap.String("owner", client.ID),
	)
	return live, nil
}

// Join memasukkan klien ke sebuah room. Gagal jika room tidak ada
// atau sudah penuh.
func (r *Registry) Join(ctx context.Context, client *models.Client, roomID string) (*LiveRoom, error) {
	live, ok := r.Room(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}

	live.Mu.Lock()
	defer live.Mu.Unlock()
	if live.closed {
		return nil, ErrRoomNotFound
	}
	if len(live.Members) >= live.Room.Settings.MaxPlayers {
		return nil, ErrRoomFull
	}

	now := time.Now()
	player := &models.PlayerRecord{
		ID:           client.ID,
		RoomID:       live.Room.ID,
		Username:     client.Username,
		JoinedAt:     now,
		LastActivity: now,
	}
	live.Members = append(live.Members, &Member{Client: client, Player: player})
	if live.Room.OwnerID == "" {
		// Room default bisa kosong tanpa owner; anggota pertama mengambil alih.
		live.Room.OwnerID = client.ID
	}
	live.Touch(now)

	if err := r.Save(ctx, live); err != nil {
		live.Members = live.Members[:len(live.Members)-1]
		return nil, err
	}

	client.SetRoomID(live.Room.ID)
	r.logger.Info("Player joined",
		zap.String("roomID", live.Room.ID),
		zap.String("playerID", client.ID),
	)
	return live, nil
}

// JoinByInvite memasukkan klien lewat kode undangan.
func (r *Registry) JoinByInvite(ctx context.Context, client *models.Client, code string) (*LiveRoom, error) {
	roomID, ok := r.ResolveInvite(code)
	if !ok {
		return nil, ErrInvalidInviteCode
	}
	return r.Join(ctx, client, roomID)
}

// Leave mengeluarkan klien dari room-nya. Jika yang keluar adalah owner
// dan masih ada anggota lain, kepemilikan berpindah ke anggota yang
// paling awal join — perpindahan itu ditulis satu transaksi dengan
// penghapusan pemain. Room yang menjadi kosong dibongkar, kecuali
// room default. Kegagalan tulis durable mengembalikan anggota ke posisi
// join semula, sama seperti Join membatalkan penambahannya.
func (r *Registry) Leave(ctx context.Context, client *models.Client) (*LeaveResult, error) {
	roomID := client.RoomID()
	if roomID == "" {
		return &LeaveResult{}, nil
	}
	live, ok := r.Room(roomID)
	if !ok {
		client.SetRoomID("")
		return &LeaveResult{}, nil
	}

	live.Mu.Lock()
	defer live.Mu.Unlock()

	index := -1
	for i, m := range live.Members {
		if m.Player.ID == client.ID {
			index = i
			break
		}
	}
	if index < 0 {
		client.SetRoomID("")
		return &LeaveResult{Live: live}, nil
	}

	removed := live.Members[index]
	prevOwnerID := live.Room.OwnerID
	result := &LeaveResult{Live: live, Left: removed.Player}
	live.Members = append(live.Members[:index], live.Members[index+1:]...)
	live.Touch(time.Now())

	reinsert := func() {
		live.Members = append(live.Members, nil)
		copy(live.Members[index+1:], live.Members[index:])
		live.Members[index] = removed
		live.Room.OwnerID = prevOwnerID
	}

	if len(live.Members) == 0 {
		if live.Room.ID == r.DefaultRoomID() {
			// Room default tidak dibongkar, cukup dikosongkan.
			prevStatus := live.Room.Status
			prevRound := live.Room.Round
			prevCurrentRound := live.Room.CurrentRound
			live.Room.OwnerID = ""
			live.Room.Status = models.StatusWaiting
			live.Room.Round = nil
			live.Room.CurrentRound = 0
			if err := r.store.SaveRoomAndRemovePlayer(ctx, &live.Room, result.Left.ID); err != nil {
				reinsert()
				live.Room.Status = prevStatus
				live.Room.Round = prevRound
				live.Room.CurrentRound = prevCurrentRound
				return nil, err
			}
			live.CancelTimer()
			client.SetRoomID("")
			return result, nil
		}
		r.teardownLocked(ctx, live)
		client.SetRoomID("")
		result.TornDown = true
		return result, nil
	}

	if live.Room.OwnerID == client.ID {
		// Owner pergi: anggota paling awal yang tersisa menjadi owner.
		result.NewOwner = live.Members[0]
		live.Room.OwnerID = result.NewOwner.Player.ID
	}

	if err := r.store.SaveRoomAndRemovePlayer(ctx, &live.Room, result.Left.ID); err != nil {
		reinsert()
		return nil, err
	}

	client.SetRoomID("")
	r.logger.Info("Player left",
		zap.String("roomID", live.Room.ID),
		zap.String("playerID", result.Left.ID),
	)
	return result, nil
}

// Teardown membongkar sebuah room: timer dimatikan, entri indeks aktif
// dan record durable dihapus. Room default tidak pernah dibongkar.
func (r *Registry) Teardown(ctx context.Context, roomID string) {
	if roomID == r.DefaultRoomID() {
		return
	}
	live, ok := r.Room(roomID)
	if !ok {
		return
	}
	live.Mu.Lock()
	defer live.Mu.Unlock()
	r.teardownLocked(ctx, live)
}

func (r *Registry) teardownLocked(ctx context.Context, live *LiveRoom) {
	if live.closed {
		return
	}
	live.closed = true
	live.CancelTimer()

	r.mu.Lock()
	delete(r.rooms, live.Room.ID)
	if current, ok := r.invites[live.Room.InviteCode]; ok && current == live.Room.ID {
		delete(r.invites, live.Room.InviteCode)
	}
	r.mu.Unlock()

	for _, m := range live.Members {
		m.Client.SetRoomID("")
	}
	if err := r.store.RemoveRoom(ctx, live.Room.ID); err != nil {
		r.logger.Error("Failed to remove room record", zap.Error(err), zap.String("roomID", live.Room.ID))
	}
	r.logger.Info("Room torn down", zap.String("roomID", live.Room.ID))
}

// SweepIdle membongkar room yang tidak aktif lebih lama dari window.
// Dipanggil berkala oleh cron, terpisah dari jalur disconnect.
func (r *Registry) SweepIdle(ctx context.Context, window time.Duration) int {
	cutoff := time.Now().Add(-window)

	r.mu.RLock()
	candidates := make([]*LiveRoom, 0)
	for id, live := range r.rooms {
		if id == r.defaultRoomID {
			continue
		}
		candidates = append(candidates, live)
	}
	r.mu.RUnlock()

	swept := 0
	for _, live := range candidates {
		live.Mu.Lock()
		if !live.closed && live.Room.LastActivity.Before(cutoff) {
			r.teardownLocked(ctx, live)
			swept++
		}
		live.Mu.Unlock()
	}
	if swept > 0 {
		r.logger.Info("Idle rooms swept", zap.Int("rooms", swept))
	}
	return swept
}
