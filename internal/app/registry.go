package app

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/core"
	"github.com/dkeye/Beacon/internal/domain"
)

// Registry is the sole owner of live rooms. Every mutation of the room set
// or of a room's membership happens under mu; callers fan out to the member
// snapshots it returns only after the lock is released.
type Registry struct {
	mu    sync.Mutex
	rooms map[domain.RoomCode]*domain.Room

	maxRooms int
	ttl      time.Duration
	codeLen  int

	now func() time.Time
}

func NewRegistry(maxRooms int, ttl time.Duration, codeLen int) *Registry {
	return &Registry{
		rooms:    make(map[domain.RoomCode]*domain.Room),
		maxRooms: maxRooms,
		ttl:      ttl,
		codeLen:  codeLen,
		now:      time.Now,
	}
}

// WithClock overrides the registry's time source. Tests only.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Create registers a new room with the creator as its first member. An
// empty code asks the registry to generate one. The capacity check runs
// before any allocation.
func (r *Registry) Create(code domain.RoomCode, pin string, conn core.SignalConnection) (domain.RoomCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.rooms) >= r.maxRooms {
		return "", domain.ErrServerFull
	}
	if code == "" {
		code = r.generateCode()
	} else if _, ok := r.rooms[code]; ok {
		return "", domain.ErrExists
	}

	r.rooms[code] = &domain.Room{
		Code:      code,
		PIN:       pin,
		CreatedAt: r.now(),
		Members:   []core.SignalConnection{conn},
	}
	log.Info().Str("module", "app.registry").Str("room", string(code)).Int("rooms", len(r.rooms)).Msg("room created")
	return code, nil
}

// generateCode draws a fixed-length code from the URL-safe base64 alphabet,
// regenerating on the (unlikely) collision with a live room. Caller holds mu.
func (r *Registry) generateCode() domain.RoomCode {
	for {
		buf := make([]byte, r.codeLen)
		if _, err := rand.Read(buf); err != nil {
			log.Panic().Err(err).Str("module", "app.registry").Msg("crypto/rand failed")
		}
		code := domain.RoomCode(base64.RawURLEncoding.EncodeToString(buf)[:r.codeLen])
		if _, ok := r.rooms[code]; !ok {
			return code
		}
	}
}

// Join appends conn to the room and returns a snapshot of the members that
// were already present, for peer_joined fan-out. A missing, expired or
// closed room is indistinguishable to the caller: all are ErrNotFound.
// The room closes permanently once membership reaches capacity.
func (r *Registry) Join(code domain.RoomCode, pin string, conn core.SignalConnection) ([]core.SignalConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok || room.Expired(r.ttl, r.now()) || room.Closed {
		return nil, domain.ErrNotFound
	}
	if room.PIN != "" && room.PIN != pin {
		return nil, domain.ErrBadPIN
	}

	peers := room.Others(conn)
	room.Members = append(room.Members, conn)
	if len(room.Members) >= domain.MaxMembers {
		room.Closed = true
	}
	log.Info().Str("module", "app.registry").Str("room", string(code)).Int("members", len(room.Members)).Msg("member joined")
	return peers, nil
}

// Leave removes conn from the room's membership and returns a snapshot of
// the remaining members, for peer_left fan-out. Idempotent; an empty room
// is removed on the spot.
func (r *Registry) Leave(code domain.RoomCode, conn core.SignalConnection) []core.SignalConnection {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil
	}
	room.RemoveMember(conn)
	if len(room.Members) == 0 {
		delete(r.rooms, code)
		log.Info().Str("module", "app.registry").Str("room", string(code)).Msg("room emptied, removed")
		return nil
	}
	return room.Others(conn)
}

// Peers returns a snapshot of every member except conn, for relay fan-out.
// The second return is false when no room is registered under code.
func (r *Registry) Peers(code domain.RoomCode, conn core.SignalConnection) ([]core.SignalConnection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, false
	}
	return room.Others(conn), true
}

// Remove drops a room outright. No-op if absent.
func (r *Registry) Remove(code domain.RoomCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
}

// Sweep removes every room past its TTL or with no members left. Invoked
// after each processed inbound message, so reclamation is coupled to
// traffic; it is safe to interleave with any other registry operation.
func (r *Registry) Sweep() (expired, emptied int) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	for code, room := range r.rooms {
		switch {
		case room.Expired(r.ttl, now):
			delete(r.rooms, code)
			expired++
		case len(room.Members) == 0:
			delete(r.rooms, code)
			emptied++
		}
	}
	if expired > 0 || emptied > 0 {
		log.Debug().Str("module", "app.registry").Int("expired", expired).Int("emptied", emptied).Msg("sweep")
	}
	return expired, emptied
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
