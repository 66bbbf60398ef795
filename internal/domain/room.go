// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"time"

	"github.com/dkeye/Beacon/internal/core"
)

// MaxMembers is the rendezvous capacity: two peers, nothing more.
const MaxMembers = 2

// Error messages double as the wire error codes sent in `error` responses.
var (
	ErrServerFull = errors.New("server_full")
	ErrExists     = errors.New("exists")
	ErrNotFound   = errors.New("not_found")
	ErrBadPIN     = errors.New("bad_pin")
	ErrNoRoom     = errors.New("no_room")
)

type RoomCode string

// Room is one rendezvous slot. Members is ordered by join time and never
// exceeds MaxMembers. All fields are guarded by the registry's lock; the
// registry is the sole owner of a Room's lifetime.
type Room struct {
	Code      RoomCode
	PIN       string
	CreatedAt time.Time
	Members   []core.SignalConnection
	Closed    bool
}

// Expired reports whether the room's age passed ttl. Age is measured from
// creation, not from last activity.
func (r *Room) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(r.CreatedAt) > ttl
}

// RemoveMember drops conn from the member list. No-op if absent.
func (r *Room) RemoveMember(conn core.SignalConnection) bool {
	for i, m := range r.Members {
		if m == conn {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Others returns a fresh slice of every member except conn.
func (r *Room) Others(conn core.SignalConnection) []core.SignalConnection {
	out := make([]core.SignalConnection, 0, len(r.Members))
	for _, m := range r.Members {
		if m != conn {
			out = append(out, m)
		}
	}
	return out
}
