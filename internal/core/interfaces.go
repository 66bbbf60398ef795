// Package core declares the transport-facing contracts shared by the
// registry and the adapters.
package core

// Frame is a raw JSON payload ready to be written to a connection.
type Frame []byte

type SessionID string

// SignalConnection abstracts a client's messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
