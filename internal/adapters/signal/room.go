package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
)

func (ctl *SignalWSController) handleCreate(s *session, data []byte) {
	type createPayload struct {
		Type string `json:"type"`
		Code string `json:"code"`
		PIN  string `json:"pin"`
	}
	var p createPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad create payload")
		return
	}

	// pin_required or not, the room keeps exactly the PIN the client sent.
	code, err := ctl.Registry.Create(domain.RoomCode(p.Code), p.PIN, s.conn)
	if err != nil {
		// a failed create leaves the current binding untouched
		ctl.sendError(s.conn, err.Error())
		return
	}
	// a session holds at most one room; rebinding leaves the old one now
	// that the new one is secured
	ctl.detach(s)
	s.room = code
	log.Info().Str("module", "signal").Str("sid", string(s.sid)).Str("room", string(code)).Msg("create")

	resp := struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{
		"room_created",
		string(code),
	}
	ctl.sendJSON(s.conn, resp)
}

func (ctl *SignalWSController) handleJoin(s *session, data []byte) {
	type joinPayload struct {
		Type string `json:"type"`
		Code string `json:"code"`
		PIN  string `json:"pin"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		return
	}

	peers, err := ctl.Registry.Join(domain.RoomCode(p.Code), p.PIN, s.conn)
	if err != nil {
		// a failed join leaves the current binding untouched
		ctl.sendError(s.conn, err.Error())
		return
	}
	ctl.detach(s)
	s.room = domain.RoomCode(p.Code)
	log.Info().Str("module", "signal").Str("sid", string(s.sid)).Str("room", p.Code).Msg("join")

	resp := struct {
		Type string `json:"type"`
		Code string `json:"code"`
	}{
		"room_joined",
		p.Code,
	}
	ctl.sendJSON(s.conn, resp)

	for _, peer := range peers {
		ctl.sendJSON(peer, struct {
			Type string `json:"type"`
		}{"peer_joined"})
	}
}

func (ctl *SignalWSController) handleLeave(s *session) {
	log.Info().Str("module", "signal").Str("sid", string(s.sid)).Msg("leave")
	ctl.detach(s)
}

// detach is the single leave path, shared by the leave message, rebinding
// and transport teardown: drop membership, notify the remaining members,
// unbind. Idempotent while unbound.
func (ctl *SignalWSController) detach(s *session) {
	if s.room == "" {
		return
	}
	remaining := ctl.Registry.Leave(s.room, s.conn)
	s.room = ""
	for _, peer := range remaining {
		ctl.sendJSON(peer, struct {
			Type string `json:"type"`
		}{"peer_left"})
	}
}
