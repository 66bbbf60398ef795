package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/domain"
	"github.com/dkeye/Beacon/internal/metrics"
)

// handleRelay forwards an opaque handshake payload (offer, answer, ice) to
// every other room member. The server never inspects data.
func (ctl *SignalWSController) handleRelay(s *session, kind string, data []byte) {
	if s.room == "" {
		ctl.sendError(s.conn, domain.ErrNoRoom.Error())
		return
	}

	type relayPayload struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	var p relayPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad relay payload")
		return
	}

	peers, ok := ctl.Registry.Peers(s.room, s.conn)
	if !ok {
		// The bound room was swept out from under the session.
		s.room = ""
		ctl.sendError(s.conn, domain.ErrNoRoom.Error())
		return
	}

	payload := p.Data
	if payload == nil {
		payload = json.RawMessage("null")
	}
	resp := struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{
		kind,
		payload,
	}
	for _, peer := range peers {
		ctl.sendJSON(peer, resp)
	}
	metrics.RelayedTotal.WithLabelValues(kind).Inc()
}
