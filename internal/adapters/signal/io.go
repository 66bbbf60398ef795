package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Beacon/internal/core"
	"github.com/dkeye/Beacon/internal/metrics"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, s *session, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(s.sid)).Msg("readPump closing")
		ctl.detach(s)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(s.sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("sid", string(s.sid)).Msg("readPump read error")
				return
			}
			ctl.handleMessage(s, data)
		}
	}
}

// handleMessage dispatches one inbound message. The sweep runs after every
// message regardless of type or outcome: cleanup cadence is coupled to
// traffic, there is no background timer.
func (ctl *SignalWSController) handleMessage(s *session, data []byte) {
	defer ctl.sweep()

	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "create_room":
		ctl.handleCreate(s, data)
	case "join_room":
		ctl.handleJoin(s, data)
	case "offer", "answer", "ice":
		ctl.handleRelay(s, env.Type, data)
	case "leave":
		ctl.handleLeave(s)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
		return
	}
	metrics.MessagesTotal.WithLabelValues(env.Type).Inc()
}

func (ctl *SignalWSController) sweep() {
	expired, emptied := ctl.Registry.Sweep()
	if expired > 0 {
		metrics.SweptTotal.WithLabelValues("expired").Add(float64(expired))
	}
	if emptied > 0 {
		metrics.SweptTotal.WithLabelValues("empty").Add(float64(emptied))
	}
	metrics.RoomsActive.Set(float64(ctl.Registry.Len()))
}

// sendJSON is fire-and-forget per recipient: a full buffer or a dead
// connection drops the frame without surfacing anything to the sender.
func (ctl *SignalWSController) sendJSON(c core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := c.TrySend(b); err != nil {
		metrics.DroppedTotal.Inc()
	}
}

func (ctl *SignalWSController) sendError(c core.SignalConnection, code string) {
	ctl.sendJSON(c, map[string]any{
		"type":  "error",
		"error": code,
	})
}
