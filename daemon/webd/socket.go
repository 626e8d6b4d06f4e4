package webd

import (
	"encoding/json"
	"log/slog"

	"github.com/jellydator/ttlcache/v3"
	"github.com/olahol/melody"
	"github.com/wandermap/traveld/events"
	"github.com/wandermap/traveld/types/travel"
)

type websocketAction string

var websocketActionUpdate websocketAction = "update"

type broadcast struct {
	Action websocketAction    `json:"action"`
	Data   *travel.TravelData `json:"data"`
}

const lastComputedKey = "last"

// initMelody sets up the websocket handler.
// New connections get the last computed travel data replayed; every
// provider recompute is broadcast to all connected debug clients.
func (s *WebDaemon) initMelody() {
	s.melodyInstance = melody.New()

	s.melodyInstance.HandleConnect(func(sess *melody.Session) {
		s.logger.Info("[websocket] connected", "remote", sess.Request.RemoteAddr)
		if item := s.lastComputed.Get(lastComputedKey); item != nil {
			b, err := json.Marshal(broadcast{Action: websocketActionUpdate, Data: item.Value()})
			if err == nil {
				_ = sess.Write(b)
			}
		}
	})

	// Incoming client messages are logged and dropped; edits arrive
	// over the HTTP filter routes, not the socket.
	s.melodyInstance.HandleMessage(func(sess *melody.Session, msg []byte) {
		s.logger.Debug("[websocket] message", "msg", string(msg))
	})

	s.melodyInstance.HandleDisconnect(func(sess *melody.Session) {
		s.logger.Info("[websocket] disconnected", "remote", sess.Request.RemoteAddr)
	})

	s.melodyInstance.HandleError(func(sess *melody.Session, e error) {
		s.logger.Warn("[websocket] error", "error", e, "remote", sess.Request.RemoteAddr)
	})

	updates := make(chan *travel.TravelData)
	sub := events.TravelDataUpdated.Subscribe(updates)
	go func() {
		for {
			select {
			case data := <-updates:
				s.lastComputed.Set(lastComputedKey, data, ttlcache.DefaultTTL)
				b, err := json.Marshal(broadcast{Action: websocketActionUpdate, Data: data})
				if err != nil {
					slog.Error("Failed to marshal update event", "error", err)
					continue
				}
				if err := s.melodyInstance.Broadcast(b); err != nil {
					slog.Warn("Failed to broadcast update event", "error", err)
				}
			case err := <-sub.Err():
				slog.Error("Failed to subscribe to TravelDataUpdated", "error", err)
				return
			}
		}
	}()
}
