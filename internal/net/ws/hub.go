// Package ws serves the debug overlay channel: clients toggle per-mob
// overlays and receive their text every broadcast interval.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"catoworld/server/internal/debug"
	"catoworld/server/internal/mob"
	"catoworld/server/internal/sim"
)

const writeWait = 10 * time.Second

// Hub tracks connected debug clients. The simulation stays single-threaded;
// the hub only reads it under the simulation lock.
type Hub struct {
	mu          sync.Mutex
	sim         *sim.Simulation
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub(s *sim.Simulation) *Hub {
	return &Hub{
		sim:         s,
		subscribers: make(map[*subscriber]struct{}),
	}
}

func (s *subscriber) write(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Handler upgrades debug connections and processes toggle requests.
func (h *Hub) Handler() http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(*http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("debug upgrade failed: %v", err)
			return
		}

		sub := &subscriber{conn: conn}
		h.mu.Lock()
		h.subscribers[sub] = struct{}{}
		h.mu.Unlock()

		defer func() {
			h.mu.Lock()
			delete(h.subscribers, sub)
			h.mu.Unlock()
			conn.Close()
		}()

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				log.Printf("discarding malformed debug message: %v", err)
				continue
			}
			switch msg.Type {
			case "toggle_overlay":
				known := h.toggle(msg.MobID, msg.Enabled)
				ack := ackMessage{Type: "toggle_overlay", MobID: msg.MobID, Enabled: msg.Enabled, Known: known}
				if err := sub.write(ack); err != nil {
					return
				}
			default:
				log.Printf("ignoring unknown debug message type %q", msg.Type)
			}
		}
	}
}

func (h *Hub) toggle(mobID string, enabled bool) bool {
	known := false
	h.sim.WithLock(func() {
		a, ok := h.sim.Population().Get(mobID)
		if !ok {
			return
		}
		m, ok := a.(*mob.CatoMob)
		if !ok {
			return
		}
		m.SetDebugOverlay(enabled)
		known = true
	})
	return known
}

// Broadcast pushes the overlay text of every enabled mob to all clients.
// The simulation loop calls it after Step.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	if len(h.subscribers) == 0 {
		h.mu.Unlock()
		return
	}
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	var messages []overlayMessage
	h.sim.WithLock(func() {
		tick := h.sim.World().Tick()
		for _, a := range h.sim.Population().Actors() {
			m, ok := a.(*mob.CatoMob)
			if !ok || !m.DebugOverlay() {
				continue
			}
			messages = append(messages, overlayMessage{
				Type:  "overlay",
				Tick:  tick,
				MobID: m.ID(),
				Text:  debug.Overlay(m),
			})
		}
	})
	if len(messages) == 0 {
		return
	}

	for _, sub := range subs {
		for _, msg := range messages {
			if err := sub.write(msg); err != nil {
				h.mu.Lock()
				delete(h.subscribers, sub)
				h.mu.Unlock()
				break
			}
		}
	}
}
