package socket

import (
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shivraj416/egram/pkg/logger"
)

// Event names understood by viewers. Kind values mirror the collection names
// so a client can refresh just the section that changed.
const (
	EventNewData = "new-data"

	KindInfo    = "info"
	KindMembers = "members"
	KindSchemes = "schemes"
	KindGallery = "gallery"
	KindContact = "contact"
	KindAll     = "all" // generic "something changed"
)

// Event is one change notification pushed to every connected viewer.
// Payload carries the created record on creates and is empty on deletes.
type Event struct {
	Event   string      `json:"event"`
	Kind    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewData builds the standard change event for a collection.
func NewData(kind string, payload interface{}) Event {
	return Event{Event: EventNewData, Kind: kind, Payload: payload}
}

var (
	eventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egram_events_broadcast_total",
			Help: "Change events broadcast to viewers, by kind",
		},
		[]string{"kind"},
	)

	viewersConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "egram_viewers_connected",
			Help: "Currently connected WebSocket viewers",
		},
	)
)

// Hub fans change events out to every connected viewer. Delivery is
// best-effort: no acknowledgment, no retry, and nothing is replayed for
// viewers that connect later. Events reach each viewer in broadcast order
// through the client's buffered send channel.
type Hub struct {
	clients map[*Client]bool

	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			viewersConnected.Set(float64(len(h.clients)))
			logger.Sugar.Infof("Viewer connected: %s", client.RemoteAddr)

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				viewersConnected.Set(float64(len(h.clients)))
				logger.Sugar.Infof("Viewer disconnected: %s", client.RemoteAddr)
			}

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}
			eventsBroadcast.WithLabelValues(event.Kind).Inc()

			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// Send buffer full means the client stopped draining.
					// Drop it rather than block every other viewer.
					logger.Sugar.Warnf("Viewer %s is lagging, dropping connection", client.RemoteAddr)
					delete(h.clients, client)
					close(client.Send)
					client.Conn.Close()
				}
			}
			viewersConnected.Set(float64(len(h.clients)))
		}
	}
}

// Publish queues an event for delivery without blocking the caller. A full
// broadcast queue only costs viewers a notification; the mutation that
// triggered it has already committed.
func (h *Hub) Publish(event Event) {
	select {
	case h.Broadcast <- event:
	default:
		logger.Sugar.Warnf("Broadcast queue full, dropping %s event", event.Kind)
	}
}
