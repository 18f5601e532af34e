package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Sink is the delivery end of one connection. *Connection implements it;
// tests substitute channel-backed fakes.
type Sink interface {
	Send(payload []byte) error
}

// Broker is the room-scoped fan-out registry. Rooms are keyed by
// conversation id; members are connection ids. It performs a two-step
// lookup on publish:
//  1. Resolve the room into its member connection ids.
//  2. Resolve those ids into live Sinks via the sinks map.
//
// This keeps each connection managed in a single place even when it is
// subscribed to many rooms. The broker holds no durable state: a process
// restart drops every subscription and loses nothing, since messages
// live in the store.
type Broker struct {
	mu        sync.RWMutex
	log       *slog.Logger
	sinks     map[string]Sink
	rooms     map[uuid.UUID]map[string]struct{}
	connRooms map[string]map[uuid.UUID]struct{}
}

func NewBroker(log *slog.Logger) *Broker {
	return &Broker{
		log:       log,
		sinks:     make(map[string]Sink),
		rooms:     make(map[uuid.UUID]map[string]struct{}),
		connRooms: make(map[string]map[uuid.UUID]struct{}),
	}
}

// Attach registers a connection's sink. A connection starts with an
// empty subscription set and must join rooms explicitly.
func (b *Broker) Attach(connID string, sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks[connID] = sink
}

// Subscribe adds the connection to the room's member set. Idempotent.
// Subscribing an unknown connection is a no-op.
func (b *Broker) Subscribe(connID string, roomID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.sinks[connID]; !ok {
		return
	}

	members, ok := b.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		b.rooms[roomID] = members
	}
	members[connID] = struct{}{}

	memberships, ok := b.connRooms[connID]
	if !ok {
		memberships = make(map[uuid.UUID]struct{})
		b.connRooms[connID] = memberships
	}
	memberships[roomID] = struct{}{}
}

// Unsubscribe removes the connection from one room, dropping empty sets
// so the maps do not leak over time.
func (b *Broker) Unsubscribe(connID string, roomID uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unsubscribeLocked(connID, roomID)
}

// UnsubscribeAll removes the connection from every room it joined.
// Must run on every connection teardown.
func (b *Broker) UnsubscribeAll(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unsubscribeAllLocked(connID)
}

// Detach is UnsubscribeAll plus forgetting the sink.
func (b *Broker) Detach(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unsubscribeAllLocked(connID)
	delete(b.sinks, connID)
}

// Publish fans payload out to every current member of the room,
// best-effort. A failed or mid-disconnect member is skipped without
// error; delivery is never the source of truth. Returns the number of
// sinks that accepted the payload.
func (b *Broker) Publish(roomID uuid.UUID, payload []byte) int {
	b.mu.RLock()
	members := b.rooms[roomID]
	sinks := make([]Sink, 0, len(members))
	for connID := range members {
		if sink, ok := b.sinks[connID]; ok {
			sinks = append(sinks, sink)
		}
	}
	b.mu.RUnlock()

	delivered := 0
	for _, sink := range sinks {
		if err := sink.Send(payload); err != nil {
			b.log.Debug("Dropped realtime delivery", "room_id", roomID, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

func (b *Broker) unsubscribeAllLocked(connID string) {
	for roomID := range b.connRooms[connID] {
		b.unsubscribeLocked(connID, roomID)
	}
}

func (b *Broker) unsubscribeLocked(connID string, roomID uuid.UUID) {
	if members, ok := b.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(b.rooms, roomID)
		}
	}
	if memberships, ok := b.connRooms[connID]; ok {
		delete(memberships, roomID)
		if len(memberships) == 0 {
			delete(b.connRooms, connID)
		}
	}
}
