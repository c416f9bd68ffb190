// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"time"

	"github.com/google/uuid"
)

// Event kind constants.
const (
	EventConnected    = "client.connected"
	EventDisconnected = "client.disconnected"
	EventSubscribed   = "client.subscribed"
	EventUnsubscribed = "client.unsubscribed"
	EventError        = "client.error"
)

const defaultEventCapacity = 16

// Event is one diagnostic entry in a session's event ring.
type Event struct {
	ID     string
	Kind   string
	Detail string
	At     time.Time
}

// Events is a bounded ring of recent connection events. The router
// appends connect/disconnect/error entries; once the capacity is
// reached the oldest entry is dropped.
type Events struct {
	entries []Event
	cap     int
}

// NewEvents creates an event ring with the given capacity.
func NewEvents(capacity int) *Events {
	if capacity <= 0 {
		capacity = defaultEventCapacity
	}
	return &Events{cap: capacity}
}

// Push appends an event, evicting the oldest entry when full.
func (e *Events) Push(kind, detail string) {
	if len(e.entries) == e.cap {
		copy(e.entries, e.entries[1:])
		e.entries = e.entries[:e.cap-1]
	}
	e.entries = append(e.entries, Event{
		ID:     uuid.New().String(),
		Kind:   kind,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

// Recent returns the recorded events, oldest first. The returned slice
// is the ring's backing storage and must not be retained across pushes.
func (e *Events) Recent() []Event {
	return e.entries
}
