// Package runtime wires connections, tables and sessions together.
// It orchestrates the system without containing game rules; those live
// in the domain package.
package runtime

import (
	"sync"

	"roulette-lab/contract"
)

type Set map[string]struct{}

// Registry tracks which sink belongs to which connection and which
// connections occupy which table. Broadcast resolution is a two-step
// lookup: table -> occupant ids -> sinks, so a connection's sink is
// managed in a single place regardless of table membership.
type Registry struct {
	mu           sync.RWMutex
	sinks        map[string]contract.EventSink // connection id -> sink
	tableMembers map[string]Set                // table id -> connection ids
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:        make(map[string]contract.EventSink),
		tableMembers: make(map[string]Set),
	}
}

// SinksForTable resolves the active sinks for a table, skipping any
// connection ids listed in exclude (the broadcast originator, typically).
// Returns nil for an unknown or empty table.
func (r *Registry) SinksForTable(tableID string, exclude ...string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.tableMembers[tableID]
	if !ok {
		return nil
	}

	excluded := make(Set, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var active []contract.EventSink
	for connID := range members {
		if _, skip := excluded[connID]; skip {
			continue
		}
		if sink, exists := r.sinks[connID]; exists {
			active = append(active, sink)
		}
	}
	return active
}

// Subscribe registers a connection's sink and seats it in a table's
// membership set, initializing the set on first use.
func (r *Registry) Subscribe(connID, tableID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks[connID] = sink

	if _, ok := r.tableMembers[tableID]; !ok {
		r.tableMembers[tableID] = make(Set)
	}
	r.tableMembers[tableID][connID] = struct{}{}
}

// Unsubscribe removes a connection from the registry and its table,
// dropping empty membership sets so the map does not grow unbounded.
func (r *Registry) Unsubscribe(connID, tableID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sinks, connID)

	if members, ok := r.tableMembers[tableID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.tableMembers, tableID)
		}
	}
}
