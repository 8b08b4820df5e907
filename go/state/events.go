// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"sync"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

// EmittedEvent is an event recorded after a successful execution. The event
// is identified by the name associated to its first key.
type EmittedEvent struct {
	From cheatnet.Address
	Name string
	Data cheatnet.Calldata
}

// EventNames associates event selectors with event names. It is filled when
// classes are declared and is shared by all copies of a state.
type EventNames struct {
	mu    sync.RWMutex
	names map[cheatnet.Selector]string
}

// Merge adds the given associations. Existing entries are overwritten.
func (n *EventNames) Merge(names map[cheatnet.Selector]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for selector, name := range names {
		n.names[selector] = name
	}
}

func (n *EventNames) Lookup(selector cheatnet.Selector) (string, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	name, found := n.names[selector]
	return name, found
}

// Resolve names an event by its keys. Events with an unknown selector are
// named by the hex representation of the selector, events without keys
// get an empty name.
func (n *EventNames) Resolve(keys []cheatnet.Felt) string {
	if len(keys) == 0 {
		return ""
	}
	selector := cheatnet.Selector(keys[0])
	if name, found := n.Lookup(selector); found {
		return name
	}
	return selector.String()
}

// RecordEvents appends the given events to the event log, preserving their
// order.
func (s *OverlayState) RecordEvents(events []cheatnet.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range events {
		s.events = append(s.events, EmittedEvent{
			From: event.FromAddress,
			Name: s.eventNames.Resolve(event.Keys),
			Data: event.Data.Clone(),
		})
	}
}

// Events returns a copy of the event log in emission order.
func (s *OverlayState) Events() []EmittedEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]EmittedEvent, len(s.events))
	copy(res, s.events)
	return res
}
