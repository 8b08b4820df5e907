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
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

// Transaction is an isolated copy of an OverlayState. Changes made to the
// State of a transaction become visible in the parent state only when the
// transaction is committed, all at once. Pranks, mocks, and block information
// are shared with the parent and take effect immediately.
type Transaction struct {
	parent    *OverlayState
	base      *OverlayState // < the parent as seen by Begin
	state     *OverlayState
	committed bool
	discarded bool
}

// Begin starts a new transaction on this state. At most one transaction may
// be open on a state at any time.
func (s *OverlayState) Begin() *Transaction {
	s.mu.Lock()
	if s.open != nil {
		s.mu.Unlock()
		panic("a transaction is already open on this state")
	}
	tx := &Transaction{parent: s}
	s.open = tx
	s.mu.Unlock()

	tx.base = s.copy(true)
	tx.state = tx.base.copy(true)
	return tx
}

// State returns the isolated state the transaction operates on.
func (t *Transaction) State() *OverlayState {
	return t.state
}

// Commit merges all changes of the transaction into its parent state. Only
// entries the transaction modified are written, so changes made to the parent
// while the transaction was open are retained.
func (t *Transaction) Commit() {
	if t.committed || t.discarded {
		panic(fmt.Sprintf("cannot commit transaction (committed: %t, discarded: %t)", t.committed, t.discarded))
	}
	t.committed = true

	src, base, dst := t.state, t.base, t.parent
	src.mu.RLock()
	defer src.mu.RUnlock()
	dst.mu.Lock()
	defer dst.mu.Unlock()

	mergeChanges(dst.classes, base.classes, src.classes)
	mergeChanges(dst.contracts, base.contracts, src.contracts)
	mergeChanges(dst.prepared, base.prepared, src.prepared)
	for address, slots := range src.storage {
		target, found := dst.storage[address]
		if !found {
			target = map[cheatnet.Key]cheatnet.Felt{}
			dst.storage[address] = target
		}
		mergeChanges(target, base.storage[address], slots)
	}
	for address, slots := range base.storage {
		if _, found := src.storage[address]; !found {
			for key := range slots {
				delete(dst.storage[address], key)
			}
		}
	}
	dst.events = append(dst.events, src.events[len(base.events):]...)
	dst.expectedCalls.merge(src.expectedCalls)
	dst.open = nil
}

// mergeChanges applies the differences between base and changed to dst.
func mergeChanges[K comparable, V comparable](dst, base, changed map[K]V) {
	for key, value := range changed {
		if old, found := base[key]; !found || old != value {
			dst[key] = value
		}
	}
	for key := range base {
		if _, found := changed[key]; !found {
			delete(dst, key)
		}
	}
}

// Discard drops all changes of the transaction. Discarding a transaction
// twice has no effect; discarding a committed transaction is an error.
func (t *Transaction) Discard() {
	if t.committed {
		panic("cannot discard a committed transaction")
	}
	if t.discarded {
		return
	}
	t.discarded = true
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.open = nil
}

// Apply runs the given function in a new transaction. The transaction is
// committed if the function succeeds and discarded if it returns an error or
// panics.
func (s *OverlayState) Apply(run func(*OverlayState) error) error {
	tx := s.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Discard()
			panic(r)
		}
	}()
	if err := run(tx.State()); err != nil {
		tx.Discard()
		return err
	}
	tx.Commit()
	return nil
}
