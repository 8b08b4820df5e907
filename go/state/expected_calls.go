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
	"golang.org/x/exp/slices"
)

// ExpectedCall is a call that must be performed before the end of a test.
type ExpectedCall struct {
	Contract cheatnet.Address
	Selector cheatnet.Selector
	Calldata cheatnet.Calldata
	Function string // < name of the selected function, for reporting only
}

func (c ExpectedCall) matches(contract cheatnet.Address, selector cheatnet.Selector, calldata cheatnet.Calldata) bool {
	return c.Contract == contract && c.Selector == selector && c.Calldata.Equal(calldata)
}

// ExpectedCalls is the list of pending call expectations. Each expectation is
// fulfilled by exactly one matching call.
type ExpectedCalls struct {
	mu      sync.Mutex
	pending []ExpectedCall

	tracking bool
	changes  []expectedCallChange // < since cloning, only recorded if tracking
}

type expectedCallChange struct {
	call      ExpectedCall
	fulfilled bool // < added otherwise
}

func (c *ExpectedCalls) Add(call ExpectedCall) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(call)
}

func (c *ExpectedCalls) add(call ExpectedCall) {
	call.Calldata = call.Calldata.Clone()
	c.pending = append(c.pending, call)
	if c.tracking {
		c.changes = append(c.changes, expectedCallChange{call: call})
	}
}

// Fulfill removes the oldest pending expectation matching the given call and
// reports whether there was one.
func (c *ExpectedCalls) Fulfill(contract cheatnet.Address, selector cheatnet.Selector, calldata cheatnet.Calldata) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fulfill(contract, selector, calldata)
}

func (c *ExpectedCalls) fulfill(contract cheatnet.Address, selector cheatnet.Selector, calldata cheatnet.Calldata) bool {
	for i, call := range c.pending {
		if call.matches(contract, selector, calldata) {
			c.pending = append(c.pending[:i:i], c.pending[i+1:]...)
			if c.tracking {
				c.changes = append(c.changes, expectedCallChange{call: call, fulfilled: true})
			}
			return true
		}
	}
	return false
}

// Pending returns the expectations not fulfilled so far, oldest first.
func (c *ExpectedCalls) Pending() []ExpectedCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]ExpectedCall, len(c.pending))
	copy(res, c.pending)
	return res
}

func (c *ExpectedCalls) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *ExpectedCalls) clone() *ExpectedCalls {
	return &ExpectedCalls{pending: c.Pending(), tracking: true}
}

// merge replays the additions and fulfillments recorded by the given clone
// on this list, in the order they happened. Fulfillments of expectations no
// longer pending are ignored.
func (c *ExpectedCalls) merge(clone *ExpectedCalls) {
	if c == clone {
		return
	}
	clone.mu.Lock()
	changes := slices.Clone(clone.changes)
	clone.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, change := range changes {
		if change.fulfilled {
			c.fulfill(change.call.Contract, change.call.Selector, change.call.Calldata)
		} else {
			c.add(change.call)
		}
	}
}
