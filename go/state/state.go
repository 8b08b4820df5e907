// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state provides the overlay state on which cheatable executions
// operate. Besides the regular world state (declared classes, deployed
// contracts, and contract storage) it tracks the data test code installs
// to alter executions: pranked callers, mocked calls, expected calls, and
// per-contract block information. It also records the events emitted by
// committed executions.
package state

import (
	"sync"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ErrClassAlreadyDeclared    = cheatnet.ConstError("class already declared")
	ErrContractAlreadyDeployed = cheatnet.ConstError("contract already deployed")
	ErrClassNotDeclared        = cheatnet.ConstError("class not declared")
)

// MockKey identifies a mocked entry point of a contract.
type MockKey struct {
	Contract cheatnet.Address
	Selector cheatnet.Selector
}

// OverlayState is the state of a single test case. All methods are safe for
// concurrent use, though executions on one state are expected to be
// sequential. Mutations of executable state should be performed through a
// Transaction so that failed executions leave no trace.
type OverlayState struct {
	mu sync.RWMutex

	classes   map[cheatnet.ClassHash]*cheatnet.ContractClass
	contracts map[cheatnet.Address]cheatnet.ClassHash
	storage   map[cheatnet.Address]map[cheatnet.Key]cheatnet.Felt
	prepared  map[cheatnet.Address]cheatnet.ClassHash

	events []EmittedEvent

	cheats        *cheats
	expectedCalls *ExpectedCalls
	eventNames    *EventNames

	open *Transaction
}

// cheats holds the pranks, mocks, and block information installed by test
// code. They are not part of the executable state: a transaction shares them
// with its parent, so they are neither rolled back nor overwritten.
type cheats struct {
	mu              sync.RWMutex
	pranks          map[cheatnet.Address]cheatnet.Address
	mocks           map[MockKey]cheatnet.Calldata
	blockNumbers    map[cheatnet.Address]uint64
	blockTimestamps map[cheatnet.Address]uint64
}

func newCheats() *cheats {
	return &cheats{
		pranks:          map[cheatnet.Address]cheatnet.Address{},
		mocks:           map[MockKey]cheatnet.Calldata{},
		blockNumbers:    map[cheatnet.Address]uint64{},
		blockTimestamps: map[cheatnet.Address]uint64{},
	}
}

func (c *cheats) clone() *cheats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	mocks := make(map[MockKey]cheatnet.Calldata, len(c.mocks))
	for key, response := range c.mocks {
		mocks[key] = response.Clone()
	}
	return &cheats{
		pranks:          maps.Clone(c.pranks),
		mocks:           mocks,
		blockNumbers:    maps.Clone(c.blockNumbers),
		blockTimestamps: maps.Clone(c.blockTimestamps),
	}
}

// New creates an empty overlay state.
func New() *OverlayState {
	return &OverlayState{
		classes:       map[cheatnet.ClassHash]*cheatnet.ContractClass{},
		contracts:     map[cheatnet.Address]cheatnet.ClassHash{},
		storage:       map[cheatnet.Address]map[cheatnet.Key]cheatnet.Felt{},
		prepared:      map[cheatnet.Address]cheatnet.ClassHash{},
		cheats:        newCheats(),
		expectedCalls: &ExpectedCalls{},
		eventNames:    &EventNames{names: map[cheatnet.Selector]string{}},
	}
}

// copy creates a deep copy of the executable state. The event name map is
// shared by all copies. A transactional copy shares the cheats and tracks
// changes of the expected calls for merging them back; other copies share
// the expected calls and get their own cheats.
func (s *OverlayState) copy(transactional bool) *OverlayState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	storage := make(map[cheatnet.Address]map[cheatnet.Key]cheatnet.Felt, len(s.storage))
	for address, slots := range s.storage {
		storage[address] = maps.Clone(slots)
	}
	cheats := s.cheats
	expectedCalls := s.expectedCalls
	if transactional {
		expectedCalls = s.expectedCalls.clone()
	} else {
		cheats = s.cheats.clone()
	}
	return &OverlayState{
		classes:       maps.Clone(s.classes),
		contracts:     maps.Clone(s.contracts),
		storage:       storage,
		prepared:      maps.Clone(s.prepared),
		events:        slices.Clone(s.events),
		cheats:        cheats,
		expectedCalls: expectedCalls,
		eventNames:    s.eventNames,
	}
}

// Fork creates a throwaway copy of the state. Changes to the fork are never
// merged back, except for the consumption of expected calls, which is shared
// with this state.
func (s *OverlayState) Fork() *OverlayState {
	return s.copy(false)
}

// --- classes and contracts ---

// DeclareClass registers a contract class under the given hash.
func (s *OverlayState) DeclareClass(hash cheatnet.ClassHash, class *cheatnet.ContractClass) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.classes[hash]; found {
		return ErrClassAlreadyDeclared
	}
	s.classes[hash] = class
	return nil
}

func (s *OverlayState) GetContractClass(hash cheatnet.ClassHash) (*cheatnet.ContractClass, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	class, found := s.classes[hash]
	return class, found
}

// DeployContract associates the given address with a declared class.
func (s *OverlayState) DeployContract(address cheatnet.Address, hash cheatnet.ClassHash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.classes[hash]; !found {
		return ErrClassNotDeclared
	}
	if _, found := s.contracts[address]; found {
		return ErrContractAlreadyDeployed
	}
	s.contracts[address] = hash
	return nil
}

// GetClassHashAt returns the class of the contract deployed at the given
// address, or zero if there is none.
func (s *OverlayState) GetClassHashAt(address cheatnet.Address) cheatnet.ClassHash {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contracts[address]
}

func (s *OverlayState) IsDeployed(address cheatnet.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, found := s.contracts[address]
	return found
}

// SetPrepared records the class of a contract whose address has been
// computed but which may not be deployed yet.
func (s *OverlayState) SetPrepared(address cheatnet.Address, hash cheatnet.ClassHash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepared[address] = hash
}

// ClassHashOf resolves the class of the contract at the given address,
// considering deployed as well as prepared contracts.
func (s *OverlayState) ClassHashOf(address cheatnet.Address) (cheatnet.ClassHash, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if hash, found := s.contracts[address]; found {
		return hash, true
	}
	hash, found := s.prepared[address]
	return hash, found
}

// --- storage ---

func (s *OverlayState) GetStorageAt(address cheatnet.Address, key cheatnet.Key) cheatnet.Felt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage[address][key]
}

func (s *OverlayState) SetStorageAt(address cheatnet.Address, key cheatnet.Key, value cheatnet.Felt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots, found := s.storage[address]
	if !found {
		slots = map[cheatnet.Key]cheatnet.Felt{}
		s.storage[address] = slots
	}
	if value.IsZero() {
		delete(slots, key)
		return
	}
	slots[key] = value
}

// --- pranks and mocks ---

// Prank makes the given target observe caller as its caller address.
func (s *OverlayState) Prank(target, caller cheatnet.Address) {
	c := s.cheats
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pranks[target] = caller
}

func (s *OverlayState) CancelPrank(target cheatnet.Address) {
	c := s.cheats
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pranks, target)
}

// PrankedCaller returns the caller installed for the given target, if any.
func (s *OverlayState) PrankedCaller(target cheatnet.Address) (cheatnet.Address, bool) {
	c := s.cheats
	c.mu.RLock()
	defer c.mu.RUnlock()
	caller, found := c.pranks[target]
	return caller, found
}

func (s *OverlayState) MockCall(target cheatnet.Address, selector cheatnet.Selector, response cheatnet.Calldata) {
	c := s.cheats
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mocks[MockKey{target, selector}] = response.Clone()
}

func (s *OverlayState) ClearMockCall(target cheatnet.Address, selector cheatnet.Selector) bool {
	c := s.cheats
	c.mu.Lock()
	defer c.mu.Unlock()
	key := MockKey{target, selector}
	_, found := c.mocks[key]
	delete(c.mocks, key)
	return found
}

// MockedResponse returns the response mocked for the given entry point.
func (s *OverlayState) MockedResponse(target cheatnet.Address, selector cheatnet.Selector) (cheatnet.Calldata, bool) {
	c := s.cheats
	c.mu.RLock()
	defer c.mu.RUnlock()
	response, found := c.mocks[MockKey{target, selector}]
	return response.Clone(), found
}

// --- block information ---

// Roll overrides the block number observed by the given contract.
func (s *OverlayState) Roll(target cheatnet.Address, number uint64) {
	c := s.cheats
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockNumbers[target] = number
}

// Warp overrides the block timestamp observed by the given contract.
func (s *OverlayState) Warp(target cheatnet.Address, timestamp uint64) {
	c := s.cheats
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockTimestamps[target] = timestamp
}

func (s *OverlayState) BlockNumber(target cheatnet.Address) (uint64, bool) {
	c := s.cheats
	c.mu.RLock()
	defer c.mu.RUnlock()
	number, found := c.blockNumbers[target]
	return number, found
}

func (s *OverlayState) BlockTimestamp(target cheatnet.Address) (uint64, bool) {
	c := s.cheats
	c.mu.RLock()
	defer c.mu.RUnlock()
	timestamp, found := c.blockTimestamps[target]
	return timestamp, found
}

// --- shared overlays ---

func (s *OverlayState) ExpectedCalls() *ExpectedCalls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expectedCalls
}

func (s *OverlayState) EventNames() *EventNames {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eventNames
}
