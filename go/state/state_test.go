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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

var (
	addr1 = cheatnet.Address(cheatnet.NewFelt(1))
	addr2 = cheatnet.Address(cheatnet.NewFelt(2))
	class = cheatnet.ClassHash(cheatnet.NewFelt(100))
	sel   = cheatnet.SelectorFromName("get")
	key   = cheatnet.Key(cheatnet.NewFelt(7))
)

func newDeclaredState(t *testing.T) *OverlayState {
	t.Helper()
	s := New()
	if err := s.DeclareClass(class, &cheatnet.ContractClass{}); err != nil {
		t.Fatalf("failed to declare class: %v", err)
	}
	return s
}

func TestOverlayState_DeclareClassRejectsDuplicates(t *testing.T) {
	s := newDeclaredState(t)
	if err := s.DeclareClass(class, &cheatnet.ContractClass{}); !errors.Is(err, ErrClassAlreadyDeclared) {
		t.Errorf("unexpected error: %v", err)
	}
	if _, found := s.GetContractClass(class); !found {
		t.Errorf("declared class not found")
	}
}

func TestOverlayState_DeployContract(t *testing.T) {
	s := newDeclaredState(t)
	if err := s.DeployContract(addr1, cheatnet.ClassHash{}); !errors.Is(err, ErrClassNotDeclared) {
		t.Errorf("deploying an undeclared class should fail, got %v", err)
	}
	if err := s.DeployContract(addr1, class); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeployContract(addr1, class); !errors.Is(err, ErrContractAlreadyDeployed) {
		t.Errorf("deploying twice should fail, got %v", err)
	}
	if got := s.GetClassHashAt(addr1); got != class {
		t.Errorf("unexpected class hash %v", got)
	}
	if !s.IsDeployed(addr1) || s.IsDeployed(addr2) {
		t.Errorf("unexpected deployment status")
	}
}

func TestOverlayState_ClassHashOfConsidersPreparedContracts(t *testing.T) {
	s := newDeclaredState(t)
	if _, found := s.ClassHashOf(addr2); found {
		t.Errorf("unknown contract should not be resolved")
	}
	s.SetPrepared(addr2, class)
	if got, found := s.ClassHashOf(addr2); !found || got != class {
		t.Errorf("prepared contract not resolved, got %v, %t", got, found)
	}
	if s.IsDeployed(addr2) {
		t.Errorf("prepared contract should not count as deployed")
	}
}

func TestOverlayState_StorageDefaultsToZero(t *testing.T) {
	s := New()
	if got := s.GetStorageAt(addr1, key); !got.IsZero() {
		t.Errorf("unexpected value %v", got)
	}
	s.SetStorageAt(addr1, key, cheatnet.NewFelt(5))
	if got := s.GetStorageAt(addr1, key); got != cheatnet.NewFelt(5) {
		t.Errorf("unexpected value %v", got)
	}
	if got := s.GetStorageAt(addr2, key); !got.IsZero() {
		t.Errorf("storage of contracts is not separated")
	}
	s.SetStorageAt(addr1, key, cheatnet.Felt{})
	if got := s.GetStorageAt(addr1, key); !got.IsZero() {
		t.Errorf("unexpected value after reset %v", got)
	}
}

func TestOverlayState_PrankLastWriteWins(t *testing.T) {
	s := New()
	if _, found := s.PrankedCaller(addr1); found {
		t.Errorf("no prank should be installed")
	}
	s.Prank(addr1, addr2)
	s.Prank(addr1, cheatnet.Address(cheatnet.NewFelt(3)))
	if got, _ := s.PrankedCaller(addr1); got != cheatnet.Address(cheatnet.NewFelt(3)) {
		t.Errorf("unexpected pranked caller %v", got)
	}
	s.CancelPrank(addr1)
	if _, found := s.PrankedCaller(addr1); found {
		t.Errorf("prank was not cancelled")
	}
}

func TestOverlayState_MockedResponsesAreCopied(t *testing.T) {
	s := New()
	response := cheatnet.Calldata{cheatnet.NewFelt(1)}
	s.MockCall(addr1, sel, response)
	response[0] = cheatnet.NewFelt(2)

	got, found := s.MockedResponse(addr1, sel)
	if !found || !got.Equal(cheatnet.Calldata{cheatnet.NewFelt(1)}) {
		t.Errorf("unexpected mocked response %v", got)
	}
	if _, found := s.MockedResponse(addr2, sel); found {
		t.Errorf("mock should be bound to its contract")
	}
	if !s.ClearMockCall(addr1, sel) || s.ClearMockCall(addr1, sel) {
		t.Errorf("unexpected result of clearing mocks")
	}
	if _, found := s.MockedResponse(addr1, sel); found {
		t.Errorf("mock was not cleared")
	}
}

func TestOverlayState_BlockInformationIsPerContract(t *testing.T) {
	s := New()
	s.Roll(addr1, 12)
	s.Warp(addr2, 34)
	if got, found := s.BlockNumber(addr1); !found || got != 12 {
		t.Errorf("unexpected block number %d", got)
	}
	if _, found := s.BlockNumber(addr2); found {
		t.Errorf("block number should only be set for rolled contract")
	}
	if got, found := s.BlockTimestamp(addr2); !found || got != 34 {
		t.Errorf("unexpected timestamp %d", got)
	}
}

func TestOverlayState_ForkSharesOnlyExpectedCallsAndEventNames(t *testing.T) {
	s := newDeclaredState(t)
	s.ExpectedCalls().Add(ExpectedCall{Contract: addr1, Selector: sel})

	fork := s.Fork()
	fork.SetStorageAt(addr1, key, cheatnet.NewFelt(1))
	fork.Prank(addr1, addr2)
	if err := fork.DeployContract(addr1, class); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fork.EventNames().Merge(map[cheatnet.Selector]string{sel: "Get"})
	if !fork.ExpectedCalls().Fulfill(addr1, sel, nil) {
		t.Fatalf("expected call not found in fork")
	}

	if !s.GetStorageAt(addr1, key).IsZero() || s.IsDeployed(addr1) {
		t.Errorf("fork modified the original state")
	}
	if _, found := s.PrankedCaller(addr1); found {
		t.Errorf("fork modified the pranks of the original state")
	}
	if s.ExpectedCalls().Len() != 0 {
		t.Errorf("consumption of expected calls is not shared")
	}
	if name, _ := s.EventNames().Lookup(sel); name != "Get" {
		t.Errorf("event names are not shared")
	}
}

func TestExpectedCalls_FulfillmentIsOneShot(t *testing.T) {
	calls := &ExpectedCalls{}
	data := cheatnet.Calldata{cheatnet.NewFelt(1)}
	calls.Add(ExpectedCall{Contract: addr1, Selector: sel, Calldata: data})

	if calls.Fulfill(addr1, sel, cheatnet.Calldata{cheatnet.NewFelt(2)}) {
		t.Errorf("calldata mismatch should not fulfill expectation")
	}
	if calls.Fulfill(addr2, sel, data) {
		t.Errorf("address mismatch should not fulfill expectation")
	}
	if !calls.Fulfill(addr1, sel, data.Clone()) {
		t.Errorf("matching call did not fulfill expectation")
	}
	if calls.Fulfill(addr1, sel, data) {
		t.Errorf("expectation was fulfilled twice")
	}
	if calls.Len() != 0 {
		t.Errorf("unexpected pending expectations: %v", calls.Pending())
	}
}

func TestExpectedCalls_IdenticalExpectationsNeedMultipleCalls(t *testing.T) {
	calls := &ExpectedCalls{}
	calls.Add(ExpectedCall{Contract: addr1, Selector: sel})
	calls.Add(ExpectedCall{Contract: addr2, Selector: sel})
	calls.Add(ExpectedCall{Contract: addr1, Selector: sel})

	calls.Fulfill(addr1, sel, nil)
	pending := calls.Pending()
	if len(pending) != 2 || pending[0].Contract != addr2 || pending[1].Contract != addr1 {
		t.Errorf("unexpected pending expectations: %v", pending)
	}
	calls.Fulfill(addr1, sel, cheatnet.Calldata{})
	if calls.Len() != 1 {
		t.Errorf("unexpected pending expectations: %v", calls.Pending())
	}
}

func TestEventNames_ResolveFallsBackToSelector(t *testing.T) {
	names := New().EventNames()
	names.Merge(map[cheatnet.Selector]string{sel: "Get"})

	tests := map[string]struct {
		keys []cheatnet.Felt
		want string
	}{
		"known":   {[]cheatnet.Felt{cheatnet.Felt(sel)}, "Get"},
		"unknown": {[]cheatnet.Felt{cheatnet.NewFelt(255)}, "0xff"},
		"no keys": {nil, ""},
		"first key decides": {
			[]cheatnet.Felt{cheatnet.NewFelt(1), cheatnet.Felt(sel)}, "0x1",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := names.Resolve(test.keys); got != test.want {
				t.Errorf("unexpected name, wanted %q, got %q", test.want, got)
			}
		})
	}
}

func TestOverlayState_RecordEventsKeepsEmissionOrder(t *testing.T) {
	s := New()
	s.EventNames().Merge(map[cheatnet.Selector]string{cheatnet.SelectorFromName("A"): "A"})
	a := cheatnet.Felt(cheatnet.SelectorFromName("A"))
	s.RecordEvents([]cheatnet.Event{
		{FromAddress: addr1, Keys: []cheatnet.Felt{a}, Data: cheatnet.Calldata{cheatnet.NewFelt(1)}},
		{FromAddress: addr2, Keys: []cheatnet.Felt{a}},
	})
	s.RecordEvents([]cheatnet.Event{{FromAddress: addr1, Keys: []cheatnet.Felt{a}}})

	events := s.Events()
	if len(events) != 3 {
		t.Fatalf("unexpected number of events: %d", len(events))
	}
	if events[0].From != addr1 || events[1].From != addr2 || events[2].From != addr1 {
		t.Errorf("events are not in emission order: %v", events)
	}
	if events[0].Name != "A" || !events[0].Data.Equal(cheatnet.Calldata{cheatnet.NewFelt(1)}) {
		t.Errorf("unexpected first event: %v", events[0])
	}
}
