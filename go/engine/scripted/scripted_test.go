// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package scripted

import (
	"errors"
	"testing"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"go.uber.org/mock/gomock"
)

func echo(_ cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
	return calldata, nil
}

func TestScripted_IsRegistered(t *testing.T) {
	if _, err := cheatnet.NewEngine("scripted"); err != nil {
		t.Errorf("scripted engine not registered: %v", err)
	}
}

func TestProgram_ClassListsEntryPointsByType(t *testing.T) {
	program := &Program{
		Name:        "test",
		Constructor: echo,
		External:    map[string]Function{"b": echo, "a": echo},
		L1Handlers:  map[string]Function{"h": echo},
	}
	class := program.Class()

	if got := class.NumEntryPoints(cheatnet.External); got != 2 {
		t.Errorf("unexpected number of external entry points: %d", got)
	}
	if !class.HasEntryPoint(cheatnet.L1Handler, cheatnet.SelectorFromName("h")) {
		t.Errorf("missing L1 handler")
	}
	if !class.HasEntryPoint(cheatnet.Constructor, cheatnet.ConstructorSelector) {
		t.Errorf("missing constructor")
	}
	if cheatnet.ComputeClassHash(class) != cheatnet.ComputeClassHash(program.Class()) {
		t.Errorf("class hash of a program is not stable")
	}

	withoutConstructor := &Program{Name: "other"}
	if withoutConstructor.Class().NumEntryPoints(cheatnet.Constructor) != 0 {
		t.Errorf("program without constructor has a constructor entry point")
	}
}

func TestEngine_ExecutesSelectedFunction(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := cheatnet.NewMockRunContext(ctrl)

	var seen cheatnet.Calldata
	program := &Program{
		Name: "selected",
		External: map[string]Function{
			"f": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
				seen = calldata
				return cheatnet.Calldata{cheatnet.Felt(ctx.ContractAddress())}, nil
			},
		},
	}
	class := program.Class()
	address := cheatnet.Address(cheatnet.NewFelt(5))
	ctx.EXPECT().ContractAddress().Return(address)

	result, err := NewEngine().Execute(class, cheatnet.EntryPointCall{
		Selector:       cheatnet.SelectorFromName("f"),
		Calldata:       cheatnet.Calldata{cheatnet.NewFelt(1)},
		EntryPointType: cheatnet.External,
	}, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(cheatnet.Calldata{cheatnet.Felt(address)}) {
		t.Errorf("unexpected result: %v", result)
	}
	if !seen.Equal(cheatnet.Calldata{cheatnet.NewFelt(1)}) {
		t.Errorf("unexpected calldata: %v", seen)
	}
}

func TestEngine_MissingEntryPointReverts(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := cheatnet.NewMockRunContext(ctrl)
	class := (&Program{Name: "missing", External: map[string]Function{"f": echo}}).Class()

	tests := map[string]cheatnet.EntryPointCall{
		"unknown selector": {Selector: cheatnet.SelectorFromName("g"), EntryPointType: cheatnet.External},
		"wrong type":       {Selector: cheatnet.SelectorFromName("f"), EntryPointType: cheatnet.L1Handler},
	}
	for name, call := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewEngine().Execute(class, call, ctx)
			var revert *cheatnet.RevertError
			if !errors.As(err, &revert) || revert.Type != cheatnet.ErrTypeEntryPointNotFound {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProgram_RebuildingClassesDoesNotGrowRegistry(t *testing.T) {
	program := &Program{Name: "rebuilt", External: map[string]Function{"f": echo}}
	program.Class()
	programsLock.RLock()
	before := len(programs)
	programsLock.RUnlock()

	for i := 0; i < 10; i++ {
		program.Class()
	}
	programsLock.RLock()
	after := len(programs)
	programsLock.RUnlock()
	if before != after {
		t.Errorf("registry grew from %d to %d programs", before, after)
	}
}

func TestEngine_ClassesOfEqualProgramsAreInterchangeable(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := cheatnet.NewMockRunContext(ctrl)
	program := &Program{Name: "interchangeable", External: map[string]Function{"f": echo}}
	class := &cheatnet.ContractClass{Program: program.Class().Program}

	result, err := NewEngine().Execute(class, cheatnet.EntryPointCall{
		Selector:       cheatnet.SelectorFromName("f"),
		Calldata:       cheatnet.Calldata{cheatnet.NewFelt(3)},
		EntryPointType: cheatnet.External,
	}, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(cheatnet.Calldata{cheatnet.NewFelt(3)}) {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestEngine_ForeignClassesAreRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := cheatnet.NewMockRunContext(ctrl)
	_, err := NewEngine().Execute(&cheatnet.ContractClass{Program: []byte{1}}, cheatnet.EntryPointCall{}, ctx)
	if err == nil {
		t.Errorf("expected an error")
	}
	var revert *cheatnet.RevertError
	if errors.As(err, &revert) {
		t.Errorf("foreign classes are an engine problem, not a revert")
	}
}

func TestEmit_UsesSelectorOfNameAsKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := cheatnet.NewMockRunContext(ctrl)
	ctx.EXPECT().EmitEvent([]cheatnet.Felt{cheatnet.Felt(cheatnet.SelectorFromName("E"))}, cheatnet.Calldata{cheatnet.NewFelt(1)})
	Emit(ctx, "E", cheatnet.NewFelt(1))
}

func TestExpect_ChecksNumberOfInputs(t *testing.T) {
	if err := Expect(cheatnet.Calldata{cheatnet.NewFelt(1)}, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Expect(nil, 1); err == nil {
		t.Errorf("expected an error")
	}
}
