// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package scripted provides an execution engine running contracts written
// as Go functions. It stands in for a real Cairo VM wherever the behavior of
// the executed code, not its compilation, is of interest.
package scripted

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

func init() {
	cheatnet.RegisterEngine("scripted", NewEngine())
}

// Function implements an entry point. The calldata is the input of the
// entry point; the returned calldata becomes its return data.
type Function func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error)

// Program is a contract written in Go. Entry points are identified by the
// selectors of their names. The name identifies the program; building the
// class of a program replaces the code registered under the same name.
type Program struct {
	Name        string
	ABI         cheatnet.ABI
	Constructor Function
	External    map[string]Function
	L1Handlers  map[string]Function
}

type compiled map[cheatnet.EntryPointType]map[cheatnet.Selector]Function

var (
	programs     = map[string]compiled{} // < by class program
	programsLock sync.RWMutex
)

// Class builds the contract class of the program. Only classes created this
// way can be executed by the scripted engine.
func (p *Program) Class() *cheatnet.ContractClass {
	code := compiled{
		cheatnet.External:    map[cheatnet.Selector]Function{},
		cheatnet.L1Handler:   map[cheatnet.Selector]Function{},
		cheatnet.Constructor: map[cheatnet.Selector]Function{},
	}
	class := &cheatnet.ContractClass{
		Program:     []byte("scripted:" + p.Name),
		ABI:         p.ABI,
		EntryPoints: map[cheatnet.EntryPointType][]cheatnet.Selector{},
	}
	add := func(kind cheatnet.EntryPointType, name string, function Function) {
		selector := cheatnet.SelectorFromName(name)
		code[kind][selector] = function
		class.EntryPoints[kind] = append(class.EntryPoints[kind], selector)
	}
	for _, name := range sortedNames(p.External) {
		add(cheatnet.External, name, p.External[name])
	}
	for _, name := range sortedNames(p.L1Handlers) {
		add(cheatnet.L1Handler, name, p.L1Handlers[name])
	}
	if p.Constructor != nil {
		add(cheatnet.Constructor, "constructor", p.Constructor)
	}

	programsLock.Lock()
	defer programsLock.Unlock()
	programs[string(class.Program)] = code
	return class
}

func sortedNames(functions map[string]Function) []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type engine struct{}

// NewEngine creates an engine executing classes created by Program.Class.
// The engine is stateless and may be used concurrently.
func NewEngine() cheatnet.ExecutionEngine {
	return engine{}
}

func (engine) Execute(class *cheatnet.ContractClass, call cheatnet.EntryPointCall, ctx cheatnet.RunContext) (cheatnet.Calldata, error) {
	programsLock.RLock()
	code, found := programs[string(class.Program)]
	programsLock.RUnlock()
	if !found {
		return nil, fmt.Errorf("class %q was not created by a scripted program", class.Program)
	}
	function, found := code[call.EntryPointType][call.Selector]
	if !found {
		return nil, cheatnet.NewRevertError(cheatnet.ErrTypeEntryPointNotFound,
			fmt.Sprintf("Entry point %v not found in contract.", call.Selector))
	}
	return function(ctx, call.Calldata.Clone())
}

// Revert creates the error of a contract failing with the given messages.
func Revert(messages ...string) error {
	return cheatnet.NewRevertError(cheatnet.ErrTypeTransactionFailed, messages...)
}

// Emit emits an event whose first key is the selector of the given name.
func Emit(ctx cheatnet.RunContext, name string, data ...cheatnet.Felt) {
	ctx.EmitEvent([]cheatnet.Felt{cheatnet.Felt(cheatnet.SelectorFromName(name))}, data)
}

// Expect checks the number of inputs of an entry point.
func Expect(calldata cheatnet.Calldata, count int) error {
	if len(calldata) != count {
		return Revert(fmt.Sprintf("expected %d inputs, got %d", count, len(calldata)))
	}
	return nil
}
