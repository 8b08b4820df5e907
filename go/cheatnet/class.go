// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cheatnet

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ContractClass is a compiled contract as produced by the compiler: the
// program to be executed by an ExecutionEngine, its ABI, and the table of
// entry points it exports. Classes are immutable once declared.
type ContractClass struct {
	Program     []byte
	ABI         ABI
	EntryPoints map[EntryPointType][]Selector
}

// HasEntryPoint reports whether the class exports the given selector for the
// given entry point type.
func (c *ContractClass) HasEntryPoint(kind EntryPointType, selector Selector) bool {
	return slices.Contains(c.EntryPoints[kind], selector)
}

// NumEntryPoints returns the number of entry points of the given type.
func (c *ContractClass) NumEntryPoints(kind EntryPointType) int {
	return len(c.EntryPoints[kind])
}

// ABI is the Cairo 0 JSON description of the functions, events, and structs
// of a contract class.
type ABI []ABIEntry

// ABIEntry is a single element of an ABI. Depending on its Type, only a
// subset of the fields is used.
type ABIEntry struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Size    int         `json:"size,omitempty"`
	Inputs  []ABIMember `json:"inputs,omitempty"`
	Outputs []ABIMember `json:"outputs,omitempty"`
	Keys    []ABIMember `json:"keys,omitempty"`
	Data    []ABIMember `json:"data,omitempty"`
	Members []ABIMember `json:"members,omitempty"`
}

// ABIMember is a named and typed argument, event field, or struct member.
type ABIMember struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset *int   `json:"offset,omitempty"`
}

const (
	abiFunction    = "function"
	abiConstructor = "constructor"
	abiL1Handler   = "l1_handler"
	abiEvent       = "event"
	abiStruct      = "struct"
)

// ParseABI decodes a JSON encoded ABI.
func ParseABI(data []byte) (ABI, error) {
	var abi ABI
	if err := json.Unmarshal(data, &abi); err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return abi, nil
}

// MustParseABI is like ParseABI but panics on malformed input. It is intended
// for ABIs embedded as constants.
func MustParseABI(data string) ABI {
	abi, err := ParseABI([]byte(data))
	if err != nil {
		panic(err)
	}
	return abi
}

// Callable returns the function, constructor, or L1 handler with the given
// name.
func (a ABI) Callable(name string) (ABIEntry, bool) {
	for _, entry := range a {
		if entry.Name != name {
			continue
		}
		switch entry.Type {
		case abiFunction, abiConstructor, abiL1Handler:
			return entry, true
		}
	}
	return ABIEntry{}, false
}

// EventSelectors maps the selectors of all events declared in the ABI to
// their names.
func (a ABI) EventSelectors() map[Selector]string {
	res := map[Selector]string{}
	for _, entry := range a {
		if entry.Type == abiEvent {
			res[SelectorFromName(entry.Name)] = entry.Name
		}
	}
	return res
}

func (a ABI) structs() map[string]ABIEntry {
	res := map[string]ABIEntry{}
	for _, entry := range a {
		if entry.Type == abiStruct {
			res[entry.Name] = entry
		}
	}
	return res
}

func (a ABI) canonical() []byte {
	if len(a) == 0 {
		return nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		panic(fmt.Sprintf("failed to encode ABI: %v", err))
	}
	return data
}
