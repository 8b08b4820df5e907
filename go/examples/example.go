// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package examples provides example contracts written as scripted programs,
// covering storage, events, nested calls, deployments, reverts, L1 handlers,
// and block information.
package examples

import (
	"math/big"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/engine/scripted"
)

// Example is a contract class ready to be declared.
type Example struct {
	exampleSpec
	class *cheatnet.ContractClass
}

// exampleSpec specifies a contract by its ABI and its entry points.
type exampleSpec struct {
	Name    string
	abi     string
	program scripted.Program
}

func (s exampleSpec) build() Example {
	s.program.Name = s.Name
	s.program.ABI = cheatnet.MustParseABI(s.abi)
	return Example{
		exampleSpec: s,
		class:       s.program.Class(),
	}
}

// Class returns the contract class of the example.
func (e Example) Class() *cheatnet.ContractClass {
	return e.class
}

// ABI returns the parsed ABI of the example.
func (e Example) ABI() cheatnet.ABI {
	return e.class.ABI
}

// GetAllExamples returns one instance of every example contract.
func GetAllExamples() []Example {
	return []Example{
		GetBalanceExample(),
		GetProxyExample(),
		GetReverterExample(),
		GetL1ReceiverExample(),
		GetClockExample(),
	}
}

func add(a, b cheatnet.Felt) cheatnet.Felt {
	return cheatnet.FeltFromBig(new(big.Int).Add(a.Big(), b.Big()))
}

func ret(values ...cheatnet.Felt) (cheatnet.Calldata, error) {
	return cheatnet.Calldata(values), nil
}
