// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cheatable

import (
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

// Arguments are the inputs of an entry point, given either as positional
// calldata or as values keyed by the input names of the entry point's ABI.
// The zero value represents empty positional calldata.
type Arguments struct {
	named      map[string]any
	positional cheatnet.Calldata
	isNamed    bool
}

// Named creates arguments which are transformed into calldata using the ABI
// of the targeted class.
func Named(args map[string]any) Arguments {
	return Arguments{named: args, isNamed: true}
}

// Positional creates arguments passed through as they are.
func Positional(calldata ...cheatnet.Felt) Arguments {
	return Arguments{positional: calldata}
}

func (a Arguments) IsNamed() bool {
	return a.isNamed
}

func (a Arguments) String() string {
	if a.isNamed {
		return fmt.Sprintf("%v", a.named)
	}
	return a.positional.String()
}

// calldata converts the arguments into the calldata of the given function.
func (a Arguments) calldata(abi cheatnet.ABI, function string) (cheatnet.Calldata, error) {
	if !a.isNamed {
		if a.positional == nil {
			return cheatnet.Calldata{}, nil
		}
		return a.positional.Clone(), nil
	}
	if len(abi) == 0 {
		return nil, fmt.Errorf("cannot transform arguments of %s: %w", function, ErrMissingABI)
	}
	return abi.TransformInputs(function, a.named)
}
