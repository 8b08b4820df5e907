// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/engine/scripted"
)

const reverterABI = `[
	{"type": "event", "name": "attempted", "keys": [], "data": []},
	{"type": "constructor", "name": "constructor", "inputs": [
		{"name": "should_fail", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "fail", "inputs": [], "outputs": []},
	{"type": "function", "name": "write_and_fail", "inputs": [
		{"name": "value", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "get_value", "inputs": [], "outputs": [
		{"name": "res", "type": "felt"}
	]}
]`

// ValueKey is the storage key written by the reverter example.
var ValueKey = cheatnet.StorageVarAddress("value")

// ErrorMessage is the message of all reverts raised by the reverter example.
const ErrorMessage = "reverted on purpose"

// GetReverterExample returns a contract whose entry points write to storage
// and emit an event before they revert. Its constructor does the same if it
// is passed a non-zero flag.
func GetReverterExample() Example {
	writeAndFail := func(ctx cheatnet.RunContext, value cheatnet.Felt) (cheatnet.Calldata, error) {
		ctx.StorageWrite(ValueKey, value)
		scripted.Emit(ctx, "attempted")
		return nil, scripted.Revert(ErrorMessage)
	}
	return exampleSpec{
		Name: "reverter",
		abi:  reverterABI,
		program: scripted.Program{
			Constructor: func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
				if err := scripted.Expect(calldata, 1); err != nil {
					return nil, err
				}
				if calldata[0].IsZero() {
					return ret()
				}
				return writeAndFail(ctx, calldata[0])
			},
			External: map[string]scripted.Function{
				"fail": func(cheatnet.RunContext, cheatnet.Calldata) (cheatnet.Calldata, error) {
					return nil, scripted.Revert(ErrorMessage)
				},
				"write_and_fail": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 1); err != nil {
						return nil, err
					}
					return writeAndFail(ctx, calldata[0])
				},
				"get_value": func(ctx cheatnet.RunContext, _ cheatnet.Calldata) (cheatnet.Calldata, error) {
					return ret(ctx.StorageRead(ValueKey))
				},
			},
		},
	}.build()
}
