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

const l1ReceiverABI = `[
	{"type": "event", "name": "deposited", "keys": [], "data": [
		{"name": "from_address", "type": "felt"},
		{"name": "amount", "type": "felt"}
	]},
	{"type": "l1_handler", "name": "deposit", "inputs": [
		{"name": "from_address", "type": "felt"},
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "get_deposit", "inputs": [
		{"name": "from_address", "type": "felt"}
	], "outputs": [{"name": "res", "type": "felt"}]}
]`

// DepositKey returns the storage key of the deposits of an L1 address.
func DepositKey(from cheatnet.Felt) cheatnet.Key {
	return cheatnet.StorageVarAddress("deposits", from)
}

// GetL1ReceiverExample returns a contract accumulating deposits sent from L1
// through its deposit L1 handler.
func GetL1ReceiverExample() Example {
	return exampleSpec{
		Name: "l1_receiver",
		abi:  l1ReceiverABI,
		program: scripted.Program{
			L1Handlers: map[string]scripted.Function{
				"deposit": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 2); err != nil {
						return nil, err
					}
					from, amount := calldata[0], calldata[1]
					key := DepositKey(from)
					ctx.StorageWrite(key, add(ctx.StorageRead(key), amount))
					scripted.Emit(ctx, "deposited", from, amount)
					return ret()
				},
			},
			External: map[string]scripted.Function{
				"get_deposit": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 1); err != nil {
						return nil, err
					}
					return ret(ctx.StorageRead(DepositKey(calldata[0])))
				},
			},
		},
	}.build()
}
