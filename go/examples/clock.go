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

const clockABI = `[
	{"type": "function", "name": "get_block_number", "inputs": [], "outputs": [
		{"name": "res", "type": "felt"}
	]},
	{"type": "function", "name": "get_block_timestamp", "inputs": [], "outputs": [
		{"name": "res", "type": "felt"}
	]}
]`

// GetClockExample returns a contract reporting the block information it
// observes.
func GetClockExample() Example {
	return exampleSpec{
		Name: "clock",
		abi:  clockABI,
		program: scripted.Program{
			External: map[string]scripted.Function{
				"get_block_number": func(ctx cheatnet.RunContext, _ cheatnet.Calldata) (cheatnet.Calldata, error) {
					return ret(cheatnet.NewFelt(ctx.BlockNumber()))
				},
				"get_block_timestamp": func(ctx cheatnet.RunContext, _ cheatnet.Calldata) (cheatnet.Calldata, error) {
					return ret(cheatnet.NewFelt(ctx.BlockTimestamp()))
				},
			},
		},
	}.build()
}
