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
	"math/big"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/engine/scripted"
)

const balanceABI = `[
	{"type": "struct", "name": "Uint256", "size": 2, "members": [
		{"name": "low", "type": "felt", "offset": 0},
		{"name": "high", "type": "felt", "offset": 1}
	]},
	{"type": "event", "name": "balance_increased", "keys": [], "data": [
		{"name": "amount", "type": "felt"}
	]},
	{"type": "constructor", "name": "constructor", "inputs": [
		{"name": "initial_balance", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "increase_balance", "inputs": [
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "increase_balance_uint256", "inputs": [
		{"name": "amount", "type": "Uint256"}
	], "outputs": []},
	{"type": "function", "name": "increase_balance_batch", "inputs": [
		{"name": "amounts_len", "type": "felt"},
		{"name": "amounts", "type": "felt*"}
	], "outputs": []},
	{"type": "function", "name": "get_balance", "inputs": [], "outputs": [
		{"name": "res", "type": "felt"}
	], "stateMutability": "view"},
	{"type": "function", "name": "get_caller", "inputs": [], "outputs": [
		{"name": "address", "type": "felt"}
	], "stateMutability": "view"}
]`

// BalanceKey is the storage key of the balance of the balance example.
var BalanceKey = cheatnet.StorageVarAddress("balance")

// GetBalanceExample returns a contract keeping a single balance. Every
// increase emits a balance_increased event carrying the amount.
func GetBalanceExample() Example {
	return exampleSpec{
		Name: "balance",
		abi:  balanceABI,
		program: scripted.Program{
			Constructor: func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
				if err := scripted.Expect(calldata, 1); err != nil {
					return nil, err
				}
				ctx.StorageWrite(BalanceKey, calldata[0])
				return ret()
			},
			External: map[string]scripted.Function{
				"increase_balance": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 1); err != nil {
						return nil, err
					}
					increaseBalance(ctx, calldata[0])
					return ret()
				},
				"increase_balance_uint256": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 2); err != nil {
						return nil, err
					}
					amount := new(big.Int).Lsh(calldata[1].Big(), 128)
					amount.Add(amount, calldata[0].Big())
					increaseBalance(ctx, cheatnet.FeltFromBig(amount))
					return ret()
				},
				"increase_balance_batch": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if len(calldata) == 0 || calldata[0].Big().Cmp(big.NewInt(int64(len(calldata)-1))) != 0 {
						return nil, scripted.Revert("invalid array length")
					}
					for _, amount := range calldata[1:] {
						increaseBalance(ctx, amount)
					}
					return ret()
				},
				"get_balance": func(ctx cheatnet.RunContext, _ cheatnet.Calldata) (cheatnet.Calldata, error) {
					return ret(ctx.StorageRead(BalanceKey))
				},
				"get_caller": func(ctx cheatnet.RunContext, _ cheatnet.Calldata) (cheatnet.Calldata, error) {
					return ret(cheatnet.Felt(ctx.CallerAddress()))
				},
			},
		},
	}.build()
}

func increaseBalance(ctx cheatnet.RunContext, amount cheatnet.Felt) {
	ctx.StorageWrite(BalanceKey, add(ctx.StorageRead(BalanceKey), amount))
	scripted.Emit(ctx, "balance_increased", amount)
}
