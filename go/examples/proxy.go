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

const proxyABI = `[
	{"type": "function", "name": "increase_target", "inputs": [
		{"name": "target", "type": "felt"},
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "get_target_balance", "inputs": [
		{"name": "target", "type": "felt"}
	], "outputs": [{"name": "res", "type": "felt"}]},
	{"type": "function", "name": "get_target_caller", "inputs": [
		{"name": "target", "type": "felt"}
	], "outputs": [{"name": "res", "type": "felt"}]},
	{"type": "function", "name": "delegate_increase", "inputs": [
		{"name": "target", "type": "felt"},
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "library_increase", "inputs": [
		{"name": "class_hash", "type": "felt"},
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "delegate_deposit", "inputs": [
		{"name": "target", "type": "felt"},
		{"name": "from_address", "type": "felt"},
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "library_deposit", "inputs": [
		{"name": "class_hash", "type": "felt"},
		{"name": "from_address", "type": "felt"},
		{"name": "amount", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "deploy_balance", "inputs": [
		{"name": "class_hash", "type": "felt"},
		{"name": "salt", "type": "felt"},
		{"name": "initial_balance", "type": "felt"},
		{"name": "deploy_from_zero", "type": "felt"}
	], "outputs": [{"name": "address", "type": "felt"}]},
	{"type": "function", "name": "call_ignoring_failure", "inputs": [
		{"name": "target", "type": "felt"},
		{"name": "selector", "type": "felt"}
	], "outputs": []},
	{"type": "function", "name": "get_balance", "inputs": [], "outputs": [
		{"name": "res", "type": "felt"}
	]}
]`

// GetProxyExample returns a contract forwarding to other contracts through
// all kinds of call system calls and deploying balance contracts.
func GetProxyExample() Example {
	return exampleSpec{
		Name: "proxy",
		abi:  proxyABI,
		program: scripted.Program{
			External: map[string]scripted.Function{
				"increase_target": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 2); err != nil {
						return nil, err
					}
					return ctx.Call(cheatnet.CallContract, cheatnet.CallRequest{
						ContractAddress: cheatnet.Address(calldata[0]),
						Selector:        cheatnet.SelectorFromName("increase_balance"),
						Calldata:        calldata[1:],
					})
				},
				"get_target_balance": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					return forward(ctx, calldata, "get_balance")
				},
				"get_target_caller": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					return forward(ctx, calldata, "get_caller")
				},
				"delegate_increase": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 2); err != nil {
						return nil, err
					}
					return ctx.Call(cheatnet.DelegateCall, cheatnet.CallRequest{
						ContractAddress: cheatnet.Address(calldata[0]),
						Selector:        cheatnet.SelectorFromName("increase_balance"),
						Calldata:        calldata[1:],
					})
				},
				"library_increase": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 2); err != nil {
						return nil, err
					}
					return ctx.Call(cheatnet.LibraryCall, cheatnet.CallRequest{
						ClassHash: cheatnet.ClassHash(calldata[0]),
						Selector:  cheatnet.SelectorFromName("increase_balance"),
						Calldata:  calldata[1:],
					})
				},
				"delegate_deposit": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 3); err != nil {
						return nil, err
					}
					return ctx.Call(cheatnet.DelegateL1Handler, cheatnet.CallRequest{
						ContractAddress: cheatnet.Address(calldata[0]),
						Selector:        cheatnet.SelectorFromName("deposit"),
						Calldata:        calldata[1:],
					})
				},
				"library_deposit": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 3); err != nil {
						return nil, err
					}
					return ctx.Call(cheatnet.LibraryCallL1Handler, cheatnet.CallRequest{
						ClassHash: cheatnet.ClassHash(calldata[0]),
						Selector:  cheatnet.SelectorFromName("deposit"),
						Calldata:  calldata[1:],
					})
				},
				"deploy_balance": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 4); err != nil {
						return nil, err
					}
					address, err := ctx.Deploy(cheatnet.DeployRequest{
						ClassHash:           cheatnet.ClassHash(calldata[0]),
						Salt:                calldata[1],
						ConstructorCalldata: cheatnet.Calldata{calldata[2]},
						DeployFromZero:      calldata[3],
					})
					if err != nil {
						return nil, err
					}
					return ret(cheatnet.Felt(address))
				},
				"call_ignoring_failure": func(ctx cheatnet.RunContext, calldata cheatnet.Calldata) (cheatnet.Calldata, error) {
					if err := scripted.Expect(calldata, 2); err != nil {
						return nil, err
					}
					// the error is dropped on purpose
					_, _ = ctx.Call(cheatnet.CallContract, cheatnet.CallRequest{
						ContractAddress: cheatnet.Address(calldata[0]),
						Selector:        cheatnet.Selector(calldata[1]),
					})
					return ret()
				},
				"get_balance": func(ctx cheatnet.RunContext, _ cheatnet.Calldata) (cheatnet.Calldata, error) {
					return ret(ctx.StorageRead(BalanceKey))
				},
			},
		},
	}.build()
}

func forward(ctx cheatnet.RunContext, calldata cheatnet.Calldata, function string) (cheatnet.Calldata, error) {
	if err := scripted.Expect(calldata, 1); err != nil {
		return nil, err
	}
	return ctx.Call(cheatnet.CallContract, cheatnet.CallRequest{
		ContractAddress: cheatnet.Address(calldata[0]),
		Selector:        cheatnet.SelectorFromName(function),
	})
}
