// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatable"
	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/examples"
	"github.com/Fantom-foundation/Cheatnet/go/expect"
)

// exampleCases returns test cases exercising the cheatcodes on the example
// contracts.
func exampleCases() []cheatable.Case {
	return []cheatable.Case{
		{Name: "balance/increase", Run: balanceIncrease},
		{Name: "balance/events", Run: balanceEvents},
		{Name: "balance/store_load", Run: balanceStoreLoad},
		{Name: "proxy/prank", Run: proxyPrank},
		{Name: "proxy/mock_call", Run: proxyMockCall},
		{Name: "proxy/expect_call", Run: proxyExpectCall},
		{Name: "proxy/deploy", Run: proxyDeploy},
		{Name: "reverter/expect_revert", Run: reverterExpectRevert},
		{Name: "reverter/constructor", Run: reverterConstructor},
		{Name: "l1_receiver/send_message", Run: l1ReceiverSendMessage},
		{Name: "clock/roll_warp", Run: clockRollWarp},
	}
}

func deployExample(c *cheatable.Controller, example examples.Example, args cheatable.Arguments) (cheatnet.Address, error) {
	declared, err := c.Declare(example.Class())
	if err != nil {
		return cheatnet.Address{}, err
	}
	deployed, err := c.Deploy(declared, args, cheatnet.Felt{})
	if err != nil {
		return cheatnet.Address{}, err
	}
	return deployed.Address, nil
}

func checkCall(c *cheatable.Controller, contract cheatnet.Address, function string, args cheatable.Arguments, want ...cheatnet.Felt) error {
	got, err := c.Call(contract, function, args)
	if err != nil {
		return err
	}
	if !got.Equal(want) {
		return fmt.Errorf("%s returned %v, wanted %v", function, got, cheatnet.Calldata(want))
	}
	return nil
}

func balanceIncrease(c *cheatable.Controller) error {
	balance, err := deployExample(c, examples.GetBalanceExample(), cheatable.Named(map[string]any{"initial_balance": 10}))
	if err != nil {
		return err
	}
	if _, err := c.Invoke(balance, "increase_balance", cheatable.Named(map[string]any{"amount": 5})); err != nil {
		return err
	}
	if _, err := c.Invoke(balance, "increase_balance_batch", cheatable.Named(map[string]any{"amounts": []int{1, 2}})); err != nil {
		return err
	}
	return checkCall(c, balance, "get_balance", cheatable.Positional(), cheatnet.NewFelt(18))
}

func balanceEvents(c *cheatable.Controller) error {
	balance, err := deployExample(c, examples.GetBalanceExample(), cheatable.Positional(cheatnet.NewFelt(0)))
	if err != nil {
		return err
	}
	c.ExpectEvents(
		expect.Event("balance_increased").WithFrom(balance).WithData(cheatnet.NewFelt(1)),
		expect.Event("balance_increased").WithData(cheatnet.NewFelt(3)),
	)
	_, err = c.Invoke(balance, "increase_balance_batch", cheatable.Positional(cheatnet.NewFelt(3), cheatnet.NewFelt(1), cheatnet.NewFelt(2), cheatnet.NewFelt(3)))
	return err
}

func balanceStoreLoad(c *cheatable.Controller) error {
	balance, err := deployExample(c, examples.GetBalanceExample(), cheatable.Positional(cheatnet.NewFelt(0)))
	if err != nil {
		return err
	}
	c.Store(balance, "balance", cheatnet.Calldata{cheatnet.NewFelt(42)})
	got, err := c.Load(balance, "balance", 1)
	if err != nil {
		return err
	}
	if got[0] != cheatnet.NewFelt(42) {
		return fmt.Errorf("loaded %v after store", got)
	}
	return checkCall(c, balance, "get_balance", cheatable.Positional(), cheatnet.NewFelt(42))
}

func deployBalanceAndProxy(c *cheatable.Controller) (balance, proxy cheatnet.Address, err error) {
	if balance, err = deployExample(c, examples.GetBalanceExample(), cheatable.Positional(cheatnet.NewFelt(1))); err != nil {
		return
	}
	proxy, err = deployExample(c, examples.GetProxyExample(), cheatable.Positional())
	return
}

func proxyPrank(c *cheatable.Controller) error {
	balance, proxy, err := deployBalanceAndProxy(c)
	if err != nil {
		return err
	}
	pranker := cheatnet.NewFelt(0x123)
	c.Prank(cheatnet.Address(pranker), balance)
	if err := checkCall(c, proxy, "get_target_caller", cheatable.Positional(cheatnet.Felt(balance)), pranker); err != nil {
		return err
	}
	c.CancelPrank(balance)
	return checkCall(c, proxy, "get_target_caller", cheatable.Positional(cheatnet.Felt(balance)), cheatnet.Felt(proxy))
}

func proxyMockCall(c *cheatable.Controller) error {
	balance, proxy, err := deployBalanceAndProxy(c)
	if err != nil {
		return err
	}
	c.MockCall(balance, "get_balance", cheatnet.Calldata{cheatnet.NewFelt(99)})
	if err := checkCall(c, proxy, "get_target_balance", cheatable.Positional(cheatnet.Felt(balance)), cheatnet.NewFelt(99)); err != nil {
		return err
	}
	if err := c.ClearMockCall(balance, "get_balance"); err != nil {
		return err
	}
	return checkCall(c, proxy, "get_target_balance", cheatable.Positional(cheatnet.Felt(balance)), cheatnet.NewFelt(1))
}

func proxyExpectCall(c *cheatable.Controller) error {
	balance, proxy, err := deployBalanceAndProxy(c)
	if err != nil {
		return err
	}
	if err := c.ExpectCall(balance, "increase_balance", cheatable.Named(map[string]any{"amount": 4})); err != nil {
		return err
	}
	_, err = c.Invoke(proxy, "increase_target", cheatable.Positional(cheatnet.Felt(balance), cheatnet.NewFelt(4)))
	return err
}

func proxyDeploy(c *cheatable.Controller) error {
	declared, err := c.Declare(examples.GetBalanceExample().Class())
	if err != nil {
		return err
	}
	proxy, err := deployExample(c, examples.GetProxyExample(), cheatable.Positional())
	if err != nil {
		return err
	}
	salt, initial := cheatnet.NewFelt(7), cheatnet.NewFelt(3)
	res, err := c.Invoke(proxy, "deploy_balance", cheatable.Positional(cheatnet.Felt(declared.ClassHash), salt, initial, cheatnet.NewFelt(0)))
	if err != nil {
		return err
	}
	want := cheatnet.ContractAddress(salt, declared.ClassHash, cheatnet.Calldata{initial}, proxy)
	if len(res) != 1 || res[0] != cheatnet.Felt(want) {
		return fmt.Errorf("contract deployed at %v, wanted %v", res, want)
	}
	return checkCall(c, want, "get_balance", cheatable.Positional(), initial)
}

func reverterExpectRevert(c *cheatable.Controller) error {
	reverter, err := deployExample(c, examples.GetReverterExample(), cheatable.Positional(cheatnet.NewFelt(0)))
	if err != nil {
		return err
	}
	expected := &cheatnet.RevertError{Messages: []string{examples.ErrorMessage}}
	err = expect.Revert(expected, func() error {
		_, err := c.Invoke(reverter, "write_and_fail", cheatable.Positional(cheatnet.NewFelt(1)))
		return err
	})
	if err != nil {
		return err
	}
	return checkCall(c, reverter, "get_value", cheatable.Positional(), cheatnet.Felt{})
}

func reverterConstructor(c *cheatable.Controller) error {
	declared, err := c.Declare(examples.GetReverterExample().Class())
	if err != nil {
		return err
	}
	prepared, err := c.Prepare(declared, cheatable.Positional(cheatnet.NewFelt(1)), cheatnet.Felt{})
	if err != nil {
		return err
	}
	err = expect.Revert(nil, func() error {
		_, err := c.DeployPrepared(prepared)
		return err
	})
	if err != nil {
		return err
	}
	if c.State().IsDeployed(prepared.Address) {
		return fmt.Errorf("contract with failing constructor was deployed")
	}
	return nil
}

func l1ReceiverSendMessage(c *cheatable.Controller) error {
	receiver, err := deployExample(c, examples.GetL1ReceiverExample(), cheatable.Positional())
	if err != nil {
		return err
	}
	from := cheatnet.NewFelt(0xABC)
	c.ExpectEvents(expect.Event("deposited").WithFrom(receiver).WithData(from, cheatnet.NewFelt(50)))
	if err := c.SendMessageToL2(cheatnet.Address(from), receiver, "deposit", cheatable.Named(map[string]any{"amount": 50})); err != nil {
		return err
	}
	return checkCall(c, receiver, "get_deposit", cheatable.Positional(from), cheatnet.NewFelt(50))
}

func clockRollWarp(c *cheatable.Controller) error {
	clock, err := deployExample(c, examples.GetClockExample(), cheatable.Positional())
	if err != nil {
		return err
	}
	c.Roll(clock, 1234)
	c.Warp(clock, 5678)
	if err := checkCall(c, clock, "get_block_number", cheatable.Positional(), cheatnet.NewFelt(1234)); err != nil {
		return err
	}
	return checkCall(c, clock, "get_block_timestamp", cheatable.Positional(), cheatnet.NewFelt(5678))
}
