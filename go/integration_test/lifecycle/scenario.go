// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package lifecycle

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatable"
	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/examples"
	"github.com/Fantom-foundation/Cheatnet/go/expect"
	"pgregory.net/rand"
)

type stepKind int

const (
	increaseDirectly stepKind = iota
	increaseViaProxy
	increaseInCall
	failAfterWrite
	numStepKinds
)

func (k stepKind) String() string {
	switch k {
	case increaseDirectly:
		return "increase"
	case increaseViaProxy:
		return "proxy"
	case increaseInCall:
		return "call"
	case failAfterWrite:
		return "fail"
	}
	return fmt.Sprintf("stepKind(%d)", int(k))
}

// Step is a single operation of a Scenario.
type Step struct {
	Kind   stepKind
	Amount uint64
}

// Scenario is a sequence of operations on a balance contract. Only direct
// and proxied increases are expected to take effect; calls run on throwaway
// state and failing invocations are rolled back.
type Scenario struct {
	Initial uint64
	Steps   []Step
}

// RandomScenario creates a scenario of the given length.
func RandomScenario(rnd *rand.Rand, length int) Scenario {
	steps := make([]Step, length)
	for i := range steps {
		steps[i] = Step{
			Kind:   stepKind(rnd.Intn(int(numStepKinds))),
			Amount: uint64(rnd.Intn(1000)) + 1,
		}
	}
	return Scenario{Initial: uint64(rnd.Intn(1000)), Steps: steps}
}

// Expected returns the balance and the data of the balance_increased events
// the scenario should end with.
func (s Scenario) Expected() (uint64, []uint64) {
	balance := s.Initial
	var events []uint64
	for _, step := range s.Steps {
		if step.Kind == increaseDirectly || step.Kind == increaseViaProxy {
			balance += step.Amount
			events = append(events, step.Amount)
		}
	}
	return balance, events
}

// Run performs the steps of the scenario and checks their outcome.
func (s Scenario) Run(c *cheatable.Controller) error {
	balance, err := deploy(c, examples.GetBalanceExample(), cheatnet.NewFelt(s.Initial))
	if err != nil {
		return err
	}
	proxy, err := deploy(c, examples.GetProxyExample())
	if err != nil {
		return err
	}
	reverter, err := deploy(c, examples.GetReverterExample(), cheatnet.NewFelt(0))
	if err != nil {
		return err
	}

	want, events := s.Expected()
	expected := make([]expect.ExpectedEvent, 0, len(events))
	for _, amount := range events {
		expected = append(expected, expect.Event("balance_increased").WithFrom(balance).WithData(cheatnet.NewFelt(amount)))
	}
	c.ExpectEvents(expected...)

	for i, step := range s.Steps {
		amount := cheatnet.NewFelt(step.Amount)
		switch step.Kind {
		case increaseDirectly:
			_, err = c.Invoke(balance, "increase_balance", cheatable.Positional(amount))
		case increaseViaProxy:
			_, err = c.Invoke(proxy, "increase_target", cheatable.Positional(cheatnet.Felt(balance), amount))
		case increaseInCall:
			_, err = c.Call(balance, "increase_balance", cheatable.Positional(amount))
		case failAfterWrite:
			var revert *cheatnet.RevertError
			_, err = c.Invoke(reverter, "write_and_fail", cheatable.Positional(amount))
			if errors.As(err, &revert) {
				err = nil
			} else {
				err = fmt.Errorf("expected revert, got %v", err)
			}
		}
		if err != nil {
			return fmt.Errorf("step %d (%v): %w", i, step.Kind, err)
		}
	}

	got, err := c.Call(balance, "get_balance", cheatable.Positional())
	if err != nil {
		return err
	}
	if !got.Equal(cheatnet.Calldata{cheatnet.NewFelt(want)}) {
		return fmt.Errorf("unexpected balance, wanted %d, got %v", want, got)
	}
	if value := c.State().GetStorageAt(reverter, examples.ValueKey); !value.IsZero() {
		return fmt.Errorf("write of failed invocation persisted: %v", value)
	}
	return nil
}

func deploy(c *cheatable.Controller, example examples.Example, calldata ...cheatnet.Felt) (cheatnet.Address, error) {
	declared, err := c.Declare(example.Class())
	if err != nil {
		return cheatnet.Address{}, err
	}
	deployed, err := c.Deploy(declared, cheatable.Positional(calldata...), cheatnet.Felt{})
	if err != nil {
		return cheatnet.Address{}, err
	}
	return deployed.Address, nil
}
