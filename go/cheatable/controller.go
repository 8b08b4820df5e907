// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package cheatable runs contract code under conditions altered by test
// code. A Controller sequences the lifecycle of contracts (declaration,
// deployment, invocation) on an overlay state and exposes the cheatcodes
// through which tests install pranks, mocks, and expectations.
package cheatable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/expect"
	"github.com/Fantom-foundation/Cheatnet/go/state"
	"github.com/ethereum/go-ethereum/log"
)

// DeclaredClass is the result of a successful declaration.
type DeclaredClass struct {
	ClassHash cheatnet.ClassHash
	ABI       cheatnet.ABI
}

// PreparedContract is a contract whose address has been computed but which
// has not necessarily been deployed yet.
type PreparedContract struct {
	Address             cheatnet.Address
	ClassHash           cheatnet.ClassHash
	Salt                cheatnet.Felt
	ConstructorCalldata cheatnet.Calldata
}

type DeployedContract struct {
	Address cheatnet.Address
}

// Controller performs the operations of a test case on an overlay state.
// Every operation mutating executable state runs in its own transaction and
// leaves no trace if it fails.
type Controller struct {
	state  *state.OverlayState
	engine cheatnet.ExecutionEngine
	config Config
	logger log.Logger

	mu             sync.Mutex
	expectedEvents []expect.ExpectedEvent
}

func NewController(s *state.OverlayState, engine cheatnet.ExecutionEngine, config Config) *Controller {
	return &Controller{
		state:  s,
		engine: engine,
		config: config,
		logger: log.New("module", "cheatable"),
	}
}

// NewControllerFromConfig creates a controller on a fresh state using the
// execution engine named in the configuration.
func NewControllerFromConfig(config Config) (*Controller, error) {
	engine, err := cheatnet.NewEngine(config.Engine)
	if err != nil {
		return nil, err
	}
	return NewController(state.New(), engine, config), nil
}

func (c *Controller) State() *state.OverlayState {
	return c.state
}

func (c *Controller) newExecutor(s *state.OverlayState) *executor {
	return newExecutor(s, c.engine, c.config, c.logger)
}

// Declare registers the given class. The names of the events listed in the
// class's ABI become known to the event log right away.
func (c *Controller) Declare(class *cheatnet.ContractClass) (DeclaredClass, error) {
	classHash := cheatnet.ComputeClassHash(class)
	err := c.state.Apply(func(s *state.OverlayState) error {
		return s.DeclareClass(classHash, class)
	})
	if err != nil {
		return DeclaredClass{}, &DeclareError{ClassHash: classHash, Err: err}
	}
	c.state.EventNames().Merge(class.ABI.EventSelectors())
	c.logger.Debug("Declared class", "class", classHash)
	return DeclaredClass{ClassHash: classHash, ABI: class.ABI}, nil
}

// Prepare computes the address a contract of the given class would be
// deployed at, without deploying it. Calls to the address can be resolved
// to the class from now on.
func (c *Controller) Prepare(declared DeclaredClass, args Arguments, salt cheatnet.Felt) (PreparedContract, error) {
	calldata, err := args.calldata(declared.ABI, "constructor")
	if err != nil {
		return PreparedContract{}, err
	}
	address := cheatnet.ContractAddress(salt, declared.ClassHash, calldata, cheatnet.Address{})
	c.state.SetPrepared(address, declared.ClassHash)
	c.logger.Debug("Prepared contract", "address", address, "class", declared.ClassHash, "salt", salt)
	return PreparedContract{
		Address:             address,
		ClassHash:           declared.ClassHash,
		Salt:                salt,
		ConstructorCalldata: calldata,
	}, nil
}

// DeployPrepared deploys a prepared contract and runs its constructor with
// the prepared calldata.
func (c *Controller) DeployPrepared(prepared PreparedContract) (DeployedContract, error) {
	err := c.state.Apply(func(s *state.OverlayState) error {
		executor := c.newExecutor(s)
		if err := executor.deploy(prepared.Address, prepared.ClassHash, prepared.ConstructorCalldata, cheatnet.Address{}, 0); err != nil {
			return err
		}
		s.RecordEvents(executor.events)
		return nil
	})
	if err != nil {
		c.logger.Debug("Deployment failed", "address", prepared.Address, "err", err)
		return DeployedContract{}, err
	}
	return DeployedContract{Address: prepared.Address}, nil
}

// Deploy prepares and deploys a contract in one step.
func (c *Controller) Deploy(declared DeclaredClass, args Arguments, salt cheatnet.Felt) (DeployedContract, error) {
	prepared, err := c.Prepare(declared, args, salt)
	if err != nil {
		return DeployedContract{}, err
	}
	return c.DeployPrepared(prepared)
}

// Invoke executes a function of a deployed contract. State changes and
// emitted events are kept if the execution succeeds.
func (c *Controller) Invoke(contract cheatnet.Address, function string, args Arguments) (cheatnet.Calldata, error) {
	calldata, err := c.calldataFor(contract, function, args)
	if err != nil {
		return nil, err
	}
	call := externalCall(contract, function, calldata)

	var result cheatnet.Calldata
	err = c.state.Apply(func(s *state.OverlayState) error {
		executor := c.newExecutor(s)
		res, err := executor.execute(call, 0)
		if err != nil {
			return err
		}
		s.RecordEvents(executor.events)
		result = res
		return nil
	})
	if err != nil {
		c.logger.Debug("Invocation failed", "contract", contract, "function", function, "err", err)
		return nil, err
	}
	return result, nil
}

// Call executes a function of a deployed contract on a throwaway copy of the
// state and returns its result. Only the consumption of expected calls is
// retained.
func (c *Controller) Call(contract cheatnet.Address, function string, args Arguments) (cheatnet.Calldata, error) {
	calldata, err := c.calldataFor(contract, function, args)
	if err != nil {
		return nil, err
	}
	return c.newExecutor(c.state.Fork()).execute(externalCall(contract, function, calldata), 0)
}

// SendMessageToL2 delivers a message from an L1 address to an L1 handler of
// a contract. The sender address is passed as the first input of the
// handler, followed by the payload.
func (c *Controller) SendMessageToL2(from cheatnet.Address, to cheatnet.Address, function string, payload Arguments) error {
	classHash, found := c.state.ClassHashOf(to)
	if !found {
		return fmt.Errorf("cannot send message to %v: %w", to, ErrUnknownContract)
	}
	calldata, err := c.messageCalldata(classHash, from, function, payload)
	if err != nil {
		return err
	}
	call := cheatnet.EntryPointCall{
		ContractAddress: to,
		CodeAddress:     to,
		ClassHash:       classHash,
		Selector:        cheatnet.SelectorFromName(function),
		Calldata:        calldata,
		CallerAddress:   from,
		EntryPointType:  cheatnet.L1Handler,
		CallType:        cheatnet.Delegate,
	}
	return c.state.Apply(func(s *state.OverlayState) error {
		executor := c.newExecutor(s)
		if _, err := executor.execute(call, 0); err != nil {
			return err
		}
		s.RecordEvents(executor.events)
		return nil
	})
}

func (c *Controller) messageCalldata(classHash cheatnet.ClassHash, from cheatnet.Address, function string, payload Arguments) (cheatnet.Calldata, error) {
	if !payload.IsNamed() {
		return append(cheatnet.Calldata{cheatnet.Felt(from)}, payload.positional...), nil
	}
	abi := c.abiOf(classHash)
	entry, found := abi.Callable(function)
	if !found || len(entry.Inputs) == 0 {
		return payload.calldata(abi, function)
	}
	named := make(map[string]any, len(payload.named)+1)
	for name, value := range payload.named {
		named[name] = value
	}
	named[entry.Inputs[0].Name] = from
	return Named(named).calldata(abi, function)
}

func externalCall(contract cheatnet.Address, function string, calldata cheatnet.Calldata) cheatnet.EntryPointCall {
	return cheatnet.EntryPointCall{
		ContractAddress: contract,
		CodeAddress:     contract,
		Selector:        cheatnet.SelectorFromName(function),
		Calldata:        calldata,
		EntryPointType:  cheatnet.External,
		CallType:        cheatnet.Call,
	}
}

func (c *Controller) abiOf(classHash cheatnet.ClassHash) cheatnet.ABI {
	class, found := c.state.GetContractClass(classHash)
	if !found {
		return nil
	}
	return class.ABI
}

// calldataFor converts arguments using the ABI of the class associated with
// the given contract, which may be prepared but not yet deployed.
func (c *Controller) calldataFor(contract cheatnet.Address, function string, args Arguments) (cheatnet.Calldata, error) {
	if !args.IsNamed() {
		return args.calldata(nil, function)
	}
	classHash, found := c.state.ClassHashOf(contract)
	if !found {
		return nil, fmt.Errorf("cannot transform arguments for %v: %w", contract, ErrUnknownContract)
	}
	return args.calldata(c.abiOf(classHash), function)
}

// --- cheatcodes ---

// Prank makes target observe caller as the caller of all its entry points
// until the prank is cancelled.
func (c *Controller) Prank(caller cheatnet.Address, target cheatnet.Address) {
	c.state.Prank(target, caller)
}

func (c *Controller) CancelPrank(target cheatnet.Address) {
	c.state.CancelPrank(target)
}

// MockCall makes calls to the given function of target return response
// without executing any code.
func (c *Controller) MockCall(target cheatnet.Address, function string, response cheatnet.Calldata) {
	c.state.MockCall(target, cheatnet.SelectorFromName(function), response)
}

func (c *Controller) ClearMockCall(target cheatnet.Address, function string) error {
	if !c.state.ClearMockCall(target, cheatnet.SelectorFromName(function)) {
		return fmt.Errorf("cannot clear mock of %s at %v: %w", function, target, ErrNotMocked)
	}
	return nil
}

// ExpectCall registers a call that must be performed by contract code before
// the test case ends.
func (c *Controller) ExpectCall(contract cheatnet.Address, function string, args Arguments) error {
	calldata, err := c.calldataFor(contract, function, args)
	if err != nil {
		return err
	}
	c.state.ExpectedCalls().Add(state.ExpectedCall{
		Contract: contract,
		Selector: cheatnet.SelectorFromName(function),
		Calldata: calldata,
		Function: function,
	})
	return nil
}

// ExpectEvents registers events that must be emitted, in the given order,
// before the test case ends.
func (c *Controller) ExpectEvents(events ...expect.ExpectedEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expectedEvents = append(c.expectedEvents, events...)
}

// Roll sets the block number observed by target.
func (c *Controller) Roll(target cheatnet.Address, number uint64) {
	c.state.Roll(target, number)
}

// Warp sets the block timestamp observed by target.
func (c *Controller) Warp(target cheatnet.Address, timestamp uint64) {
	c.state.Warp(target, timestamp)
}

// Store writes values into consecutive storage slots of a storage variable of
// target, bypassing its code.
func (c *Controller) Store(target cheatnet.Address, variable string, values cheatnet.Calldata, keys ...cheatnet.Felt) {
	base := cheatnet.StorageVarAddress(variable, keys...)
	for i, value := range values {
		c.state.SetStorageAt(target, cheatnet.StorageKeyOffset(base, uint64(i)), value)
	}
}

// Load reads size consecutive storage slots of a storage variable of target.
func (c *Controller) Load(target cheatnet.Address, variable string, size int, keys ...cheatnet.Felt) (cheatnet.Calldata, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid size %d of storage variable %s", size, variable)
	}
	base := cheatnet.StorageVarAddress(variable, keys...)
	res := make(cheatnet.Calldata, size)
	for i := range res {
		res[i] = c.state.GetStorageAt(target, cheatnet.StorageKeyOffset(base, uint64(i)))
	}
	return res, nil
}

// Teardown checks the expectations registered during the test case. All
// unmet expectations are reported in the returned error.
func (c *Controller) Teardown() error {
	c.mu.Lock()
	events := c.expectedEvents
	c.expectedEvents = nil
	c.mu.Unlock()

	var errs []error
	if err := expect.CheckCalls(c.state.ExpectedCalls()); err != nil {
		errs = append(errs, err)
	}
	if len(events) > 0 {
		if err := expect.CheckEvents(events, c.state.Events()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
