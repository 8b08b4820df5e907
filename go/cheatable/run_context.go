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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/state"
	"github.com/ethereum/go-ethereum/log"
)

// executor runs a single top-level entry point invocation, including all
// nested calls and deployments, on one overlay state. Contract code cannot
// recover from failed calls: the first failure of any nested call is the
// failure of the whole execution, even if the code ignores it.
type executor struct {
	state       *state.OverlayState
	engine      cheatnet.ExecutionEngine
	interceptor cheatnet.CallInterceptor
	config      Config
	logger      log.Logger

	events  []cheatnet.Event
	failure error
}

func newExecutor(s *state.OverlayState, engine cheatnet.ExecutionEngine, config Config, logger log.Logger) *executor {
	return &executor{
		state:       s,
		engine:      engine,
		interceptor: newInterceptor(s, logger),
		config:      config,
		logger:      logger,
	}
}

func (e *executor) fail(err error) error {
	if e.failure == nil {
		e.failure = err
	}
	return e.failure
}

func (e *executor) execute(call cheatnet.EntryPointCall, depth int) (cheatnet.Calldata, error) {
	if depth > e.config.MaxCallDepth {
		return nil, e.fail(cheatnet.NewRevertError(cheatnet.ErrTypeCallDepthExceeded,
			fmt.Sprintf("Maximum call depth of %d exceeded.", e.config.MaxCallDepth)))
	}
	class, err := e.resolveClass(call)
	if err != nil {
		return nil, e.fail(err)
	}
	if !class.HasEntryPoint(call.EntryPointType, call.Selector) {
		return nil, e.fail(cheatnet.NewRevertError(cheatnet.ErrTypeEntryPointNotFound,
			fmt.Sprintf("Entry point %v of type %v not found in contract with address %v.",
				call.Selector, call.EntryPointType, call.ContractAddress)))
	}

	e.logger.Trace("Executing entry point",
		"contract", call.ContractAddress, "selector", call.Selector,
		"type", call.EntryPointType, "call", call.CallType, "depth", depth)

	context := &runContext{executor: e, call: call, depth: depth}
	result, err := e.engine.Execute(class, call, context)
	if e.failure != nil {
		return nil, e.failure
	}
	if err != nil {
		return nil, e.fail(err)
	}
	return result, nil
}

func (e *executor) resolveClass(call cheatnet.EntryPointCall) (*cheatnet.ContractClass, error) {
	classHash := call.ClassHash
	if classHash == (cheatnet.ClassHash{}) {
		classHash = e.state.GetClassHashAt(call.CodeAddress)
		if classHash == (cheatnet.ClassHash{}) {
			return nil, cheatnet.NewRevertError(cheatnet.ErrTypeUninitializedContract,
				fmt.Sprintf("Requested contract address %v is not deployed.", call.CodeAddress))
		}
	}
	class, found := e.state.GetContractClass(classHash)
	if !found {
		return nil, cheatnet.NewRevertError(cheatnet.ErrTypeUndeclaredClass,
			fmt.Sprintf("Class with hash %v is not declared.", classHash))
	}
	return class, nil
}

// deploy associates the given address with a class and runs its constructor.
func (e *executor) deploy(
	address cheatnet.Address,
	classHash cheatnet.ClassHash,
	calldata cheatnet.Calldata,
	caller cheatnet.Address,
	depth int,
) error {
	if err := e.state.DeployContract(address, classHash); err != nil {
		if errors.Is(err, state.ErrClassNotDeclared) {
			err = cheatnet.NewRevertError(cheatnet.ErrTypeUndeclaredClass,
				fmt.Sprintf("Class with hash %v is not declared.", classHash))
		} else {
			err = fmt.Errorf("cannot deploy contract at %v: %w", address, err)
		}
		return e.fail(err)
	}

	class, _ := e.state.GetContractClass(classHash)
	if class.NumEntryPoints(cheatnet.Constructor) == 0 {
		if len(calldata) > 0 {
			return e.fail(&ConstructorInvocationError{Contract: address})
		}
		e.logger.Debug("Deployed contract", "address", address, "class", classHash)
		return nil
	}

	_, err := e.execute(cheatnet.EntryPointCall{
		ContractAddress: address,
		CodeAddress:     address,
		ClassHash:       classHash,
		Selector:        cheatnet.ConstructorSelector,
		Calldata:        calldata,
		CallerAddress:   caller,
		EntryPointType:  cheatnet.Constructor,
		CallType:        cheatnet.Delegate,
	}, depth)
	if err != nil {
		return err
	}
	e.logger.Debug("Deployed contract", "address", address, "class", classHash)
	return nil
}

// runContext is the RunContext of a single call frame.
type runContext struct {
	executor *executor
	call     cheatnet.EntryPointCall
	depth    int
}

func (r *runContext) CallerAddress() cheatnet.Address {
	return r.executor.interceptor.ResolveCaller(r.call.ContractAddress, r.call.CallerAddress)
}

func (r *runContext) ContractAddress() cheatnet.Address {
	return r.call.ContractAddress
}

func (r *runContext) BlockNumber() uint64 {
	if number, found := r.executor.state.BlockNumber(r.call.ContractAddress); found {
		return number
	}
	return r.executor.config.BlockNumber
}

func (r *runContext) BlockTimestamp() uint64 {
	if timestamp, found := r.executor.state.BlockTimestamp(r.call.ContractAddress); found {
		return timestamp
	}
	return r.executor.config.BlockTimestamp
}

func (r *runContext) StorageRead(key cheatnet.Key) cheatnet.Felt {
	return r.executor.state.GetStorageAt(r.call.ContractAddress, key)
}

func (r *runContext) StorageWrite(key cheatnet.Key, value cheatnet.Felt) {
	r.executor.state.SetStorageAt(r.call.ContractAddress, key, value)
}

func (r *runContext) EmitEvent(keys []cheatnet.Felt, data cheatnet.Calldata) {
	r.executor.events = append(r.executor.events, cheatnet.Event{
		FromAddress: r.call.ContractAddress,
		Keys:        append([]cheatnet.Felt(nil), keys...),
		Data:        data.Clone(),
	})
}

func (r *runContext) Call(kind cheatnet.SyscallKind, request cheatnet.CallRequest) (cheatnet.Calldata, error) {
	call, err := r.route(kind, request)
	if err != nil {
		return nil, r.executor.fail(err)
	}
	if response, mocked := r.executor.interceptor.BeforeDispatch(kind, call); mocked {
		return response, nil
	}
	return r.executor.execute(call, r.depth+1)
}

// route derives the entry point to be executed by a call system call. Plain
// calls run the code of the target in the target's storage context. All
// other kinds run foreign code in the storage context of the current
// contract, on behalf of the current caller.
func (r *runContext) route(kind cheatnet.SyscallKind, request cheatnet.CallRequest) (cheatnet.EntryPointCall, error) {
	call := cheatnet.EntryPointCall{
		ContractAddress: r.call.ContractAddress,
		Selector:        request.Selector,
		Calldata:        request.Calldata.Clone(),
		CallerAddress:   r.call.CallerAddress,
		EntryPointType:  cheatnet.External,
		CallType:        cheatnet.Delegate,
	}
	switch kind {
	case cheatnet.CallContract:
		call.ContractAddress = request.ContractAddress
		call.CodeAddress = request.ContractAddress
		call.CallerAddress = r.call.ContractAddress
		call.CallType = cheatnet.Call
	case cheatnet.DelegateCall:
		call.CodeAddress = request.ContractAddress
	case cheatnet.DelegateL1Handler:
		call.CodeAddress = request.ContractAddress
		call.EntryPointType = cheatnet.L1Handler
	case cheatnet.LibraryCall:
		call.ClassHash = request.ClassHash
	case cheatnet.LibraryCallL1Handler:
		call.ClassHash = request.ClassHash
		call.EntryPointType = cheatnet.L1Handler
	default:
		return cheatnet.EntryPointCall{}, fmt.Errorf("unsupported system call kind %v", kind)
	}
	return call, nil
}

var one = cheatnet.NewFelt(1)

func (r *runContext) Deploy(request cheatnet.DeployRequest) (cheatnet.Address, error) {
	var deployer cheatnet.Address
	switch {
	case request.DeployFromZero.IsZero():
		deployer = r.call.ContractAddress
	case request.DeployFromZero == one:
		// deployed as if by address zero
	default:
		return cheatnet.Address{}, r.executor.fail(&DeployFlagError{Value: request.DeployFromZero})
	}

	address := cheatnet.ContractAddress(request.Salt, request.ClassHash, request.ConstructorCalldata, deployer)
	r.executor.interceptor.BeforeDeploy(address, request.ClassHash)
	if err := r.executor.deploy(address, request.ClassHash, request.ConstructorCalldata.Clone(), r.call.ContractAddress, r.depth+1); err != nil {
		return cheatnet.Address{}, err
	}
	return address, nil
}
