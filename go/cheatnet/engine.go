// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cheatnet

//go:generate mockgen -source engine.go -destination engine_mock.go -package cheatnet

// ExecutionEngine is a component capable of running the code of a contract
// class. It is the VM part of a Starknet implementation; recursive calls,
// deployments, storage, and events are handled through the RunContext passed
// to each execution.
type ExecutionEngine interface {
	// Execute runs the entry point described by call using the code of the
	// given class and returns the produced return data. The resulting error
	// is a *RevertError whenever the contract code failed. Other errors
	// indicate a problem within the engine itself.
	Execute(class *ContractClass, call EntryPointCall, context RunContext) (Calldata, error)
}

// EntryPointCall summarizes the parameters of an entry point invocation.
type EntryPointCall struct {
	// ContractAddress is the contract whose storage is accessed.
	ContractAddress Address
	// CodeAddress is the contract whose code is executed. It differs from
	// ContractAddress for delegate calls and is zero for library calls.
	CodeAddress    Address
	ClassHash      ClassHash // < set for library calls and constructors
	Selector       Selector
	Calldata       Calldata
	CallerAddress  Address
	EntryPointType EntryPointType
	CallType       CallType
}

// CallRequest is the input of a call system call issued by running code.
type CallRequest struct {
	ContractAddress Address   // < not relevant for library calls
	ClassHash       ClassHash // < only relevant for library calls
	Selector        Selector
	Calldata        Calldata
}

// DeployRequest is the input of a deploy system call issued by running code.
type DeployRequest struct {
	ClassHash           ClassHash
	Salt                Felt
	ConstructorCalldata Calldata
	DeployFromZero      Felt // < must be 0 or 1
}

// RunContext provides the system calls available to code executed by an
// ExecutionEngine. A RunContext is bound to a single call frame.
type RunContext interface {
	// CallerAddress returns the address of the caller of the current frame
	// as observed by the running contract.
	CallerAddress() Address
	ContractAddress() Address

	BlockNumber() uint64
	BlockTimestamp() uint64

	StorageRead(Key) Felt
	StorageWrite(Key, Felt)

	EmitEvent(keys []Felt, data Calldata)

	Call(kind SyscallKind, request CallRequest) (Calldata, error)
	Deploy(request DeployRequest) (Address, error)
}

// CallInterceptor is consulted by a RunContext at the points where test code
// may alter the outcome of system calls.
type CallInterceptor interface {
	// ResolveCaller returns the caller address to be reported to the given
	// contract, which was actually called by caller.
	ResolveCaller(contract Address, caller Address) Address

	// BeforeDispatch is invoked for every call system call after the call
	// has been routed, before the targeted entry point is executed. If the
	// second result is true, the call is not executed and the returned data
	// is used as its result.
	BeforeDispatch(kind SyscallKind, call EntryPointCall) (Calldata, bool)

	// BeforeDeploy is invoked once the address of a contract to be deployed
	// by a deploy system call is known.
	BeforeDeploy(address Address, classHash ClassHash)
}

// WorldState provides access to the declared classes, the deployed contracts,
// and the contract storage of a chain.
type WorldState interface {
	GetClassHashAt(Address) ClassHash // < zero if no contract is deployed
	GetContractClass(ClassHash) (*ContractClass, bool)

	GetStorageAt(Address, Key) Felt
	SetStorageAt(Address, Key, Felt)
}
