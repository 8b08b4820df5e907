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
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/state"
)

const (
	ErrUnknownContract = cheatnet.ConstError("no class is associated with the contract address")
	ErrMissingABI      = cheatnet.ConstError("class has no ABI to transform named arguments")
	ErrNotMocked       = cheatnet.ConstError("entry point has not been mocked")

	ErrContractAlreadyDeployed = state.ErrContractAlreadyDeployed
)

// DeclareError is reported if a class could not be declared.
type DeclareError struct {
	ClassHash cheatnet.ClassHash
	Err       error
}

func (e *DeclareError) Error() string {
	return fmt.Sprintf("failed to declare class %v: %v", e.ClassHash, e.Err)
}

func (e *DeclareError) Unwrap() error {
	return e.Err
}

// ConstructorInvocationError is reported if constructor calldata is provided
// for a class without constructor.
type ConstructorInvocationError struct {
	Contract cheatnet.Address
}

func (e *ConstructorInvocationError) Error() string {
	return "Tried to deploy a contract with constructor calldata, but no constructor was found."
}

// DeployFlagError is reported by the deploy system call if its
// deploy_from_zero flag is neither 0 nor 1.
type DeployFlagError struct {
	Value cheatnet.Felt
}

func (e *DeployFlagError) Error() string {
	return fmt.Sprintf("invalid deploy_from_zero value %v, expected 0 or 1", e.Value)
}
