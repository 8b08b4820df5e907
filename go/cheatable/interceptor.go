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
	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/state"
	"github.com/ethereum/go-ethereum/log"
)

// interceptor applies the pranks, mocks, and call expectations installed in
// an overlay state to the system calls of running contracts.
type interceptor struct {
	state  *state.OverlayState
	logger log.Logger
}

func newInterceptor(s *state.OverlayState, logger log.Logger) *interceptor {
	return &interceptor{state: s, logger: logger}
}

func (i *interceptor) ResolveCaller(contract cheatnet.Address, caller cheatnet.Address) cheatnet.Address {
	if pranked, found := i.state.PrankedCaller(contract); found {
		return pranked
	}
	return caller
}

func (i *interceptor) BeforeDispatch(kind cheatnet.SyscallKind, call cheatnet.EntryPointCall) (cheatnet.Calldata, bool) {
	if kind == cheatnet.CallContract {
		if response, found := i.state.MockedResponse(call.ContractAddress, call.Selector); found {
			i.logger.Debug("Mocked call", "contract", call.ContractAddress, "selector", call.Selector, "response", response)
			return response, true
		}
	}
	if i.state.ExpectedCalls().Fulfill(call.ContractAddress, call.Selector, call.Calldata) {
		i.logger.Debug("Fulfilled expected call", "contract", call.ContractAddress, "selector", call.Selector)
	}
	return nil, false
}

func (i *interceptor) BeforeDeploy(address cheatnet.Address, classHash cheatnet.ClassHash) {
	i.state.SetPrepared(address, classHash)
}
