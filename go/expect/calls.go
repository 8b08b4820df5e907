// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package expect implements the checks of expectations test code states
// about the executions it triggers: calls that must happen, events that
// must be emitted, and errors that must be raised.
package expect

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/state"
)

// ExpectedCallError reports a call expectation that was never fulfilled.
type ExpectedCallError struct {
	Call state.ExpectedCall
}

func (e *ExpectedCallError) Error() string {
	function := e.Call.Function
	if function == "" {
		function = e.Call.Selector.String()
	}
	return fmt.Sprintf(
		"expected call to function %s from the contract of address %v with calldata %v not fulfilled.",
		function, e.Call.Contract, e.Call.Calldata,
	)
}

// CheckCalls returns an error for each pending call expectation, joined into
// a single error. It returns nil if all expectations are fulfilled.
func CheckCalls(calls *state.ExpectedCalls) error {
	pending := calls.Pending()
	errs := make([]error, 0, len(pending))
	for _, call := range pending {
		errs = append(errs, &ExpectedCallError{Call: call})
	}
	return errors.Join(errs...)
}
