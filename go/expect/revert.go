// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package expect

import (
	"errors"
	"strings"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

// ExpectedRevertError is reported if an execution expected to revert
// completed successfully.
type ExpectedRevertError struct {
	Expected *cheatnet.RevertError
}

func (e *ExpectedRevertError) Error() string {
	if e.Expected == nil || (e.Expected.Type == "" && len(e.Expected.Messages) == 0) {
		return "Expected revert"
	}
	return "Expected an exception matching the following error:\n" + e.Expected.Error()
}

// RevertMismatchError is reported if an execution reverted with an error
// other than the expected one.
type RevertMismatchError struct {
	Expected *cheatnet.RevertError
	Actual   *cheatnet.RevertError
}

func (e *RevertMismatchError) Error() string {
	lines := make([]string, 0, 4)
	if e.Expected != nil {
		lines = append(lines, "EXPECTED:", e.Expected.Error())
	} else {
		lines = append(lines, "Expected any error")
	}
	if e.Actual != nil {
		lines = append(lines, "INSTEAD GOT:", e.Actual.Error())
	} else {
		lines = append(lines, "instead got nothing")
	}
	return strings.Join(lines, "\n")
}

// Revert runs the given function and checks that it fails with a revert
// matching expected. A nil expectation accepts any revert. Matching reverts
// are swallowed. Errors that are not reverts are returned unchanged.
func Revert(expected *cheatnet.RevertError, run func() error) error {
	err := run()
	if err == nil {
		return &ExpectedRevertError{Expected: expected}
	}
	var revert *cheatnet.RevertError
	if !errors.As(err, &revert) {
		return err
	}
	if expected == nil || expected.Match(revert) {
		return nil
	}
	return &RevertMismatchError{Expected: expected, Actual: revert}
}
