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

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstError_CanBeUsedAsSentinel(t *testing.T) {
	const ErrSomething = ConstError("something went wrong")
	wrapped := fmt.Errorf("context: %w", ErrSomething)
	if !errors.Is(wrapped, ErrSomething) {
		t.Errorf("wrapped error is not recognized")
	}
	if got := ErrSomething.Error(); got != "something went wrong" {
		t.Errorf("unexpected message: %s", got)
	}
}
