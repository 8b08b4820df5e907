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
	"testing"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
)

func TestRevert_ClassifiesOutcomes(t *testing.T) {
	usageError := errors.New("usage error")
	revert := &cheatnet.RevertError{Type: "Err1", Messages: []string{"foo bar baz"}}

	tests := map[string]struct {
		expected *cheatnet.RevertError
		result   error
		check    func(t *testing.T, err error)
	}{
		"no revert": {
			expected: &cheatnet.RevertError{Messages: []string{"foo"}},
			result:   nil,
			check: func(t *testing.T, err error) {
				var target *ExpectedRevertError
				if !errors.As(err, &target) {
					t.Errorf("expected missing revert error, got %v", err)
				}
			},
		},
		"matching revert": {
			expected: &cheatnet.RevertError{Messages: []string{"foo bar"}},
			result:   revert,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("matching revert should be swallowed, got %v", err)
				}
			},
		},
		"wrapped matching revert": {
			expected: &cheatnet.RevertError{Type: "Err1"},
			result:   errors.Join(errors.New("context"), revert),
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("matching revert should be swallowed, got %v", err)
				}
			},
		},
		"any revert": {
			expected: nil,
			result:   revert,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Errorf("any revert should be accepted, got %v", err)
				}
			},
		},
		"mismatching revert": {
			expected: &cheatnet.RevertError{Type: "Err2"},
			result:   revert,
			check: func(t *testing.T, err error) {
				var target *RevertMismatchError
				if !errors.As(err, &target) {
					t.Fatalf("expected mismatch error, got %v", err)
				}
				if target.Actual != revert || target.Expected.Type != "Err2" {
					t.Errorf("mismatch does not carry expected and actual error")
				}
			},
		},
		"other errors propagate": {
			expected: nil,
			result:   usageError,
			check: func(t *testing.T, err error) {
				if err != usageError {
					t.Errorf("unexpected error: %v", err)
				}
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.check(t, Revert(test.expected, func() error { return test.result }))
		})
	}
}

func TestRevertErrors_Messages(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"unspecified expectation": {
			err:  &ExpectedRevertError{},
			want: "Expected revert",
		},
		"specified expectation": {
			err:  &ExpectedRevertError{Expected: &cheatnet.RevertError{Messages: []string{"x"}}},
			want: "Expected an exception matching the following error:\n[messages]:\n- x",
		},
		"mismatch": {
			err: &RevertMismatchError{
				Expected: &cheatnet.RevertError{Type: "A"},
				Actual:   &cheatnet.RevertError{Type: "B"},
			},
			want: "EXPECTED:\n[type] A\nINSTEAD GOT:\n[type] B",
		},
		"mismatch without expectation": {
			err:  &RevertMismatchError{Actual: &cheatnet.RevertError{Type: "B"}},
			want: "Expected any error\nINSTEAD GOT:\n[type] B",
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := test.err.Error(); got != test.want {
				t.Errorf("unexpected message, wanted\n%s\ngot\n%s", test.want, got)
			}
		})
	}
}
