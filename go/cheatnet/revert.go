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
	"fmt"
	"regexp"
	"strings"
)

// Error types reported by the execution layer for common failures.
const (
	ErrTypeUninitializedContract = "UNINITIALIZED_CONTRACT"
	ErrTypeUndeclaredClass       = "UNDECLARED_CLASS"
	ErrTypeEntryPointNotFound    = "ENTRY_POINT_NOT_FOUND_IN_CONTRACT"
	ErrTypeCallDepthExceeded     = "CALL_DEPTH_EXCEEDED"
	ErrTypeTransactionFailed     = "TRANSACTION_FAILED"
)

// RevertError is the failure of contract code. An empty Type means the type
// is unspecified. Messages are ordered from the innermost to the outermost
// frame. Code and Details are optional diagnostics attached by the engine.
type RevertError struct {
	Type     string
	Messages []string
	Code     int
	Details  string
}

// NewRevertError creates a revert of the given type carrying the given messages.
func NewRevertError(errorType string, messages ...string) *RevertError {
	return &RevertError{Type: errorType, Messages: messages}
}

func (e *RevertError) Error() string {
	lines := make([]string, 0, len(e.Messages)+3)
	if e.Type != "" {
		lines = append(lines, "[type] "+e.Type)
	}
	if e.Code != 0 {
		lines = append(lines, fmt.Sprintf("[code] %d", e.Code))
	}
	if len(e.Messages) > 0 {
		lines = append(lines, "[messages]:")
		for _, msg := range e.Messages {
			lines = append(lines, "- "+msg)
		}
	}
	if e.Details != "" {
		lines = append(lines, "[details]:", e.Details)
	}
	if len(lines) == 0 {
		return "reverted"
	}
	return strings.Join(lines, "\n")
}

// Match reports whether other satisfies e when e is used as a pattern: the
// types must be equal unless e leaves its type unspecified, and each message
// of e must be a substring of at least one message of other.
func (e *RevertError) Match(other *RevertError) bool {
	if other == nil {
		return false
	}
	if e.Type != "" && e.Type != other.Type {
		return false
	}
	for _, pattern := range e.Messages {
		if !canPatternBeFound(pattern, other.Messages) {
			return false
		}
	}
	return true
}

func canPatternBeFound(pattern string, messages []string) bool {
	for _, msg := range messages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

var errorMessagePattern = regexp.MustCompile(`Error message: (.*)`)

// ExtractErrorMessages collects the user-facing messages embedded in an
// engine error trace, innermost first.
func ExtractErrorMessages(trace string) []string {
	matches := errorMessagePattern.FindAllStringSubmatch(trace, -1)
	res := make([]string, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		res = append(res, matches[i][1])
	}
	return res
}
