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
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/state"
	"github.com/fatih/color"
)

// ExpectedEvent describes an event that must be emitted. The name is always
// compared; the emitting contract and the event data only if set.
type ExpectedEvent struct {
	Name string
	From *cheatnet.Address
	Data *cheatnet.Calldata
}

// Event creates an expectation for an event with the given name.
func Event(name string) ExpectedEvent {
	return ExpectedEvent{Name: name}
}

// WithFrom restricts the expectation to events emitted by the given contract.
func (e ExpectedEvent) WithFrom(address cheatnet.Address) ExpectedEvent {
	e.From = &address
	return e
}

// WithData restricts the expectation to events carrying exactly the given
// data.
func (e ExpectedEvent) WithData(data ...cheatnet.Felt) ExpectedEvent {
	values := cheatnet.Calldata(data).Clone()
	if values == nil {
		values = cheatnet.Calldata{}
	}
	e.Data = &values
	return e
}

// Matches reports whether the given emitted event satisfies this expectation.
func (e ExpectedEvent) Matches(event state.EmittedEvent) bool {
	if e.Name != event.Name {
		return false
	}
	if e.From != nil && *e.From != event.From {
		return false
	}
	if e.Data != nil && !e.Data.Equal(event.Data) {
		return false
	}
	return true
}

func (e ExpectedEvent) String() string {
	parts := []string{fmt.Sprintf("\"name\": \"%s\"", e.Name)}
	if e.Data != nil {
		parts = append(parts, fmt.Sprintf("\"data\": %v", *e.Data))
	}
	if e.From != nil {
		parts = append(parts, fmt.Sprintf("\"from_address\": %v", *e.From))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MatchResult classifies an emitted event with respect to a list of
// expectations.
type MatchResult int

const (
	Match MatchResult = iota
	Skipped
)

func (r MatchResult) String() string {
	switch r {
	case Match:
		return "pass"
	case Skipped:
		return "skip"
	default:
		return fmt.Sprintf("MatchResult(%d)", r)
	}
}

// EventMatch is the classification of a single emitted event. Expected is
// only set for matched events.
type EventMatch struct {
	Result   MatchResult
	Expected *ExpectedEvent
	Emitted  state.EmittedEvent
}

// MatchEvents walks the emitted events once, in emission order. An emitted
// event matching the next unmatched expectation is classified as Match and
// advances to the following expectation; any other event is Skipped. The
// expectations left unmatched at the end are returned as missing.
func MatchEvents(expected []ExpectedEvent, emitted []state.EmittedEvent) (matches []EventMatch, missing []ExpectedEvent) {
	matches = make([]EventMatch, 0, len(emitted))
	next := 0
	for _, event := range emitted {
		if next < len(expected) && expected[next].Matches(event) {
			matches = append(matches, EventMatch{Result: Match, Expected: &expected[next], Emitted: event})
			next++
			continue
		}
		matches = append(matches, EventMatch{Result: Skipped, Emitted: event})
	}
	return matches, expected[next:]
}

// CheckEvents verifies that the expected events occur in the given order
// among the emitted events. Unrelated events in between are ignored.
func CheckEvents(expected []ExpectedEvent, emitted []state.EmittedEvent) error {
	matches, missing := MatchEvents(expected, emitted)
	if len(missing) == 0 {
		return nil
	}
	return &EventMismatchError{Matches: matches, Missing: missing}
}

// EventMismatchError reports expected events that were not emitted. The
// message lists all emitted events with their classification followed by
// the missing events.
type EventMismatchError struct {
	Matches []EventMatch
	Missing []ExpectedEvent
}

const linePrefix = "  "

var (
	gray  = color.New(color.FgHiBlack).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

func (e *EventMismatchError) Error() string {
	lines := make([]string, 0, 2*len(e.Matches)+len(e.Missing))
	for _, match := range e.Matches {
		if match.Result == Match {
			lines = append(lines,
				fmt.Sprintf("%s[%s] %v", linePrefix, green("pass"), *match.Expected),
				gray(linePrefix+"       "+emittedEventString(match.Emitted)),
			)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", linePrefix, gray("skip"), gray(emittedEventString(match.Emitted))))
	}
	for _, event := range e.Missing {
		lines = append(lines, fmt.Sprintf("%s[%s] %v", linePrefix, red("miss"), event))
	}
	return strings.Join(lines, "\n")
}

func emittedEventString(event state.EmittedEvent) string {
	return fmt.Sprintf("{\"name\": \"%s\", \"data\": %v, \"from_address\": %v}", event.Name, event.Data, event.From)
}
