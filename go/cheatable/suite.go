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
	"context"
	"fmt"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/Fantom-foundation/Cheatnet/go/state"
	"golang.org/x/sync/errgroup"
)

// Case is a test case operating on its own overlay state.
type Case struct {
	Name string
	Run  func(*Controller) error
}

type CaseResult struct {
	Name string
	Err  error
}

func (r CaseResult) Passed() bool {
	return r.Err == nil
}

// RunCase runs a single test case on a fresh state and checks the
// expectations it registered once it is done.
func RunCase(engine cheatnet.ExecutionEngine, config Config, test Case) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("test case panicked: %v", r)
		}
	}()
	controller := NewController(state.New(), engine, config)
	if err := test.Run(controller); err != nil {
		return err
	}
	return controller.Teardown()
}

// RunCases runs the given test cases using up to jobs concurrent workers.
// Each case owns an independent state, so the engine is the only component
// shared among them. Results are reported in the order of the cases; the
// optional callback is invoked as soon as a case is done and may be invoked
// concurrently. The returned error
// is only set if the context got cancelled.
func RunCases(
	ctx context.Context,
	engine cheatnet.ExecutionEngine,
	config Config,
	cases []Case,
	jobs int,
	onDone func(CaseResult),
) ([]CaseResult, error) {
	if jobs <= 0 {
		jobs = 1
	}
	results := make([]CaseResult, len(cases))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, test := range cases {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = CaseResult{Name: test.Name, Err: RunCase(engine, config, test)}
			if onDone != nil {
				onDone(results[i])
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
