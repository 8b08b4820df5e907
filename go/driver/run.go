// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/Cheatnet/go/cheatable"
	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/dsnet/golib/unitconv"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var RunCmd = cli.Command{
	Action: doRun,
	Name:   "run",
	Usage:  "Runs the example test cases against an execution engine",
	Flags: []cli.Flag{
		FilterFlag.GetFlag(),
		JobsFlag.GetFlag(),
		ConfigFlag.GetFlag(),
		&cli.IntFlag{
			Name:  "repeat",
			Usage: "number of times each test case is run",
			Value: 1,
		},
	},
}

func doRun(context *cli.Context) error {
	filter, err := FilterFlag.Fetch(context)
	if err != nil {
		return err
	}
	config := cheatable.DefaultConfig()
	if file := ConfigFlag.Fetch(context); file != "" {
		if config, err = cheatable.LoadConfig(file); err != nil {
			return err
		}
	}
	engine, err := cheatnet.NewEngine(config.Engine)
	if err != nil {
		return err
	}

	cases := selectCases(exampleCases(), filter, context.Int("repeat"))
	jobs := JobsFlag.Fetch(context)
	out := context.App.Writer
	fmt.Fprintf(out, "Running %d test cases on engine %s using %d jobs ...\n", len(cases), config.Engine, jobs)

	var done atomic.Int64
	stop := startProgressReporter(time.Second, &done, func(relativeTime time.Duration, rate float64, current int64) {
		fmt.Fprintf(out,
			"[t=%4d:%02d] - Processing ~%s test cases per second, total %d\n",
			int(relativeTime.Seconds())/60, int(relativeTime.Seconds())%60,
			unitconv.FormatPrefix(rate, unitconv.SI, 0), current,
		)
	})
	results, err := cheatable.RunCases(context.Context, engine, config, cases, jobs, func(cheatable.CaseResult) {
		done.Add(1)
	})
	stop()
	if err != nil {
		return err
	}

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	failed := 0
	for _, result := range results {
		if result.Passed() {
			continue
		}
		failed++
		fmt.Fprintf(out, "----------------------------\n%s %s\n%v\n", fail("[FAIL]"), result.Name, result.Err)
	}
	if failed > 0 {
		return fmt.Errorf("failed to pass %d of %d test cases", failed, len(results))
	}
	fmt.Fprintf(out, "%s all %d test cases passed\n", pass("[PASS]"), len(results))
	return nil
}

func selectCases(cases []cheatable.Case, filter *regexp.Regexp, repeat int) []cheatable.Case {
	if repeat < 1 {
		repeat = 1
	}
	res := make([]cheatable.Case, 0, len(cases)*repeat)
	for _, test := range cases {
		if !filter.MatchString(test.Name) {
			continue
		}
		for i := 0; i < repeat; i++ {
			res = append(res, test)
		}
	}
	return res
}

// startProgressReporter periodically reports the number of completed test
// cases until the returned function is called.
func startProgressReporter(
	period time.Duration,
	counter *atomic.Int64,
	report func(relativeTime time.Duration, rate float64, current int64),
) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		start := time.Now()
		lastTime, lastCount := start, int64(0)
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				current := counter.Load()
				rate := float64(current-lastCount) / now.Sub(lastTime).Seconds()
				report(now.Sub(start), rate, current)
				lastTime, lastCount = now, current
			}
		}
	}()
	return func() {
		cancel()
		<-finished
	}
}
