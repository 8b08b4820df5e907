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
	"os"
	"regexp"
	"runtime"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

type filterFlagType struct {
	flag cli.StringFlag
}

var FilterFlag = filterFlagType{flag: cli.StringFlag{
	Name:    "filter",
	Aliases: []string{"f"},
	Usage:   "run only test cases which name matches the given regex",
	Value:   ".*",
}}

func (f *filterFlagType) GetFlag() cli.Flag {
	return &f.flag
}

func (f *filterFlagType) Fetch(context *cli.Context) (*regexp.Regexp, error) {
	return regexp.Compile(context.String(f.flag.Name))
}

type jobsFlagType struct {
	flag cli.IntFlag
}

var JobsFlag = jobsFlagType{cli.IntFlag{
	Name:    "jobs",
	Aliases: []string{"j"},
	Usage:   "number of test cases run simultaneously",
	Value:   runtime.NumCPU(),
}}

func (f *jobsFlagType) GetFlag() cli.Flag {
	return &f.flag
}

func (f *jobsFlagType) Fetch(context *cli.Context) int {
	if jobs := context.Int(f.flag.Name); jobs > 0 {
		return jobs
	}
	return runtime.NumCPU()
}

type configFlagType struct {
	flag cli.StringFlag
}

var ConfigFlag = configFlagType{cli.StringFlag{
	Name:      "config",
	Usage:     "TOML file overriding the default execution environment",
	TakesFile: true,
}}

func (f *configFlagType) GetFlag() cli.Flag {
	return &f.flag
}

func (f *configFlagType) Fetch(context *cli.Context) string {
	return context.String(f.flag.Name)
}

type verbosityFlagType struct {
	flag cli.IntFlag
}

var VerbosityFlag = verbosityFlagType{cli.IntFlag{
	Name:  "verbosity",
	Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
	Value: 2,
}}

func (f *verbosityFlagType) GetFlag() cli.Flag {
	return &f.flag
}

func (f *verbosityFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.flag.Name)
}

type noColorFlagType struct {
	flag cli.BoolFlag
}

var NoColorFlag = noColorFlagType{cli.BoolFlag{
	Name:  "no-color",
	Usage: "disable colored reports",
}}

func (f *noColorFlagType) GetFlag() cli.Flag {
	return &f.flag
}

func (f *noColorFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.flag.Name)
}

type paddedFlagType struct {
	flag cli.BoolFlag
}

var PaddedFlag = paddedFlagType{cli.BoolFlag{
	Name:  "padded",
	Usage: "print field elements as 32 byte hex strings",
}}

func (f *paddedFlagType) GetFlag() cli.Flag {
	return &f.flag
}

func (f *paddedFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.flag.Name)
}

func setupLogging(verbosity int) {
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(verbosity), true)
	log.SetDefault(log.NewLogger(handler))
}
