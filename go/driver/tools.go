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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Fantom-foundation/Cheatnet/go/cheatnet"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var SelectorCmd = cli.Command{
	Action:    doSelector,
	Name:      "selector",
	Usage:     "Computes the selectors of entry point or event names",
	ArgsUsage: "<name>...",
	Flags: []cli.Flag{
		PaddedFlag.GetFlag(),
	},
}

func doSelector(context *cli.Context) error {
	if context.Args().Len() == 0 {
		return fmt.Errorf("missing name")
	}
	padded := PaddedFlag.Fetch(context)
	for _, name := range context.Args().Slice() {
		selector := cheatnet.SelectorFromName(name)
		fmt.Fprintf(context.App.Writer, "%s %s\n", formatFelt(cheatnet.Felt(selector), padded), name)
	}
	return nil
}

var AddressCmd = cli.Command{
	Action:    doAddress,
	Name:      "address",
	Usage:     "Computes the address a contract is deployed at",
	ArgsUsage: "<constructor calldata>...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "class-hash",
			Usage:    "hash of the deployed class",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "salt",
			Usage: "salt of the deployment",
			Value: "0",
		},
		&cli.StringFlag{
			Name:  "deployer",
			Usage: "address of the deploying contract, zero for deployments by the test runner",
			Value: "0",
		},
		PaddedFlag.GetFlag(),
	},
}

func doAddress(context *cli.Context) error {
	classHash, err := parseFeltFlag(context, "class-hash")
	if err != nil {
		return err
	}
	salt, err := parseFeltFlag(context, "salt")
	if err != nil {
		return err
	}
	deployer, err := parseFeltFlag(context, "deployer")
	if err != nil {
		return err
	}
	calldata := make(cheatnet.Calldata, 0, context.Args().Len())
	for _, arg := range context.Args().Slice() {
		value, err := cheatnet.ParseFelt(arg)
		if err != nil {
			return err
		}
		calldata = append(calldata, value)
	}
	address := cheatnet.ContractAddress(salt, cheatnet.ClassHash(classHash), calldata, cheatnet.Address(deployer))
	fmt.Fprintln(context.App.Writer, formatFelt(cheatnet.Felt(address), PaddedFlag.Fetch(context)))
	return nil
}

var CalldataCmd = cli.Command{
	Action: doCalldata,
	Name:   "calldata",
	Usage:  "Transforms named arguments into the calldata of a function",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      "abi",
			Usage:     "JSON file holding the ABI of the contract",
			Required:  true,
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:     "function",
			Usage:    "name of the function, constructor, or L1 handler",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "args",
			Usage: "JSON object mapping input names to values",
			Value: "{}",
		},
		PaddedFlag.GetFlag(),
	},
}

func doCalldata(context *cli.Context) error {
	data, err := os.ReadFile(context.String("abi"))
	if err != nil {
		return err
	}
	abi, err := cheatnet.ParseABI(data)
	if err != nil {
		return err
	}
	args, err := parseArguments(context.String("args"))
	if err != nil {
		return err
	}
	calldata, err := abi.TransformInputs(context.String("function"), args)
	if err != nil {
		return err
	}
	padded := PaddedFlag.Fetch(context)
	for _, value := range calldata {
		fmt.Fprintln(context.App.Writer, formatFelt(value, padded))
	}
	return nil
}

// parseArguments decodes a JSON object of named arguments. Numbers are kept
// as decimal strings to retain their precision.
func parseArguments(text string) (map[string]any, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	var args map[string]any
	if err := decoder.Decode(&args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return normalizeNumbers(args).(map[string]any), nil
}

func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		return v.String()
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}
		return v
	}
	return value
}

func parseFeltFlag(context *cli.Context, name string) (cheatnet.Felt, error) {
	value, err := cheatnet.ParseFelt(context.String(name))
	if err != nil {
		return cheatnet.Felt{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return value, nil
}

func formatFelt(value cheatnet.Felt, padded bool) string {
	if padded {
		return hexutil.Encode(value[:])
	}
	return value.String()
}
