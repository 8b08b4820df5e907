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
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// Config holds the parameters of the execution environment test cases are
// run in.
type Config struct {
	// Engine is the name of the registered execution engine to be used.
	Engine string

	// BlockNumber and BlockTimestamp are reported to contracts for which no
	// block information was set through Roll or Warp.
	BlockNumber    uint64
	BlockTimestamp uint64

	// MaxCallDepth limits the nesting of calls. Deeper calls fail with a
	// CALL_DEPTH_EXCEEDED revert.
	MaxCallDepth int
}

func DefaultConfig() Config {
	return Config{
		Engine:         "scripted",
		BlockNumber:    0,
		BlockTimestamp: 0,
		MaxCallDepth:   1024,
	}
}

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfig reads a TOML configuration file. Values not present in the
// file keep their defaults.
func LoadConfig(file string) (Config, error) {
	config := DefaultConfig()
	f, err := os.Open(file)
	if err != nil {
		return config, err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&config)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err == nil && config.MaxCallDepth <= 0 {
		err = fmt.Errorf("%s: MaxCallDepth must be positive, got %d", file, config.MaxCallDepth)
	}
	return config, err
}
