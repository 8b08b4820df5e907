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
	"math/big"
	"reflect"
	"sort"
	"strings"

	"github.com/holiman/uint256"
)

// TransformationError is reported when named arguments do not match the
// inputs a function declares in its ABI.
type TransformationError struct {
	Function string
	Detail   string
}

func (e *TransformationError) Error() string {
	return fmt.Sprintf("invalid arguments for function %s: %s", e.Function, e.Detail)
}

// TransformInputs converts arguments keyed by the input names of the given
// function into positional calldata. Arrays declared as a `x_len: felt`,
// `x: felt*` pair are passed as a single list under the name `x`; the length
// is derived. Structs are passed as maps keyed by member names. A Uint256 may
// also be passed as a single number, which is split into its low and high
// 128-bit halves.
func (a ABI) TransformInputs(function string, args map[string]any) (Calldata, error) {
	entry, found := a.Callable(function)
	if !found {
		return nil, &TransformationError{function, "function not found in ABI"}
	}
	t := transformer{structs: a.structs()}

	implicit := map[int]bool{}
	for i, input := range entry.Inputs {
		if i > 0 && strings.HasSuffix(input.Type, "*") && entry.Inputs[i-1].Name == input.Name+"_len" {
			implicit[i-1] = true
		}
	}

	used := map[string]bool{}
	res := Calldata{}
	for i, input := range entry.Inputs {
		if implicit[i] {
			continue
		}
		value, present := args[input.Name]
		if !present {
			return nil, &TransformationError{function, fmt.Sprintf("missing argument %q", input.Name)}
		}
		used[input.Name] = true
		encoded, err := t.encode(input.Type, value, input.Name)
		if err != nil {
			return nil, &TransformationError{function, err.Error()}
		}
		res = append(res, encoded...)
	}

	if len(used) != len(args) {
		unexpected := make([]string, 0, len(args)-len(used))
		for name := range args {
			if !used[name] {
				unexpected = append(unexpected, name)
			}
		}
		sort.Strings(unexpected)
		return nil, &TransformationError{function, fmt.Sprintf("unexpected arguments %s", strings.Join(unexpected, ", "))}
	}
	return res, nil
}

type transformer struct {
	structs map[string]ABIEntry
}

func (t transformer) encode(typ string, value any, path string) (Calldata, error) {
	typ = strings.TrimSpace(typ)
	switch {
	case typ == "felt" || typ == "core::felt252":
		f, err := toFelt(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return Calldata{f}, nil

	case strings.HasSuffix(typ, "*"):
		elemType := strings.TrimSuffix(typ, "*")
		items, ok := asList(value)
		if !ok {
			return nil, fmt.Errorf("%s: expected a list for type %s, got %T", path, typ, value)
		}
		res := Calldata{NewFelt(uint64(len(items)))}
		for i, item := range items {
			encoded, err := t.encode(elemType, item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			res = append(res, encoded...)
		}
		return res, nil

	case strings.HasPrefix(typ, "(") && strings.HasSuffix(typ, ")"):
		members := splitTuple(typ[1 : len(typ)-1])
		items, ok := asList(value)
		if !ok {
			return nil, fmt.Errorf("%s: expected a list for tuple %s, got %T", path, typ, value)
		}
		if len(items) != len(members) {
			return nil, fmt.Errorf("%s: tuple %s expects %d elements, got %d", path, typ, len(members), len(items))
		}
		res := Calldata{}
		for i, member := range members {
			if _, memberType, named := strings.Cut(member, ":"); named {
				member = memberType
			}
			encoded, err := t.encode(member, items[i], fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			res = append(res, encoded...)
		}
		return res, nil
	}

	definition, found := t.structs[typ]
	if !found {
		return nil, fmt.Errorf("%s: unknown type %s", path, typ)
	}
	fields, ok := value.(map[string]any)
	if !ok {
		if typ == "Uint256" {
			return splitUint256(value, path)
		}
		return nil, fmt.Errorf("%s: expected a map for struct %s, got %T", path, typ, value)
	}
	if len(fields) != len(definition.Members) {
		return nil, fmt.Errorf("%s: struct %s has %d members, got %d", path, typ, len(definition.Members), len(fields))
	}
	members := make([]ABIMember, len(definition.Members))
	copy(members, definition.Members)
	sort.SliceStable(members, func(i, j int) bool {
		return offsetOf(members[i]) < offsetOf(members[j])
	})
	res := Calldata{}
	for _, member := range members {
		field, present := fields[member.Name]
		if !present {
			return nil, fmt.Errorf("%s: missing member %q of struct %s", path, member.Name, typ)
		}
		encoded, err := t.encode(member.Type, field, path+"."+member.Name)
		if err != nil {
			return nil, err
		}
		res = append(res, encoded...)
	}
	return res, nil
}

func offsetOf(member ABIMember) int {
	if member.Offset == nil {
		return 0
	}
	return *member.Offset
}

func splitTuple(s string) []string {
	var res []string
	depth, start := 0, 0
	for i, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				res = append(res, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		res = append(res, rest)
	}
	return res
}

func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case Calldata:
		res := make([]any, len(v))
		for i := range v {
			res[i] = v[i]
		}
		return res, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	res := make([]any, rv.Len())
	for i := range res {
		res[i] = rv.Index(i).Interface()
	}
	return res, true
}

var uint128Mask = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

func splitUint256(value any, path string) (Calldata, error) {
	number, err := toUint256(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	low := new(uint256.Int).And(number, uint128Mask)
	high := new(uint256.Int).Rsh(number, 128)
	return Calldata{FeltFromBig(low.ToBig()), FeltFromBig(high.ToBig())}, nil
}

func toUint256(value any) (*uint256.Int, error) {
	switch v := value.(type) {
	case *uint256.Int:
		return new(uint256.Int).Set(v), nil
	case uint256.Int:
		return new(uint256.Int).Set(&v), nil
	case string:
		if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
			number, ok := new(big.Int).SetString(v[2:], 16)
			if !ok {
				return nil, fmt.Errorf("invalid hex number %q", v)
			}
			return fromBig(number)
		}
		return uint256.FromDecimal(v)
	}
	number, err := toBig(value)
	if err != nil {
		return nil, err
	}
	return fromBig(number)
}

func fromBig(number *big.Int) (*uint256.Int, error) {
	if number.Sign() < 0 {
		return nil, fmt.Errorf("negative value %v for unsigned type", number)
	}
	res, overflow := uint256.FromBig(number)
	if overflow {
		return nil, fmt.Errorf("value %v exceeds 256 bits", number)
	}
	return res, nil
}

func toFelt(value any) (Felt, error) {
	switch v := value.(type) {
	case Felt:
		return v, nil
	case Address:
		return Felt(v), nil
	case ClassHash:
		return Felt(v), nil
	case Selector:
		return Felt(v), nil
	case Key:
		return Felt(v), nil
	case string:
		return parseFelt(v)
	}
	number, err := toBig(value)
	if err != nil {
		return Felt{}, err
	}
	return FeltFromBig(number), nil
}

func toBig(value any) (*big.Int, error) {
	switch v := value.(type) {
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case bool:
		if v {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil number")
		}
		return new(big.Int).Set(v), nil
	case *uint256.Int:
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	}
	return nil, fmt.Errorf("unsupported value %v of type %T", value, value)
}
