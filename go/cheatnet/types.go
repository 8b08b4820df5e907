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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/holiman/uint256"
)

// Felt is an element of the Stark field, stored as 32 big-endian bytes.
// Values produced by this package are always reduced modulo the field prime.
type Felt [32]byte

// Address represents the address of a deployed contract instance.
type Address Felt

// ClassHash identifies the code of a declared contract class. It is shared by
// all instances deployed from that class.
type ClassHash Felt

// Selector is the hashed name of an entry point or an event.
type Selector Felt

// Key addresses a storage slot of a contract.
type Key Felt

// Calldata is the positional argument list passed to an entry point. It is
// also used for return data and event payloads.
type Calldata []Felt

// NewFelt creates a field element from a small integer.
func NewFelt(value uint64) (result Felt) {
	var e fp.Element
	e.SetUint64(value)
	return Felt(e.Bytes())
}

// FeltFromBig converts the given integer into a field element. Negative values
// and values exceeding the field prime are reduced.
func FeltFromBig(value *big.Int) Felt {
	if value == nil {
		return Felt{}
	}
	var e fp.Element
	e.SetBigInt(value)
	return Felt(e.Bytes())
}

// FeltFromBytes interprets the given bytes as a big-endian integer and reduces
// it into the field.
func FeltFromBytes(data []byte) Felt {
	var e fp.Element
	e.SetBytes(data)
	return Felt(e.Bytes())
}

func (f Felt) Big() *big.Int {
	return new(big.Int).SetBytes(f[:])
}

func (f Felt) ToUint256() *uint256.Int {
	return new(uint256.Int).SetBytes32(f[:])
}

func (f Felt) IsZero() bool {
	return f == Felt{}
}

func (f Felt) element() *fp.Element {
	var e fp.Element
	e.SetBytes(f[:])
	return &e
}

func (f Felt) String() string {
	return fmt.Sprintf("0x%x", f.Big())
}

func (f Felt) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Felt) UnmarshalText(data []byte) error {
	value, err := parseFelt(string(data))
	if err != nil {
		return err
	}
	*f = value
	return nil
}

func (a Address) String() string {
	return Felt(a).String()
}

func (a Address) MarshalText() ([]byte, error) {
	return Felt(a).MarshalText()
}

func (a *Address) UnmarshalText(data []byte) error {
	return (*Felt)(a).UnmarshalText(data)
}

func (h ClassHash) String() string {
	return Felt(h).String()
}

func (h ClassHash) MarshalText() ([]byte, error) {
	return Felt(h).MarshalText()
}

func (h *ClassHash) UnmarshalText(data []byte) error {
	return (*Felt)(h).UnmarshalText(data)
}

func (s Selector) String() string {
	return Felt(s).String()
}

func (s Selector) MarshalText() ([]byte, error) {
	return Felt(s).MarshalText()
}

func (s *Selector) UnmarshalText(data []byte) error {
	return (*Felt)(s).UnmarshalText(data)
}

func (k Key) String() string {
	return Felt(k).String()
}

// Equal reports whether both lists hold the same elements in the same order.
// A nil list equals an empty one.
func (c Calldata) Equal(other Calldata) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

func (c Calldata) Clone() Calldata {
	if c == nil {
		return nil
	}
	res := make(Calldata, len(c))
	copy(res, c)
	return res
}

func (c Calldata) String() string {
	parts := make([]string, len(c))
	for i, f := range c {
		parts[i] = f.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseFelt parses a decimal or 0x-prefixed hexadecimal number into a field
// element.
func ParseFelt(s string) (Felt, error) {
	return parseFelt(s)
}

func parseFelt(s string) (Felt, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	value := new(big.Int)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := s[2:]
		if len(digits)%2 == 1 {
			digits = "0" + digits
		}
		data, err := hex.DecodeString(digits)
		if err != nil {
			return Felt{}, fmt.Errorf("invalid hex number %q: %w", s, err)
		}
		value.SetBytes(data)
	} else if _, ok := value.SetString(s, 10); !ok {
		return Felt{}, fmt.Errorf("invalid decimal number %q", s)
	}
	if negative {
		value.Neg(value)
	}
	if value.Cmp(fp.Modulus()) >= 0 {
		return Felt{}, fmt.Errorf("number %v exceeds field prime", s)
	}
	return FeltFromBig(value), nil
}

// EntryPointType distinguishes the kinds of entry points a class may export.
type EntryPointType int

const (
	External EntryPointType = iota
	L1Handler
	Constructor
)

func (t EntryPointType) String() string {
	switch t {
	case External:
		return "EXTERNAL"
	case L1Handler:
		return "L1_HANDLER"
	case Constructor:
		return "CONSTRUCTOR"
	default:
		return fmt.Sprintf("EntryPointType(%d)", t)
	}
}

func (t EntryPointType) MarshalJSON() ([]byte, error) {
	switch t {
	case External, L1Handler, Constructor:
		return json.Marshal(t.String())
	}
	return nil, fmt.Errorf("invalid entry point type: %d", t)
}

func (t *EntryPointType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch strings.ToUpper(name) {
	case "EXTERNAL":
		*t = External
	case "L1_HANDLER":
		*t = L1Handler
	case "CONSTRUCTOR":
		*t = Constructor
	default:
		return fmt.Errorf("unknown entry point type: %s", name)
	}
	return nil
}

// CallType tells whether an entry point runs in the storage context of the
// contract owning the code (Call) or in the context of the calling contract
// (Delegate).
type CallType int

const (
	Call CallType = iota
	Delegate
)

func (t CallType) String() string {
	switch t {
	case Call:
		return "CALL"
	case Delegate:
		return "DELEGATE"
	default:
		return fmt.Sprintf("CallType(%d)", t)
	}
}

// SyscallKind enumerates the system calls through which running code may
// invoke other entry points.
type SyscallKind int

const (
	CallContract SyscallKind = iota
	DelegateCall
	DelegateL1Handler
	LibraryCall
	LibraryCallL1Handler
)

func (k SyscallKind) String() string {
	switch k {
	case CallContract:
		return "call_contract"
	case DelegateCall:
		return "delegate_call"
	case DelegateL1Handler:
		return "delegate_l1_handler"
	case LibraryCall:
		return "library_call"
	case LibraryCallL1Handler:
		return "library_call_l1_handler"
	default:
		return "unknown"
	}
}

func (k SyscallKind) MarshalJSON() ([]byte, error) {
	switch k {
	case CallContract, DelegateCall, DelegateL1Handler, LibraryCall, LibraryCallL1Handler:
		return json.Marshal(k.String())
	}
	return nil, fmt.Errorf("invalid syscall kind: %v", int(k))
}

func (k *SyscallKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, kind := range []SyscallKind{CallContract, DelegateCall, DelegateL1Handler, LibraryCall, LibraryCallL1Handler} {
		if strings.ToLower(name) == kind.String() {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown syscall kind: %s", name)
}

// Event is an event emitted by running contract code.
type Event struct {
	FromAddress Address
	Keys        []Felt
	Data        Calldata
}
