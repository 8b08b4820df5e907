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
	"math/big"
	"testing"

	"pgregory.net/rand"
)

func TestSelectorFromName_MatchesKnownSelectors(t *testing.T) {
	tests := map[string]string{
		"transfer":     "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e",
		"__execute__":  "0x15d40a3d6ca2ac30f4031e42be28da9b056fef9bb7357ac5e85627ee876e5ad",
		"__validate__": "0x162da33a4585851fe8d3af3c2a9c60b557814e221e0d4f30ff0b2189d9c7775",
		"constructor":  "0x28ffe4ff0f226a9107253e17a904099aa4f63a02a5621de0576e5aa71bc5194",
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			if got := SelectorFromName(name).String(); got != want {
				t.Errorf("unexpected selector, wanted %s, got %s", want, got)
			}
			// the second lookup is served by the cache
			if got := SelectorFromName(name).String(); got != want {
				t.Errorf("unexpected cached selector, wanted %s, got %s", want, got)
			}
		})
	}
	if ConstructorSelector != SelectorFromName("constructor") {
		t.Errorf("constructor selector is inconsistent")
	}
}

func TestStarknetKeccak_FitsIn250Bits(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 250)
	rnd := rand.New(0)
	for i := 0; i < 100; i++ {
		data := make([]byte, rnd.Intn(64))
		rnd.Read(data)
		if got := StarknetKeccak(data).Big(); got.Cmp(limit) >= 0 {
			t.Fatalf("hash of %x exceeds 250 bits: %v", data, got)
		}
	}
}

func TestContractAddress_IsDeterministic(t *testing.T) {
	salt := NewFelt(12)
	class := ClassHash(NewFelt(34))
	calldata := Calldata{NewFelt(1), NewFelt(2)}
	deployer := Address(NewFelt(56))

	first := ContractAddress(salt, class, calldata, deployer)
	second := ContractAddress(salt, class, calldata.Clone(), deployer)
	if first != second {
		t.Errorf("same inputs produced different addresses: %v vs %v", first, second)
	}
}

func TestContractAddress_DependsOnAllInputs(t *testing.T) {
	salt := NewFelt(12)
	class := ClassHash(NewFelt(34))
	calldata := Calldata{NewFelt(1), NewFelt(2)}
	deployer := Address(NewFelt(56))
	base := ContractAddress(salt, class, calldata, deployer)

	tests := map[string]Address{
		"salt":     ContractAddress(NewFelt(13), class, calldata, deployer),
		"class":    ContractAddress(salt, ClassHash(NewFelt(35)), calldata, deployer),
		"calldata": ContractAddress(salt, class, Calldata{NewFelt(2), NewFelt(1)}, deployer),
		"empty":    ContractAddress(salt, class, nil, deployer),
		"deployer": ContractAddress(salt, class, calldata, Address{}),
	}
	for name, address := range tests {
		if address == base {
			t.Errorf("changing the %s did not change the address", name)
		}
	}
}

func TestContractAddress_IsInAddressRange(t *testing.T) {
	rnd := rand.New(1)
	for i := 0; i < 50; i++ {
		salt := NewFelt(rnd.Uint64())
		class := ClassHash(NewFelt(rnd.Uint64()))
		address := ContractAddress(salt, class, Calldata{NewFelt(rnd.Uint64())}, Address{})
		if Felt(address).Big().Cmp(addressUpperBound) >= 0 {
			t.Fatalf("address %v exceeds the address range", address)
		}
	}
}

func TestStorageVarAddress_WithoutKeysIsNameHash(t *testing.T) {
	if got, want := StorageVarAddress("balance"), Key(StarknetKeccak([]byte("balance"))); got != want {
		t.Errorf("unexpected storage address, wanted %v, got %v", want, got)
	}
	withKey := StorageVarAddress("balance", NewFelt(1))
	if withKey == StorageVarAddress("balance") || withKey == StorageVarAddress("balance", NewFelt(2)) {
		t.Errorf("map keys are not reflected in storage addresses")
	}
}

func TestStorageKeyOffset_WrapsAtAddressBound(t *testing.T) {
	last := new(big.Int).Sub(addressUpperBound, big.NewInt(1))
	tests := map[string]struct {
		base   *big.Int
		offset uint64
		want   *big.Int
	}{
		"no offset":    {big.NewInt(5), 0, big.NewInt(5)},
		"small offset": {big.NewInt(5), 2, big.NewInt(7)},
		"below bound":  {new(big.Int).Sub(last, big.NewInt(1)), 1, last},
		"at bound":     {last, 1, big.NewInt(0)},
		"beyond bound": {last, 3, big.NewInt(2)},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := StorageKeyOffset(Key(FeltFromBig(test.base)), test.offset)
			if want := Key(FeltFromBig(test.want)); got != want {
				t.Errorf("unexpected key, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestPedersenArray_CoversLength(t *testing.T) {
	if PedersenArray(NewFelt(0)) == PedersenArray() {
		t.Errorf("arrays of different length must hash differently")
	}
	if PedersenArray(NewFelt(1), NewFelt(2)) == PedersenArray(NewFelt(2), NewFelt(1)) {
		t.Errorf("array hash must be order sensitive")
	}
}

func TestComputeClassHash_CoversProgramAbiAndEntryPoints(t *testing.T) {
	newClass := func() *ContractClass {
		return &ContractClass{
			Program: []byte("program"),
			ABI:     ABI{{Type: abiFunction, Name: "f"}},
			EntryPoints: map[EntryPointType][]Selector{
				External: {SelectorFromName("f")},
			},
		}
	}
	base := ComputeClassHash(newClass())
	if again := ComputeClassHash(newClass()); again != base {
		t.Errorf("class hash is not deterministic")
	}

	modified := newClass()
	modified.Program = []byte("other")
	if ComputeClassHash(modified) == base {
		t.Errorf("program is not covered by the class hash")
	}

	modified = newClass()
	modified.ABI[0].Name = "g"
	if ComputeClassHash(modified) == base {
		t.Errorf("ABI is not covered by the class hash")
	}

	modified = newClass()
	modified.EntryPoints[L1Handler] = modified.EntryPoints[External]
	delete(modified.EntryPoints, External)
	if ComputeClassHash(modified) == base {
		t.Errorf("entry point types are not covered by the class hash")
	}
}
