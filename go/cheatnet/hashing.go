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

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"
)

const selectorCacheSize = 4096

var selectorCache = newSelectorCache()

func newSelectorCache() *lru.Cache[string, Selector] {
	cache, err := lru.New[string, Selector](selectorCacheSize)
	if err != nil {
		panic(err) // only fails for non-positive sizes
	}
	return cache
}

// addressUpperBound is 2^251 - 256, the exclusive upper bound of contract
// addresses.
var addressUpperBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))

var contractAddressPrefix = FeltFromBytes([]byte("STARKNET_CONTRACT_ADDRESS"))

// ConstructorSelector is the selector of the constructor entry point.
var ConstructorSelector = SelectorFromName("constructor")

// StarknetKeccak computes the Keccak-256 hash of the given data truncated to
// its 250 least significant bits.
func StarknetKeccak(data []byte) Felt {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	var res Felt
	hasher.Sum(res[0:0])
	res[0] &= 0x03
	return res
}

// SelectorFromName derives the selector of an entry point or event name.
func SelectorFromName(name string) Selector {
	if selector, found := selectorCache.Get(name); found {
		return selector
	}
	selector := Selector(StarknetKeccak([]byte(name)))
	selectorCache.Add(name, selector)
	return selector
}

// Pedersen hashes two field elements.
func Pedersen(a, b Felt) Felt {
	hash := pedersenhash.Pedersen(a.element(), b.element())
	return Felt(hash.Bytes())
}

// PedersenArray hashes a list of field elements by chaining pairwise Pedersen
// hashes starting from zero and finally hashing in the length of the list.
func PedersenArray(elems ...Felt) Felt {
	elements := make([]*fp.Element, len(elems))
	for i, elem := range elems {
		elements[i] = elem.element()
	}
	hash := pedersenhash.PedersenArray(elements...)
	return Felt(hash.Bytes())
}

// ContractAddress computes the address of a contract deployed from the given
// class with the given salt, constructor calldata, and deployer. The result is
// a pure function of its inputs, which allows addresses to be computed before
// a deployment takes place.
func ContractAddress(salt Felt, classHash ClassHash, calldata Calldata, deployer Address) Address {
	calldataHash := PedersenArray(calldata...)
	hash := PedersenArray(
		contractAddressPrefix,
		Felt(deployer),
		salt,
		Felt(classHash),
		calldataHash,
	)
	return Address(FeltFromBig(new(big.Int).Mod(hash.Big(), addressUpperBound)))
}

// StorageVarAddress computes the storage key of a storage variable with the
// given name and (optional) map keys.
func StorageVarAddress(name string, keys ...Felt) Key {
	res := StarknetKeccak([]byte(name))
	for _, key := range keys {
		res = Pedersen(res, key)
	}
	return Key(FeltFromBig(new(big.Int).Mod(res.Big(), addressUpperBound)))
}

// StorageKeyOffset returns the key of the slot offset slots after base, as
// used by storage variables occupying more than one slot. Like storage
// variable addresses, the result wraps around at 2^251 - 256.
func StorageKeyOffset(base Key, offset uint64) Key {
	if offset == 0 {
		return base
	}
	value := new(big.Int).Add(Felt(base).Big(), new(big.Int).SetUint64(offset))
	return Key(FeltFromBig(value.Mod(value, addressUpperBound)))
}

// ComputeClassHash derives the hash identifying a contract class. It covers
// the entry point table, the program, and the ABI of the class.
func ComputeClassHash(class *ContractClass) ClassHash {
	elements := make([]Felt, 0, 8)
	for _, kind := range []EntryPointType{External, L1Handler, Constructor} {
		entries := make([]Felt, 0, len(class.EntryPoints[kind]))
		for _, selector := range class.EntryPoints[kind] {
			entries = append(entries, Felt(selector))
		}
		elements = append(elements, PedersenArray(entries...))
	}
	elements = append(elements, StarknetKeccak(class.Program))
	elements = append(elements, StarknetKeccak(class.ABI.canonical()))
	return ClassHash(PedersenArray(elements...))
}
