// Package create3 derives CREATE3 deployment addresses.
//
// A CREATE3 deployer first CREATE2-deploys a fixed proxy contract and then
// has that proxy CREATE the real contract with nonce 1, so the final address
// depends only on the deployer and the salt:
//
//	proxy   = keccak256(0xff ++ deployer ++ keccak256(salt) ++ ProxyBytecodeHash)[12:]
//	address = keccak256(0xd6 ++ 0x94 ++ proxy ++ 0x01)[12:]
//
// The layout matches Solady's CREATE3 library byte for byte.
//
// Every function takes the deployer as raw bytes. Callers must pass the
// 20-byte deployer address; other lengths are hashed as given and produce an
// address no on-chain deployer would ever use.
package create3

import (
	"hash"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/create3-salt-miner/internal/crypto"
)

// ProxyBytecodeHash is keccak256 of the CREATE3 proxy init code.
var ProxyBytecodeHash = common.HexToHash("0x21c35dbe1b344a2488cf3321d6ce542f8e9f305544ff09e4993a62319a497c1f")

const (
	create2Marker = 0xff

	// rlp([proxy, 1]): 0xc0+22 list header, 0x80+20 string header.
	rlpListHeader    = 0xd6
	rlpAddressHeader = 0x94
	proxyNonce       = 0x01

	stage2InputLen = 2 + crypto.AddressLen + 1
)

// Digest returns keccak256(salt), the value the deployer actually receives.
func Digest(salt []byte) common.Hash {
	return crypto.Keccak256Hash(salt)
}

// Address returns the CREATE3 address for deployer and a raw salt. The salt
// is hashed with keccak256 before use.
func Address(deployer, salt []byte) common.Address {
	return AddressFromDigest(deployer, Digest(salt))
}

// AddressFromDigest returns the CREATE3 address for deployer and an already
// hashed 32-byte salt.
func AddressFromDigest(deployer []byte, digest common.Hash) common.Address {
	var out common.Address
	NewDeriver(deployer).AddressInto(&digest, &out)
	return out
}

// ProxyAddress returns the address of the intermediate proxy the deployer
// creates for digest.
func ProxyAddress(deployer []byte, digest common.Hash) common.Address {
	var out common.Address
	NewDeriver(deployer).ProxyAddressInto(&digest, &out)
	return out
}

// Deriver computes CREATE3 addresses for a fixed deployer without allocating.
// The stage-1 buffer is primed with 0xff, the deployer and the proxy bytecode
// hash once; each call only copies in the salt digest.
//
// A Deriver is not safe for concurrent use. Give each goroutine its own.
type Deriver struct {
	hasher hash.Hash

	stage1     []byte
	digestAt   int
	stage2     [stage2InputLen]byte
	sum        [crypto.HashLen]byte
	saltDigest [crypto.HashLen]byte
}

// NewDeriver returns a Deriver for deployer.
func NewDeriver(deployer []byte) *Deriver {
	stage1 := make([]byte, 0, 1+len(deployer)+2*crypto.HashLen)
	stage1 = append(stage1, create2Marker)
	stage1 = append(stage1, deployer...)
	digestAt := len(stage1)
	stage1 = append(stage1, make([]byte, crypto.HashLen)...)
	stage1 = append(stage1, ProxyBytecodeHash[:]...)

	d := &Deriver{
		hasher:   crypto.NewKeccak(),
		stage1:   stage1,
		digestAt: digestAt,
	}
	d.stage2[0] = rlpListHeader
	d.stage2[1] = rlpAddressHeader
	d.stage2[stage2InputLen-1] = proxyNonce
	return d
}

// ProxyAddressInto writes the stage-1 proxy address for digest into out.
func (d *Deriver) ProxyAddressInto(digest *common.Hash, out *common.Address) {
	copy(d.stage1[d.digestAt:], digest[:])
	crypto.HashInto(d.hasher, d.stage1, &d.sum)
	copy(out[:], d.sum[12:])
}

// AddressInto writes the final CREATE3 address for digest into out.
func (d *Deriver) AddressInto(digest *common.Hash, out *common.Address) {
	copy(d.stage1[d.digestAt:], digest[:])
	crypto.HashInto(d.hasher, d.stage1, &d.sum)
	copy(d.stage2[2:2+crypto.AddressLen], d.sum[12:])
	crypto.HashInto(d.hasher, d.stage2[:], &d.sum)
	copy(out[:], d.sum[12:])
}

// SaltAddressInto hashes salt and writes the resulting CREATE3 address into
// out. The salt digest is left in the Deriver and can be read with
// LastDigest.
func (d *Deriver) SaltAddressInto(salt []byte, out *common.Address) {
	crypto.HashInto(d.hasher, salt, &d.saltDigest)
	digest := common.Hash(d.saltDigest)
	d.AddressInto(&digest, out)
}

// LastDigest returns the salt digest computed by the last SaltAddressInto.
func (d *Deriver) LastDigest() common.Hash {
	return common.Hash(d.saltDigest)
}
