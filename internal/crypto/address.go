package crypto

import (
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

const (
	AddressLen = common.AddressLength
	HashLen    = common.HashLength
)

// Errors
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidHash    = errors.New("invalid 32-byte hash")
)

// NewKeccak returns a fresh legacy Keccak-256 hasher (the Ethereum variant,
// not the NIST SHA3-256 padding).
func NewKeccak() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// Keccak256 calculates the keccak256 hash of the input bytes
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		_, _ = h.Write(b)
	}
	return h.Sum(nil)
}

// Keccak256Hash is Keccak256 returning a common.Hash.
func Keccak256Hash(data ...[]byte) (out common.Hash) {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		_, _ = h.Write(b)
	}
	h.Sum(out[:0])
	return out
}

// HashInto resets hasher, hashes input and writes the 32-byte digest into sum.
// Reuses the provided hasher to avoid allocations.
func HashInto(hasher hash.Hash, input []byte, sum *[HashLen]byte) {
	hasher.Reset()
	hasher.Write(input)
	hasher.Sum(sum[:0])
}

// DecodeAddress decodes a 20-byte hex address, with or without 0x.
func DecodeAddress(s string) ([]byte, error) {
	h := strings.TrimSpace(s)
	if !common.IsHexAddress(h) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(h).Bytes(), nil
}

// DecodeHash decodes a 32-byte hex digest, with or without 0x.
func DecodeHash(s string) (common.Hash, error) {
	h := strings.TrimSpace(s)
	if !has0xPrefix(h) {
		h = "0x" + h
	}
	b, err := hexutil.Decode(h)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if len(b) != HashLen {
		return common.Hash{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHash, len(b), HashLen)
	}
	return common.BytesToHash(b), nil
}

// ChecksumAddress converts a 20-byte address to its EIP-55 checksummed string.
// Only call when you need the string (e.g. for result output).
func ChecksumAddress(addr common.Address) string {
	return addr.Hex()
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
