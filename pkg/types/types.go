package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Result represents a mining result
type Result struct {
	Salt     string         // salt string as generated, including any salt prefix
	Digest   common.Hash    // keccak256(Salt), the value passed to the deployer
	Address  common.Address // CREATE3 address for Digest
	Attempts uint64         // total attempts across all workers
	Duration time.Duration
}

// MinerConfig configures a single search.
type MinerConfig struct {
	Deployer   []byte // raw 20-byte deployer address
	Prefix     string // address prefix, sanitized by the miner
	SaltPrefix string // literal text placed in front of every generated salt
	Workers    int

	// MaxAttempts caps the total attempts across all workers. Zero means
	// unbounded.
	MaxAttempts uint64

	Verbose     bool
	LogInterval time.Duration
}

// WorkerConfig contains configuration for individual workers
type WorkerConfig struct {
	Deployer    []byte
	Prefix      string // already sanitized
	SaltPrefix  string
	MaxAttempts uint64
}

// WorkerResult represents a result from a single worker
type WorkerResult struct {
	Salt    string
	Digest  common.Hash
	Address common.Address
	IsMatch bool
}
