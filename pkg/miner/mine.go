package miner

import (
	"context"

	"github.com/screa/create3-salt-miner/pkg/types"
)

// MineSalt searches for a salt whose CREATE3 address under deployer starts
// with addrPrefix, using one worker on the calling goroutine. Salts are 10
// random alphanumeric characters.
//
// The search is unbounded and may run arbitrarily long for long prefixes.
func MineSalt(deployer []byte, addrPrefix string) (*types.Result, error) {
	return MineSaltWithPrefixConcurrent(deployer, "", addrPrefix, 1)
}

// MineSaltConcurrent is MineSalt with the given number of workers racing for
// the first match. workers must be at least 1.
func MineSaltConcurrent(deployer []byte, addrPrefix string, workers int) (*types.Result, error) {
	return MineSaltWithPrefixConcurrent(deployer, "", addrPrefix, workers)
}

// MineSaltWithPrefix is MineSalt where every salt starts with saltPrefix
// followed by 7 random alphanumeric characters.
func MineSaltWithPrefix(deployer []byte, saltPrefix, addrPrefix string) (*types.Result, error) {
	return MineSaltWithPrefixConcurrent(deployer, saltPrefix, addrPrefix, 1)
}

// MineSaltWithPrefixConcurrent is MineSaltWithPrefix with the given number of
// workers.
func MineSaltWithPrefixConcurrent(deployer []byte, saltPrefix, addrPrefix string, workers int) (*types.Result, error) {
	m := NewMiner(&types.MinerConfig{
		Deployer:   deployer,
		Prefix:     addrPrefix,
		SaltPrefix: saltPrefix,
		Workers:    workers,
	}, nil)
	return m.Mine(context.Background())
}
