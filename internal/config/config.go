package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/create3-salt-miner/internal/crypto"
	"github.com/screa/create3-salt-miner/pkg/types"
)

// Errors
var (
	ErrNoDeployerSpecified = errors.New("must specify --deployer")
	ErrNoSaltSpecified     = errors.New("must specify either --salt or --digest")
	ErrBothSaltAndDigest   = errors.New("--salt and --digest are mutually exclusive")
	ErrInvalidWorkers      = errors.New("--workers must be at least 1")
	ErrInvalidLogInterval  = errors.New("--log-interval must be at least 1 second")
)

// Config holds the application configuration
type Config struct {
	Deployer    string
	Prefix      string
	SaltPrefix  string
	Salt        string
	Digest      string
	Workers     int
	MaxAttempts uint64
	Verbose     bool
	LogFile     string
	LogInterval int // Logging interval in seconds
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:     runtime.NumCPU(),
		LogInterval: 5, // Default 5 seconds
	}
}

// Validate validates the settings shared by every command
func (c *Config) Validate() error {
	if c.Deployer == "" {
		return ErrNoDeployerSpecified
	}
	if _, err := crypto.DecodeAddress(c.Deployer); err != nil {
		return err
	}
	return nil
}

// ValidateMining validates the configuration for the mine command
func (c *Config) ValidateMining() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.LogInterval < 1 {
		return ErrInvalidLogInterval
	}
	return nil
}

// ValidateSalt validates the configuration for commands that take one salt
func (c *Config) ValidateSalt() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Salt == "" && c.Digest == "" {
		return ErrNoSaltSpecified
	}
	if c.Salt != "" && c.Digest != "" {
		return ErrBothSaltAndDigest
	}
	return nil
}

// GetDeployer returns the decoded 20-byte deployer address
func (c *Config) GetDeployer() ([]byte, error) {
	if c.Deployer == "" {
		return nil, ErrNoDeployerSpecified
	}
	return crypto.DecodeAddress(c.Deployer)
}

// GetDigest returns the salt digest, hashing --salt or decoding --digest
func (c *Config) GetDigest() (common.Hash, error) {
	if c.Digest != "" {
		return crypto.DecodeHash(c.Digest)
	}
	if c.Salt != "" {
		return crypto.Keccak256Hash([]byte(c.Salt)), nil
	}
	return common.Hash{}, ErrNoSaltSpecified
}

// GetTargetDescription returns a human-readable description of the target
func (c *Config) GetTargetDescription() string {
	if c.Prefix == "" {
		return "any address"
	}
	return "prefix: 0x" + c.Prefix
}

// MinerConfig converts the flag values into a miner configuration
func (c *Config) MinerConfig() (*types.MinerConfig, error) {
	deployer, err := c.GetDeployer()
	if err != nil {
		return nil, fmt.Errorf("deployer: %w", err)
	}
	return &types.MinerConfig{
		Deployer:    deployer,
		Prefix:      c.Prefix,
		SaltPrefix:  c.SaltPrefix,
		Workers:     c.Workers,
		MaxAttempts: c.MaxAttempts,
		Verbose:     c.Verbose,
		LogInterval: time.Duration(c.LogInterval) * time.Second,
	}, nil
}
