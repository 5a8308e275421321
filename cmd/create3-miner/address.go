package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/screa/create3-salt-miner/internal/config"
	"github.com/screa/create3-salt-miner/internal/crypto"
	"github.com/screa/create3-salt-miner/pkg/create3"
	"github.com/screa/create3-salt-miner/pkg/prefix"
)

var errPrefixMismatch = errors.New("address does not start with prefix")

func newAddressCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Compute the CREATE3 address for a salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddress(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.Salt, "salt", "s", "", "Salt string (utf8), hashed with keccak256")
	cmd.Flags().StringVarP(&cfg.Digest, "digest", "D", "", "Pre-hashed 32-byte salt (hex)")
	return cmd
}

func runAddress(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.ValidateSalt(); err != nil {
		return err
	}
	deployer, err := cfg.GetDeployer()
	if err != nil {
		return err
	}
	digest, err := cfg.GetDigest()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Verbose {
		fmt.Fprintf(out, "%s %s\n", printCyan("Hashed salt:"), digest.Hex())
		fmt.Fprintf(out, "%s %s\n", printCyan("Proxy address:"), crypto.ChecksumAddress(create3.ProxyAddress(deployer, digest)))
	}
	fmt.Fprintf(out, "%s %s\n", printGreen("CREATE3 address:"), crypto.ChecksumAddress(create3.AddressFromDigest(deployer, digest)))
	return nil
}

func newVerifyCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a mined salt yields an address with the given prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.Salt, "salt", "s", "", "Salt string (utf8), hashed with keccak256")
	cmd.Flags().StringVarP(&cfg.Digest, "digest", "D", "", "Pre-hashed 32-byte salt (hex)")
	cmd.Flags().StringVarP(&cfg.Prefix, "prefix", "p", "", "Expected address prefix (hex without 0x)")
	return cmd
}

func runVerify(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.ValidateSalt(); err != nil {
		return err
	}
	p, err := prefix.Sanitize(cfg.Prefix)
	if err != nil {
		return fmt.Errorf("--prefix %q: %w", cfg.Prefix, err)
	}
	deployer, err := cfg.GetDeployer()
	if err != nil {
		return err
	}
	digest, err := cfg.GetDigest()
	if err != nil {
		return err
	}

	addr := create3.AddressFromDigest(deployer, digest)
	if !strings.HasPrefix(hex.EncodeToString(addr[:]), p) {
		return fmt.Errorf("%w: %s, prefix 0x%s", errPrefixMismatch, crypto.ChecksumAddress(addr), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s starts with 0x%s\n", printGreen("OK:"), crypto.ChecksumAddress(addr), p)
	return nil
}
