package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/screa/create3-salt-miner/internal/config"
	"github.com/screa/create3-salt-miner/internal/crypto"
	logpkg "github.com/screa/create3-salt-miner/internal/logger"
	minerpkg "github.com/screa/create3-salt-miner/pkg/miner"
	"github.com/screa/create3-salt-miner/pkg/prefix"
)

var (
	printGreen = color.New(color.FgGreen).SprintFunc()
	printCyan  = color.New(color.FgCyan).SprintFunc()
	printRed   = color.New(color.FgRed).SprintFunc()
)

func main() {
	if err := newRootCmd(config.NewConfig()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", printRed("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "create3-miner",
		Short: "CREATE3 address calculator and vanity salt miner",
		Long: `A command line utility for CREATE3 deterministic deployments.
It computes the address a CREATE3 deployer will deploy to for a given salt,
and mines salts whose resulting address starts with a chosen hex prefix.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfg.Deployer, "deployer", "d", "", "CREATE3 deployer address (hex, with or without 0x) (required)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newAddressCmd(cfg), newMineCmd(cfg), newVerifyCmd(cfg))
	return rootCmd
}

func newMineCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine a salt whose CREATE3 address starts with a prefix",
		Long: `Mine a salt whose CREATE3 address starts with the given hex prefix.
Each extra prefix character makes the search 16 times longer on average.
Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMiner(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.Prefix, "prefix", "p", "", "Address prefix to match (hex without 0x, case-insensitive, at most 20 characters)")
	cmd.Flags().StringVarP(&cfg.SaltPrefix, "salt-prefix", "s", "", "Literal text placed in front of every generated salt")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	cmd.Flags().Uint64VarP(&cfg.MaxAttempts, "max-attempts", "m", 0, "Give up after this many attempts (0: never)")
	cmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stdout)")
	cmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", 5, "Logging interval in seconds")
	return cmd
}

func runMiner(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.ValidateMining(); err != nil {
		return err
	}
	// Fail on a bad prefix before touching the log file.
	if _, err := prefix.Sanitize(cfg.Prefix); err != nil {
		return fmt.Errorf("--prefix %q: %w", cfg.Prefix, err)
	}

	logger, closeLog, err := setupLogging(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeLog()

	minerConfig, err := cfg.MinerConfig()
	if err != nil {
		return err
	}

	logger.Info("Starting CREATE3 salt miner", "workers", cfg.Workers, "target", cfg.GetTargetDescription())
	logger.Info("Deployer", "address", crypto.ChecksumAddress(common.BytesToAddress(minerConfig.Deployer)))
	if cfg.SaltPrefix != "" {
		logger.Info("Salt prefix", "value", cfg.SaltPrefix)
	}

	// Set up signal handling for Ctrl+C
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	miner := minerpkg.NewMiner(minerConfig, logger)
	result, err := miner.Mine(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("Received interrupt signal, mining stopped by user", "attempts", miner.Attempts())
		return nil
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", printGreen("Vanity address:"), crypto.ChecksumAddress(result.Address))
	fmt.Fprintf(out, "%s %s\n", printGreen("Salt string:"), result.Salt)
	fmt.Fprintf(out, "%s %s\n", printGreen("Hashed salt:"), result.Digest.Hex())

	// Calculate rate safely
	rate := 0.0
	if result.Duration.Seconds() > 0 {
		rate = float64(result.Attempts) / result.Duration.Seconds()
	}
	logger.Info("Found match", "attempts", result.Attempts, "duration", result.Duration, "rate", fmt.Sprintf("%.2f hashes/sec", rate))
	return nil
}

// setupLogging returns the logger for the mine command and a function that
// closes the log file, if any.
func setupLogging(cfg *config.Config, stdout io.Writer) (*logpkg.Logger, func(), error) {
	level := logpkg.LevelInfo
	if cfg.Verbose {
		level = logpkg.LevelDebug
	}

	if cfg.LogFile != "" {
		// Log to file
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logpkg.NewWriter(file, level), func() { _ = file.Close() }, nil
	}
	if stdout != os.Stdout {
		return logpkg.NewWriter(stdout, level), func() {}, nil
	}
	return logpkg.New(level), func() {}, nil
}
