package worker

import (
	crand "crypto/rand"
	"errors"
	"math/rand/v2"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/create3-salt-miner/pkg/create3"
	"github.com/screa/create3-salt-miner/pkg/prefix"
	"github.com/screa/create3-salt-miner/pkg/types"
)

const (
	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// SuffixLen is the number of random characters in a salt without a salt
	// prefix. PrefixedSuffixLen is used when a salt prefix is set.
	SuffixLen         = 10
	PrefixedSuffixLen = 7
)

// ErrSearchExhausted is returned when the attempt budget runs out before a
// match is found.
var ErrSearchExhausted = errors.New("search exhausted the attempt budget without a match")

// Worker handles salt generation and matching for one goroutine.
type Worker struct {
	config   *types.WorkerConfig
	attempts *atomic.Uint64
	matcher  *prefix.Matcher
	deriver  *create3.Deriver
	rng      *rand.Rand

	// Pre-allocated buffers for performance
	salt     []byte // config.SaltPrefix followed by the random suffix
	suffixAt int
	addr     common.Address
}

// NewWorker creates a new worker instance. attempts is shared between all
// workers of a search and counts every candidate tried.
func NewWorker(config *types.WorkerConfig, attempts *atomic.Uint64) (*Worker, error) {
	matcher, err := prefix.NewMatcher(config.Prefix)
	if err != nil {
		return nil, err
	}

	suffixLen := SuffixLen
	if config.SaltPrefix != "" {
		suffixLen = PrefixedSuffixLen
	}
	salt := make([]byte, len(config.SaltPrefix)+suffixLen)
	copy(salt, config.SaltPrefix)

	var seed [32]byte
	_, _ = crand.Read(seed[:])

	return &Worker{
		config:   config,
		attempts: attempts,
		matcher:  matcher,
		deriver:  create3.NewDeriver(config.Deployer),
		rng:      rand.New(rand.NewChaCha8(seed)),
		salt:     salt,
		suffixAt: len(config.SaltPrefix),
	}, nil
}

// fillSuffix overwrites the random part of the salt buffer
func (w *Worker) fillSuffix() {
	for i := w.suffixAt; i < len(w.salt); i++ {
		w.salt[i] = alphanumeric[w.rng.IntN(len(alphanumeric))]
	}
}

// try generates one candidate and reports whether its address matches.
func (w *Worker) try() bool {
	w.fillSuffix()
	w.deriver.SaltAddressInto(w.salt, &w.addr)
	return w.matcher.Matches(&w.addr)
}

func (w *Worker) result(isMatch bool) *types.WorkerResult {
	salt := string(w.salt)
	return &types.WorkerResult{
		Salt:    salt,
		Digest:  create3.Digest([]byte(salt)),
		Address: w.addr,
		IsMatch: isMatch,
	}
}

// GenerateAddress generates a single candidate and checks if it matches.
func (w *Worker) GenerateAddress() *types.WorkerResult {
	w.attempts.Add(1)
	return w.result(w.try())
}

// Run searches until a candidate matches, done is closed, or the attempt
// budget is spent. It returns nil, nil when stopped through done.
//
// With no budget Run may run arbitrarily long: a prefix of n hex characters
// takes 16^n attempts on average, and there is no upper bound.
func (w *Worker) Run(done <-chan struct{}) (*types.WorkerResult, error) {
	budget := w.config.MaxAttempts
	for {
		select {
		case <-done:
			return nil, nil
		default:
		}

		if n := w.attempts.Add(1); budget > 0 && n > budget {
			return nil, ErrSearchExhausted
		}

		if w.try() {
			return w.result(true), nil
		}
	}
}
