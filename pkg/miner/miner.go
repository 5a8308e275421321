package miner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/screa/create3-salt-miner/internal/logger"
	"github.com/screa/create3-salt-miner/pkg/prefix"
	"github.com/screa/create3-salt-miner/pkg/types"
	"github.com/screa/create3-salt-miner/pkg/worker"
)

// Errors
var (
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")
	ErrStopped            = errors.New("mining stopped before a match was found")
	ErrAlreadyStarted     = errors.New("miner can only run once")
)

const defaultLogInterval = 5 * time.Second

// Miner coordinates the workers of one search. The first worker to find a
// match claims the result slot; every other worker stops without writing.
type Miner struct {
	config *types.MinerConfig
	logger *logger.Logger

	attempts atomic.Uint64
	started  atomic.Bool
	claimed  atomic.Bool
	result   *types.Result

	done chan struct{}
	once sync.Once
}

// NewMiner creates a new miner instance. A nil logger discards output.
func NewMiner(cfg *types.MinerConfig, log *logger.Logger) *Miner {
	if log == nil {
		log = logger.Discard()
	}
	return &Miner{
		config: cfg,
		logger: log,
		done:   make(chan struct{}),
	}
}

// Mine runs the search and returns the committed result. Prefix validation
// errors are returned before any worker starts.
//
// Without MaxAttempts, Mine may run arbitrarily long: a prefix of n hex
// characters takes 16^n attempts on average. Bound it with MaxAttempts, ctx
// or Stop.
func (m *Miner) Mine(ctx context.Context) (*types.Result, error) {
	p, err := prefix.Sanitize(m.config.Prefix)
	if err != nil {
		return nil, err
	}
	if m.config.Workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, m.config.Workers)
	}
	if !m.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}

	workerConfig := &types.WorkerConfig{
		Deployer:    m.config.Deployer,
		Prefix:      p,
		SaltPrefix:  m.config.SaltPrefix,
		MaxAttempts: m.config.MaxAttempts,
	}

	start := time.Now()
	m.logger.Debug("Mining started", "workers", m.config.Workers, "prefix", p, "saltPrefix", m.config.SaltPrefix)

	// ctx cancellation is turned into the same done signal a winning worker
	// sends.
	stopWatch := context.AfterFunc(ctx, m.Stop)
	defer stopWatch()

	if m.config.Verbose {
		logDone := make(chan struct{})
		var logWG sync.WaitGroup
		logWG.Add(1)
		go func() {
			defer logWG.Done()
			m.periodicLogger(logDone, start)
		}()
		defer func() {
			close(logDone)
			logWG.Wait()
		}()
	}

	if m.config.Workers == 1 {
		err = m.runSingle(workerConfig)
	} else {
		err = m.runConcurrent(workerConfig)
	}

	// claimed is only set by a worker that also stored result, and every
	// worker has returned by now.
	if m.claimed.Load() {
		m.result.Attempts = m.Attempts()
		m.result.Duration = time.Since(start)
		m.logger.Debug("Mining finished", "attempts", m.result.Attempts, "elapsed", m.result.Duration)
		return m.result, nil
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, ErrStopped
}

// runSingle runs one worker on the calling goroutine.
func (m *Miner) runSingle(cfg *types.WorkerConfig) error {
	w, err := worker.NewWorker(cfg, &m.attempts)
	if err != nil {
		return err
	}
	res, err := w.Run(m.done)
	if err != nil {
		return err
	}
	m.commit(res)
	return nil
}

// runConcurrent spawns the workers and waits for all of them to return.
func (m *Miner) runConcurrent(cfg *types.WorkerConfig) error {
	var g errgroup.Group
	for i := 0; i < m.config.Workers; i++ {
		g.Go(func() error {
			w, err := worker.NewWorker(cfg, &m.attempts)
			if err != nil {
				m.Stop()
				return err
			}
			res, err := w.Run(m.done)
			if err != nil {
				// A spent budget ends the search for everyone.
				m.Stop()
				return err
			}
			if m.commit(res) {
				m.logger.Debug("Worker found match", "worker", i, "salt", res.Salt)
			}
			return nil
		})
	}
	return g.Wait()
}

// commit stores res if no other worker has claimed the slot yet, then
// signals every worker to stop. It reports whether res was stored.
func (m *Miner) commit(res *types.WorkerResult) bool {
	if res == nil || !m.claimed.CompareAndSwap(false, true) {
		return false
	}
	m.result = &types.Result{
		Salt:    res.Salt,
		Digest:  res.Digest,
		Address: res.Address,
	}
	m.Stop()
	return true
}

// Stop stops the mining process
func (m *Miner) Stop() {
	m.once.Do(func() { close(m.done) })
}

// Attempts returns the number of candidates tried so far.
func (m *Miner) Attempts() uint64 {
	n := m.attempts.Load()
	if budget := m.config.MaxAttempts; budget > 0 && n > budget {
		return budget
	}
	return n
}

// periodicLogger logs mining progress at regular intervals
func (m *Miner) periodicLogger(done <-chan struct{}, start time.Time) {
	interval := m.config.LogInterval
	if interval <= 0 {
		interval = defaultLogInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			attempts := m.Attempts()
			elapsed := time.Since(start)

			// Calculate rate safely
			rate := 0.0
			if elapsed.Seconds() > 0 {
				rate = float64(attempts) / elapsed.Seconds()
			}
			m.logger.Info("Progress", "attempts", attempts, "rate", fmt.Sprintf("%.2f hashes/sec", rate), "elapsed", elapsed.Round(time.Second))
		case <-done:
			return
		}
	}
}
