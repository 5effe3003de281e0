// Package restart owns the heaviest fork aggregation for one coordinated
// restart attempt. The aggregator itself is single-writer; this service is
// the one owner that serializes startup replay and live gossip ingestion,
// and exposes the read-side accessors the coordinator polls.
package restart

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wenlabs/wenrestart/async"
	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/restart/heaviestfork"
	"github.com/wenlabs/wenrestart/stakes"
)

const defaultProgressInterval = 10 * time.Second

// Quorum defaults to 2/3 of total stake.
const (
	defaultQuorumNumerator   = 2
	defaultQuorumDenominator = 3
)

// RecordSource iterates the records persisted by a prior, possibly
// partially completed, attempt. The persisted encoding belongs to the
// collaborator implementing this interface.
type RecordSource interface {
	Records(ctx context.Context) ([]*heaviestfork.Record, error)
}

// Config options for the restart service.
type Config struct {
	ShredVersion   uint16
	MyPubkey       primitives.Pubkey
	MyHeaviestSlot primitives.Slot
	MyHeaviestHash primitives.Hash
	EpochStakes    stakes.EpochStakes
	// RecordSource is replayed in full before any live claim is consumed.
	// May be nil when there is nothing to replay.
	RecordSource RecordSource
	// Claims delivers live, already verified fork claims from gossip. May
	// be nil for replay-only use.
	Claims <-chan *heaviestfork.ForkClaim
	// QuorumNumerator/QuorumDenominator override the 2/3 default.
	QuorumNumerator   uint64
	QuorumDenominator uint64
	ProgressInterval  time.Duration
}

// Service aggregates heaviest fork claims for one restart attempt.
type Service struct {
	ctx          context.Context
	cancel       context.CancelFunc
	cfg          *Config
	lock         sync.Mutex
	agg          *heaviestfork.Aggregator
	replayErr    error
	quorumLogged bool
}

// NewService initializes the service from its config without starting any
// goroutines.
func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	if cfg == nil || cfg.EpochStakes == nil {
		return nil, errors.New("epoch stakes snapshot is required")
	}
	if cfg.QuorumNumerator == 0 || cfg.QuorumDenominator == 0 {
		cfg.QuorumNumerator = defaultQuorumNumerator
		cfg.QuorumDenominator = defaultQuorumDenominator
	}
	if cfg.QuorumNumerator > cfg.QuorumDenominator {
		return nil, errors.New("quorum threshold above one")
	}
	if cfg.ProgressInterval == 0 {
		cfg.ProgressInterval = defaultProgressInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Service{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		agg: heaviestfork.New(
			cfg.ShredVersion,
			cfg.EpochStakes,
			cfg.MyHeaviestSlot,
			cfg.MyHeaviestHash,
			cfg.MyPubkey,
		),
	}, nil
}

// Start replays persisted records, then consumes live claims until the
// service is stopped. Replay failure means the progress log is corrupt;
// live ingestion is not started and the error is surfaced via Status.
func (s *Service) Start() {
	log.WithFields(logrus.Fields{
		"slot":         s.cfg.MyHeaviestSlot,
		"shredVersion": s.cfg.ShredVersion,
	}).Info("Starting heaviest fork aggregation")
	if err := s.replay(); err != nil {
		s.lock.Lock()
		s.replayErr = err
		s.lock.Unlock()
		log.WithError(err).Error("Could not replay heaviest fork records")
		return
	}
	async.RunEvery(s.ctx, s.cfg.ProgressInterval, s.logProgress)
	go s.run()
}

// Stop cancels the service context, ending live ingestion.
func (s *Service) Stop() error {
	s.cancel()
	return nil
}

// Status returns the replay error if startup replay failed, otherwise nil.
func (s *Service) Status() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.replayErr
}

// TotalActiveStake returns the stake that has contributed a claim so far.
func (s *Service) TotalActiveStake() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.agg.TotalActiveStake()
}

// QuorumReached reports whether participating stake has met the configured
// share of total stake.
func (s *Service) QuorumReached() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.quorumReached()
}

func (s *Service) quorumReached() bool {
	total := s.cfg.EpochStakes.TotalStake()
	if total == 0 {
		return false
	}
	return s.agg.TotalActiveStake()*s.cfg.QuorumDenominator >= total*s.cfg.QuorumNumerator
}

func (s *Service) replay() error {
	if s.cfg.RecordSource == nil {
		return nil
	}
	records, err := s.cfg.RecordSource.Records(s.ctx)
	if err != nil {
		return errors.Wrap(err, "could not read heaviest fork records")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, record := range records {
		if _, err := s.agg.AggregateFromRecord(s.ctx, record); err != nil {
			return errors.Wrapf(err, "could not replay record from %s", record.From)
		}
	}
	log.WithField("records", len(records)).Info("Replayed heaviest fork records")
	return nil
}

func (s *Service) run() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case claim, ok := <-s.cfg.Claims:
			if !ok {
				return
			}
			s.process(claim)
		}
	}
}

func (s *Service) process(claim *heaviestfork.ForkClaim) {
	s.lock.Lock()
	result := s.agg.Aggregate(s.ctx, claim)
	quorum := s.quorumReached()
	logged := s.quorumLogged
	if quorum {
		s.quorumLogged = true
	}
	s.lock.Unlock()

	log.WithFields(logrus.Fields{
		"from":   claim.From,
		"status": result.Status.String(),
	}).Debug("Processed heaviest fork claim")

	// A peer that switched forks is worth surfacing, it may be forked off
	// or misconfigured. Not an aggregation failure.
	if result.Status == heaviestfork.DifferentVersionExists {
		log.WithFields(logrus.Fields{
			"from":         claim.From,
			"currentSlot":  result.Current.LastSlot,
			"receivedSlot": result.Received.LastSlot,
		}).Warn("Peer switched heaviest fork")
	}
	if quorum && !logged {
		log.WithField("totalActiveStake", s.TotalActiveStake()).Info("Heaviest fork quorum reached")
	}
}

func (s *Service) logProgress() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.agg.LogBlockStakeMap()
	log.WithFields(logrus.Fields{
		"totalActiveStake": s.agg.TotalActiveStake(),
		"totalStake":       s.cfg.EpochStakes.TotalStake(),
	}).Info("Heaviest fork aggregation progress")
}
