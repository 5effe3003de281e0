package heaviestfork

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/encoding/bytesutil"
	"github.com/wenlabs/wenrestart/math"
	"github.com/wenlabs/wenrestart/stakes"
	"go.opencensus.io/trace"
)

// forkID keys the per-fork stake accounting.
type forkID struct {
	slot primitives.Slot
	hash primitives.Hash
}

// Aggregator accumulates heaviest fork claims for one restart attempt.
// Methods that mutate state perform multi-step check-then-mutate sequences
// and must be serialized by the caller.
type Aggregator struct {
	myShredVersion uint16
	myPubkey       primitives.Pubkey
	// Stake weights from the epoch of our own heaviest bank. The snapshot
	// stays fixed for the whole restart attempt.
	epochStakes   stakes.EpochStakes
	heaviestForks map[primitives.Pubkey]*ForkClaim
	blockStakeMap map[forkID]uint64
	activePeers   map[primitives.Pubkey]struct{}
}

// New returns an aggregator seeded with the local node's own heaviest fork
// claim. The local claim is authoritative: it counts toward the stake map
// immediately and can never be overwritten by an incoming message.
func New(
	myShredVersion uint16,
	epochStakes stakes.EpochStakes,
	myHeaviestSlot primitives.Slot,
	myHeaviestHash primitives.Hash,
	myPubkey primitives.Pubkey,
) *Aggregator {
	myStake, _ := epochStakes.NodeIDToStake(myPubkey)
	a := &Aggregator{
		myShredVersion: myShredVersion,
		myPubkey:       myPubkey,
		epochStakes:    epochStakes,
		heaviestForks:  make(map[primitives.Pubkey]*ForkClaim),
		blockStakeMap:  make(map[forkID]uint64),
		activePeers:    make(map[primitives.Pubkey]struct{}),
	}
	a.activePeers[myPubkey] = struct{}{}
	a.blockStakeMap[forkID{slot: myHeaviestSlot, hash: myHeaviestHash}] = myStake
	return a
}

// isValidChange decides what to do with a repeat claim from a sender that
// already has an accepted claim. A sender that switched forks keeps its
// stake credited to the original fork; the new claim is surfaced but
// dropped from accounting.
func isValidChange(current, received *ForkClaim) *Result {
	if current.LastSlot != received.LastSlot || current.LastSlotHash != received.LastSlotHash {
		return &Result{Status: DifferentVersionExists, Current: current, Received: received}
	}
	if *current == *received || current.Wallclock > received.Wallclock {
		return &Result{Status: AlreadyExists}
	}
	return &Result{Status: Inserted, Record: received.Record()}
}

// Aggregate ingests one live fork claim. The claim only affects stake
// accounting the first time its sender is accepted; later claims from the
// same sender for the same fork refresh stored metadata only.
func (a *Aggregator) Aggregate(ctx context.Context, claim *ForkClaim) *Result {
	_, span := trace.StartSpan(ctx, "heaviestFork.Aggregate")
	defer span.End()

	from := claim.From
	senderStake, _ := a.epochStakes.NodeIDToStake(from)
	// Gossip filters unstaked senders already, re-check anyway.
	if senderStake == 0 {
		log.WithField("from", from).Warn("Ignoring heaviest fork claim from zero-stake sender")
		zeroStakeIgnoredCount.Inc()
		return &Result{Status: ZeroStakeIgnored}
	}
	if from == a.myPubkey {
		return &Result{Status: AlreadyExists}
	}
	if claim.ShredVersion != a.myShredVersion {
		log.WithFields(logrus.Fields{
			"from":         from,
			"shredVersion": claim.ShredVersion,
		}).Warn("Ignoring heaviest fork claim with mismatched shred version")
		malformedCount.Inc()
		return &Result{Status: Malformed}
	}
	if current, ok := a.heaviestForks[from]; ok {
		result := isValidChange(current, claim)
		if result.Status != Inserted {
			if result.Status == DifferentVersionExists {
				forkSwitchCount.Inc()
			}
			return result
		}
		a.heaviestForks[from] = claim
		return result
	}
	key := forkID{slot: claim.LastSlot, hash: claim.LastSlotHash}
	a.blockStakeMap[key] = math.SaturateAdd(a.blockStakeMap[key], senderStake)
	a.activePeers[from] = struct{}{}
	a.heaviestForks[from] = claim
	activePeersCount.Set(float64(len(a.activePeers)))
	totalActiveStakeGauge.Set(float64(a.TotalActiveStake()))
	return &Result{Status: Inserted, Record: claim.Record()}
}

// AggregateFromRecord replays one persisted record through Aggregate. A
// record that fails to parse signals progress log corruption and is
// returned as an error, never skipped silently.
func (a *Aggregator) AggregateFromRecord(ctx context.Context, record *Record) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "heaviestFork.AggregateFromRecord")
	defer span.End()

	from, err := primitives.PubkeyFromString(record.From)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse record sender")
	}
	bankHash, err := primitives.HashFromString(record.BankHash)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse record bank hash")
	}
	return a.Aggregate(ctx, &ForkClaim{
		From:          from,
		Wallclock:     record.Wallclock,
		LastSlot:      primitives.Slot(record.Slot),
		LastSlotHash:  bankHash,
		ObservedStake: record.TotalActiveStake,
		ShredVersion:  uint16(record.ShredVersion),
	}), nil
}

// TotalActiveStake returns the stake of every peer that has contributed at
// least one accepted claim, the local node included. This measures
// participation, not agreement on any single fork.
func (a *Aggregator) TotalActiveStake() uint64 {
	sum := uint64(0)
	for pubkey := range a.activePeers {
		stake, _ := a.epochStakes.NodeIDToStake(pubkey)
		sum = math.SaturateAdd(sum, stake)
	}
	return sum
}

// ForkStake returns the cumulative stake currently attesting to the given
// (slot, hash) pair.
func (a *Aggregator) ForkStake(slot primitives.Slot, hash primitives.Hash) uint64 {
	return a.blockStakeMap[forkID{slot: slot, hash: hash}]
}

// LogBlockStakeMap logs every aggregated fork with its cumulative stake and
// share of total stake. Diagnostic only.
func (a *Aggregator) LogBlockStakeMap() {
	totalStake := a.epochStakes.TotalStake()
	for key, stake := range a.blockStakeMap {
		percent := 0.0
		if totalStake > 0 {
			percent = float64(stake) / float64(totalStake) * 100.0
		}
		log.WithFields(logrus.Fields{
			"slot":    key.slot,
			"hash":    fmt.Sprintf("%#x", bytesutil.Trunc(key.hash[:])),
			"stake":   stake,
			"percent": fmt.Sprintf("%.2f", percent),
		}).Info("Aggregated heaviest fork")
	}
}
