// Package stakes provides immutable per-epoch stake tables. A table is
// snapshotted once, at the start of a restart attempt, and the weights it
// reports never change for the lifetime of that attempt.
package stakes

import (
	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/math"
)

// EpochStakes exposes the stake weights valid for one epoch.
type EpochStakes interface {
	// NodeIDToStake returns the stake delegated to the given node identity.
	// The second return value is false if the node has no stake entry.
	NodeIDToStake(pubkey primitives.Pubkey) (uint64, bool)
	// TotalStake returns the sum of all stake in the table.
	TotalStake() uint64
}

// Snapshot is an immutable EpochStakes backed by an in-memory table.
type Snapshot struct {
	stakes map[primitives.Pubkey]uint64
	total  uint64
}

// NewSnapshot copies the given stake table into an immutable snapshot. The
// total stake is computed once with saturating addition.
func NewSnapshot(stakeByNode map[primitives.Pubkey]uint64) *Snapshot {
	stakes := make(map[primitives.Pubkey]uint64, len(stakeByNode))
	total := uint64(0)
	for pubkey, stake := range stakeByNode {
		stakes[pubkey] = stake
		total = math.SaturateAdd(total, stake)
	}
	return &Snapshot{stakes: stakes, total: total}
}

// NodeIDToStake returns the stake delegated to the given node identity.
func (s *Snapshot) NodeIDToStake(pubkey primitives.Pubkey) (uint64, bool) {
	stake, ok := s.stakes[pubkey]
	return stake, ok
}

// TotalStake returns the sum of all stake in the snapshot.
func (s *Snapshot) TotalStake() uint64 {
	return s.total
}
