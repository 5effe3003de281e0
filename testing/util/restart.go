// Package util defines test fixtures shared across restart packages.
package util

import (
	"crypto/rand"
	"testing"

	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/stakes"
	"github.com/wenlabs/wenrestart/testing/require"
)

// ValidatorSet is a fixture of random validator identities with an epoch
// stake snapshot built over them.
type ValidatorSet struct {
	Keys   []primitives.Pubkey
	Stakes *stakes.Snapshot
}

// NewValidatorSet creates count random validator identities, each holding
// the given stake.
func NewValidatorSet(t testing.TB, count int, stake uint64) *ValidatorSet {
	keys := make([]primitives.Pubkey, count)
	table := make(map[primitives.Pubkey]uint64, count)
	for i := range keys {
		keys[i] = RandomPubkey(t)
		table[keys[i]] = stake
	}
	return &ValidatorSet{Keys: keys, Stakes: stakes.NewSnapshot(table)}
}

// RandomPubkey returns a random node identity.
func RandomPubkey(t testing.TB) primitives.Pubkey {
	var p primitives.Pubkey
	_, err := rand.Read(p[:])
	require.NoError(t, err)
	return p
}

// RandomHash returns a random block hash.
func RandomHash(t testing.TB) primitives.Hash {
	var h primitives.Hash
	_, err := rand.Read(h[:])
	require.NoError(t, err)
	return h
}
