package stakes_test

import (
	"math"
	"testing"

	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/stakes"
	"github.com/wenlabs/wenrestart/testing/assert"
)

func TestSnapshot_NodeIDToStake(t *testing.T) {
	staked := primitives.Pubkey{1}
	unstaked := primitives.Pubkey{2}
	s := stakes.NewSnapshot(map[primitives.Pubkey]uint64{staked: 500})

	stake, ok := s.NodeIDToStake(staked)
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(500), stake)

	stake, ok = s.NodeIDToStake(unstaked)
	assert.Equal(t, false, ok)
	assert.Equal(t, uint64(0), stake)
}

func TestSnapshot_TotalStake(t *testing.T) {
	s := stakes.NewSnapshot(map[primitives.Pubkey]uint64{
		{1}: 100,
		{2}: 200,
		{3}: 300,
	})
	assert.Equal(t, uint64(600), s.TotalStake())
}

func TestSnapshot_TotalStakeSaturates(t *testing.T) {
	s := stakes.NewSnapshot(map[primitives.Pubkey]uint64{
		{1}: math.MaxUint64,
		{2}: 1,
	})
	assert.Equal(t, uint64(math.MaxUint64), s.TotalStake())
}

func TestSnapshot_ImmutableAfterConstruction(t *testing.T) {
	table := map[primitives.Pubkey]uint64{{1}: 100}
	s := stakes.NewSnapshot(table)
	table[primitives.Pubkey{1}] = 999
	stake, ok := s.NodeIDToStake(primitives.Pubkey{1})
	assert.Equal(t, true, ok)
	assert.Equal(t, uint64(100), stake)
}
