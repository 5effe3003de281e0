package restart

import (
	"context"
	"testing"
	"time"

	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/restart/heaviestfork"
	"github.com/wenlabs/wenrestart/testing/require"
	"github.com/wenlabs/wenrestart/testing/util"
	"github.com/wenlabs/wenrestart/time/mclock"
)

type staticRecordSource struct {
	records []*heaviestfork.Record
	err     error
}

func (s *staticRecordSource) Records(_ context.Context) ([]*heaviestfork.Record, error) {
	return s.records, s.err
}

func testConfig(t *testing.T, validators *util.ValidatorSet) (*Config, primitives.Slot, primitives.Hash) {
	heaviestSlot := primitives.Slot(103)
	heaviestHash := util.RandomHash(t)
	return &Config{
		ShredVersion:     52,
		MyPubkey:         validators.Keys[len(validators.Keys)-1],
		MyHeaviestSlot:   heaviestSlot,
		MyHeaviestHash:   heaviestHash,
		EpochStakes:      validators.Stakes,
		ProgressInterval: time.Hour,
	}, heaviestSlot, heaviestHash
}

func claimFrom(from primitives.Pubkey, slot primitives.Slot, hash primitives.Hash) *heaviestfork.ForkClaim {
	return &heaviestfork.ForkClaim{
		From:          from,
		Wallclock:     mclock.Now(),
		LastSlot:      slot,
		LastSlotHash:  hash,
		ObservedStake: 100,
		ShredVersion:  52,
	}
}

func waitForStake(t *testing.T, s *Service, want uint64) {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s.TotalActiveStake() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("total active stake never reached %d, got %d", want, s.TotalActiveStake())
}

func TestNewService_RequiresEpochStakes(t *testing.T) {
	_, err := NewService(context.Background(), &Config{})
	require.ErrorContains(t, "epoch stakes snapshot is required", err)
}

func TestNewService_RejectsBadQuorum(t *testing.T) {
	validators := util.NewValidatorSet(t, 4, 100)
	cfg, _, _ := testConfig(t, validators)
	cfg.QuorumNumerator = 3
	cfg.QuorumDenominator = 2
	_, err := NewService(context.Background(), cfg)
	require.ErrorContains(t, "quorum threshold above one", err)
}

func TestService_ReplayThenLive(t *testing.T) {
	validators := util.NewValidatorSet(t, 6, 100)
	cfg, slot, hash := testConfig(t, validators)
	claims := make(chan *heaviestfork.ForkClaim)
	cfg.Claims = claims
	cfg.RecordSource = &staticRecordSource{records: []*heaviestfork.Record{
		claimFrom(validators.Keys[0], slot, hash).Record(),
		claimFrom(validators.Keys[1], slot, hash).Record(),
	}}

	s, err := NewService(context.Background(), cfg)
	require.NoError(t, err)
	s.Start()
	defer func() {
		require.NoError(t, s.Stop())
	}()

	// Replay runs synchronously during Start.
	require.NoError(t, s.Status())
	require.Equal(t, uint64(300), s.TotalActiveStake())
	require.Equal(t, false, s.QuorumReached())

	claims <- claimFrom(validators.Keys[2], slot, hash)
	waitForStake(t, s, 400)
	require.Equal(t, true, s.QuorumReached())
}

func TestService_ReplayIsIdempotent(t *testing.T) {
	validators := util.NewValidatorSet(t, 4, 100)
	cfg, slot, hash := testConfig(t, validators)
	record := claimFrom(validators.Keys[0], slot, hash).Record()
	cfg.RecordSource = &staticRecordSource{records: []*heaviestfork.Record{record, record}}

	s, err := NewService(context.Background(), cfg)
	require.NoError(t, err)
	s.Start()
	defer func() {
		require.NoError(t, s.Stop())
	}()

	require.NoError(t, s.Status())
	require.Equal(t, uint64(200), s.TotalActiveStake())
}

func TestService_CorruptRecordSurfacedInStatus(t *testing.T) {
	validators := util.NewValidatorSet(t, 4, 100)
	cfg, slot, hash := testConfig(t, validators)
	bad := claimFrom(validators.Keys[0], slot, hash).Record()
	bad.BankHash = "not_a_hash"
	cfg.RecordSource = &staticRecordSource{records: []*heaviestfork.Record{bad}}

	s, err := NewService(context.Background(), cfg)
	require.NoError(t, err)
	s.Start()
	defer func() {
		require.NoError(t, s.Stop())
	}()

	require.ErrorContains(t, "could not parse record bank hash", s.Status())
	// Nothing besides the local claim was aggregated.
	require.Equal(t, uint64(100), s.TotalActiveStake())
}

func TestService_QuorumThreshold(t *testing.T) {
	validators := util.NewValidatorSet(t, 3, 100)
	cfg, slot, hash := testConfig(t, validators)
	records := []*heaviestfork.Record{claimFrom(validators.Keys[0], slot, hash).Record()}
	cfg.RecordSource = &staticRecordSource{records: records}

	s, err := NewService(context.Background(), cfg)
	require.NoError(t, err)
	s.Start()
	defer func() {
		require.NoError(t, s.Stop())
	}()

	// 200 of 300 staked is exactly 2/3.
	require.Equal(t, uint64(200), s.TotalActiveStake())
	require.Equal(t, true, s.QuorumReached())
}
