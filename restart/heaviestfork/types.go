package heaviestfork

import (
	"github.com/wenlabs/wenrestart/consensus-types/primitives"
)

// ForkClaim is a validator's assertion, delivered over gossip, that it
// currently considers (LastSlot, LastSlotHash) the heaviest fork. Claims
// arriving here have already been signature verified and deduplicated by
// the gossip layer.
type ForkClaim struct {
	From         primitives.Pubkey
	Wallclock    uint64 // unix milliseconds
	LastSlot     primitives.Slot
	LastSlotHash primitives.Hash
	// ObservedStake is the sender's own view of the participating stake.
	// Informational only, never trusted for quorum math.
	ObservedStake uint64
	ShredVersion  uint16
}

// Record is the persisted form of a fork claim, written to the restart
// progress log by the coordinator and replayed at startup. From and
// BankHash are hex encoded for durable storage.
type Record struct {
	Slot             uint64 `json:"slot"`
	BankHash         string `json:"bankhash"`
	TotalActiveStake uint64 `json:"total_active_stake"`
	ShredVersion     uint32 `json:"shred_version"`
	Wallclock        uint64 `json:"wallclock"`
	From             string `json:"from"`
}

// Record returns the persisted form of the claim.
func (c *ForkClaim) Record() *Record {
	return &Record{
		Slot:             uint64(c.LastSlot),
		BankHash:         c.LastSlotHash.String(),
		TotalActiveStake: c.ObservedStake,
		ShredVersion:     uint32(c.ShredVersion),
		Wallclock:        c.Wallclock,
		From:             c.From.String(),
	}
}

// Status enumerates the possible outcomes of aggregating one claim.
type Status uint8

const (
	// Inserted means the claim was accepted, either as a new contribution
	// or as a metadata refresh of the sender's existing claim.
	Inserted Status = iota
	// AlreadyExists means the claim is a duplicate or stale redelivery,
	// or claims to be from the local node. A no-op.
	AlreadyExists
	// DifferentVersionExists means the sender switched forks. The new claim
	// is surfaced for logging but dropped from accounting.
	DifferentVersionExists
	// Malformed means the claim carries an incompatible shred version.
	Malformed
	// ZeroStakeIgnored means the sender has no stake in the epoch table.
	ZeroStakeIgnored
)

// String returns a human readable status name.
func (s Status) String() string {
	switch s {
	case Inserted:
		return "inserted"
	case AlreadyExists:
		return "already exists"
	case DifferentVersionExists:
		return "different version exists"
	case Malformed:
		return "malformed"
	case ZeroStakeIgnored:
		return "zero stake ignored"
	default:
		return "unknown"
	}
}

// Result reports the outcome of aggregating one claim. Record is populated
// when Status is Inserted. Current and Received are populated when Status
// is DifferentVersionExists, so the caller can log both sides of the
// conflict.
type Result struct {
	Status   Status
	Record   *Record
	Current  *ForkClaim
	Received *ForkClaim
}
