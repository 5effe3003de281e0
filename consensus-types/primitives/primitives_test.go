package primitives_test

import (
	"math"
	"testing"

	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/testing/assert"
	"github.com/wenlabs/wenrestart/testing/require"
)

func TestSlot_SaturateAdd(t *testing.T) {
	assert.Equal(t, primitives.Slot(8), primitives.Slot(3).SaturateAdd(5))
	assert.Equal(t, primitives.Slot(math.MaxUint64), primitives.Slot(math.MaxUint64).SaturateAdd(1))
	assert.Equal(t, primitives.Slot(math.MaxUint64), primitives.Slot(1).SaturateAdd(math.MaxUint64))
}

func TestPubkey_RoundTrip(t *testing.T) {
	p := primitives.Pubkey{1, 2, 3}
	got, err := primitives.PubkeyFromString(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPubkeyFromString_Invalid(t *testing.T) {
	_, err := primitives.PubkeyFromString("not_a_pubkey")
	require.ErrorContains(t, "could not decode pubkey string", err)

	// Valid hex, wrong length.
	_, err = primitives.PubkeyFromString("0x0102")
	require.ErrorContains(t, "incorrect pubkey size", err)
}

func TestHash_RoundTrip(t *testing.T) {
	h := primitives.Hash{0xab, 0xcd}
	got, err := primitives.HashFromString(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHashFromString_Invalid(t *testing.T) {
	_, err := primitives.HashFromString("")
	require.ErrorContains(t, "could not decode hash string", err)

	_, err = primitives.HashFromString("0xff")
	require.ErrorContains(t, "incorrect hash size", err)
}
