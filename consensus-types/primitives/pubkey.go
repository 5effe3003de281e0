package primitives

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/wenlabs/wenrestart/encoding/bytesutil"
)

// PubkeyLength is the byte length of a node identity key.
const PubkeyLength = 32

// ErrIncorrectPubkeySize is returned when a decoded pubkey is not 32 bytes.
var ErrIncorrectPubkeySize = errors.New("incorrect pubkey size")

// Pubkey is a 32-byte validator node identity.
type Pubkey [PubkeyLength]byte

// String returns the 0x prefixed hex representation of the pubkey.
func (p Pubkey) String() string {
	return hexutil.Encode(p[:])
}

// PubkeyFromString decodes a 0x prefixed hex string into a Pubkey. The
// string must decode to exactly 32 bytes.
func PubkeyFromString(s string) (Pubkey, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(err, "could not decode pubkey string")
	}
	if len(b) != PubkeyLength {
		return Pubkey{}, errors.Wrapf(ErrIncorrectPubkeySize, "%d bytes", len(b))
	}
	return Pubkey(bytesutil.ToBytes32(b)), nil
}
