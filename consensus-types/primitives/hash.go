package primitives

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/wenlabs/wenrestart/encoding/bytesutil"
)

// HashLength is the byte length of a block hash.
const HashLength = 32

// ErrIncorrectHashSize is returned when a decoded hash is not 32 bytes.
var ErrIncorrectHashSize = errors.New("incorrect hash size")

// Hash is a 32-byte block or content hash.
type Hash [HashLength]byte

// String returns the 0x prefixed hex representation of the hash.
func (h Hash) String() string {
	return hexutil.Encode(h[:])
}

// HashFromString decodes a 0x prefixed hex string into a Hash. The string
// must decode to exactly 32 bytes.
func HashFromString(s string) (Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Hash{}, errors.Wrap(err, "could not decode hash string")
	}
	if len(b) != HashLength {
		return Hash{}, errors.Wrapf(ErrIncorrectHashSize, "%d bytes", len(b))
	}
	return Hash(bytesutil.ToBytes32(b)), nil
}
