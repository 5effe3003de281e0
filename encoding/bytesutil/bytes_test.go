package bytesutil_test

import (
	"testing"

	"github.com/wenlabs/wenrestart/encoding/bytesutil"
	"github.com/wenlabs/wenrestart/testing/assert"
)

func TestToBytes32(t *testing.T) {
	assert.Equal(t, [32]byte{1, 2, 3}, bytesutil.ToBytes32([]byte{1, 2, 3}))
	// Larger inputs are truncated.
	long := make([]byte, 40)
	long[0] = 7
	assert.Equal(t, [32]byte{0: 7}, bytesutil.ToBytes32(long))
}

func TestSafeCopyBytes(t *testing.T) {
	original := []byte{1, 2, 3}
	copied := bytesutil.SafeCopyBytes(original)
	assert.DeepEqual(t, original, copied)
	copied[0] = 9
	assert.Equal(t, byte(1), original[0])

	if bytesutil.SafeCopyBytes(nil) != nil {
		t.Error("expected nil copy of nil slice")
	}
}

func TestTrunc(t *testing.T) {
	assert.DeepEqual(t, []byte{1, 2, 3}, bytesutil.Trunc([]byte{1, 2, 3}))
	assert.DeepEqual(t, []byte{1, 2, 3, 4, 5, 6}, bytesutil.Trunc([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
}
