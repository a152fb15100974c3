package deletion

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pancake-db/pancake-core/errs"
)

func TestDeletionRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		isDeleted []bool
	}{
		{"empty", []bool{}},
		{"single false", []bool{false}},
		{"single true", []bool{true}},
		{"mixed", []bool{false, true, false, false, true}},
		{"all true", []bool{true, true, true, true}},
		{"long alternating", alternating(1000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := CompressDeletions(tt.isDeleted)
			require.NoError(t, err)
			decoded, err := DecompressDeletions(compressed)
			require.NoError(t, err)
			require.Equal(t, tt.isDeleted, decoded)
		})
	}
}

func alternating(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = i%2 == 0
	}

	return out
}

func TestDecompressDeletions_Empty(t *testing.T) {
	decoded, err := DecompressDeletions(nil)
	require.NoError(t, err)
	require.Empty(t, decoded)

	decoded, err = DecompressDeletions([]byte{})
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDeletionCodec_Pure(t *testing.T) {
	isDeleted := []bool{true, false, true}

	first, err := CompressDeletions(isDeleted)
	require.NoError(t, err)
	second, err := CompressDeletions(isDeleted)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDecompressDeletions_Corrupt(t *testing.T) {
	compressed, err := CompressDeletions([]bool{true, false})
	require.NoError(t, err)

	_, err = DecompressDeletions(compressed[:3])
	require.ErrorIs(t, err, errs.ErrCorrupt)

	_, err = DecompressDeletions(append(append([]byte{}, compressed...), 0xAA))
	require.ErrorIs(t, err, errs.ErrCorrupt)
}
