package todos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIDSourceStrictlyIncreasing(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	src := NewIDSource(0)
	src.now = func() time.Time { return frozen }

	require.Equal(t, int64(1_700_000_000_000), src.Next())
	require.Equal(t, int64(1_700_000_000_001), src.Next())
	require.Equal(t, int64(1_700_000_000_002), src.Next())
}

func TestIDSourceSeededAboveExisting(t *testing.T) {
	src := NewIDSource(maxID(sampleTodos()))
	src.now = func() time.Time { return time.UnixMilli(1) }

	require.Equal(t, int64(4), src.Next())
}
