package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinesIdentical(t *testing.T) {
	t.Parallel()

	change := Lines([]byte("a\nb\n"), []byte("a\nb\n"))
	require.False(t, change.Changed())
	require.Empty(t, change.Unified)
}

func TestLinesCountsAddedAndRemoved(t *testing.T) {
	t.Parallel()

	previous := []byte("project: checkout\noutcomes:\n- login.json\n- search.xml\n")
	current := []byte("project: checkout\noutcomes:\n- login.json\n- cart.json\n- basket.json\n")

	change := Lines(previous, current)
	require.True(t, change.Changed())
	require.Equal(t, 2, change.Added)
	require.Equal(t, 1, change.Removed)
	require.Contains(t, change.Unified, "-- search.xml\n")
	require.Contains(t, change.Unified, "+- cart.json\n")
	require.NotContains(t, change.Unified, "login.json")
}

func TestLinesFromEmpty(t *testing.T) {
	t.Parallel()

	change := Lines(nil, []byte("one\ntwo\n"))
	require.Equal(t, 2, change.Added)
	require.Zero(t, change.Removed)
	require.Equal(t, "+one\n+two\n", change.Unified)
}

func TestLinesTruncatesLargeOutput(t *testing.T) {
	t.Parallel()

	var current strings.Builder
	for i := 0; i < maxUnifiedLines+10; i++ {
		fmt.Fprintf(&current, "line %d\n", i)
	}

	change := Lines(nil, []byte(current.String()))
	require.Equal(t, maxUnifiedLines+10, change.Added)
	require.Contains(t, change.Unified, "... (truncated)")
	require.Equal(t, maxUnifiedLines+1, strings.Count(change.Unified, "\n"))
}
