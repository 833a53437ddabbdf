package recorder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/lnchr/internal/errs"
	"github.com/VoxDroid/lnchr/internal/tasklist"
)

func TestRecordItems(t *testing.T) {
	l := tasklist.New()
	require.NoError(t, l.Add("/first", 0))
	n, err := RecordItems(strings.NewReader("# items\n/a\n\n  /b=2  \n"), l)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	snap := l.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, tasklist.Item{Path: "/b", Delay: 2, Order: 3}, snap[2])
}

func TestRecordItemsAllOrNothing(t *testing.T) {
	l := tasklist.New()
	_, err := RecordItems(strings.NewReader("/a\n/b=-1\n"), l)
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, 0, l.Len())
}

func TestFormatRoundTrip(t *testing.T) {
	items := []tasklist.Item{{Path: "/a", Order: 1}, {Path: "/b c", Delay: 0.5, Order: 2}}
	l := tasklist.New()
	_, err := RecordItems(strings.NewReader(Format(items)), l)
	require.NoError(t, err)
	assert.Equal(t, tasklist.Snapshot(items), l.Snapshot())
}
