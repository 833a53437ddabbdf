package tasklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoxDroid/lnchr/internal/errs"
)

func TestParseItem(t *testing.T) {
	cases := []struct {
		in    string
		path  string
		delay float64
	}{
		{"/usr/bin/mail", "/usr/bin/mail", 0},
		{"/usr/bin/mail=2", "/usr/bin/mail", 2},
		{" C:\\Tools\\app.exe = 1.5 ", "C:\\Tools\\app.exe", 1.5},
		{"/tmp/a=b.txt", "/tmp/a=b.txt", 0},
		{"/tmp/x=1=3", "/tmp/x=1", 3},
	}
	for _, tc := range cases {
		path, delay, err := ParseItem(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.path, path, tc.in)
		assert.Equal(t, tc.delay, delay, tc.in)
	}

	_, _, err := ParseItem("/a=-1")
	require.ErrorIs(t, err, errs.ErrValidation)
	_, _, err = ParseItem("   ")
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestFormatItemRoundTrips(t *testing.T) {
	for _, it := range []Item{{Path: "/a"}, {Path: "/b", Delay: 0.25}} {
		path, delay, err := ParseItem(FormatItem(it))
		require.NoError(t, err)
		assert.Equal(t, it.Path, path)
		assert.Equal(t, it.Delay, delay)
	}
}
