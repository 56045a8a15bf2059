package console

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeBridge builds a Bridge whose terminal input is the read end of an
// os.Pipe, letting tests feed bytes without a real tty. readKey never calls
// Fd(), so this works without MakeRaw/Restore.
func pipeBridge(t *testing.T) (*Bridge, *os.File) {
	t.Helper()
	r, w := os.Pipe()
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return New(nil, r, nil), w
}

func TestReadKeyPassesThroughPrintableByte(t *testing.T) {
	b, w := pipeBridge(t)
	_, err := w.Write([]byte{'a'})
	require.NoError(t, err)

	out, exit, err := b.readKey()
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, []byte{'a'}, out)
}

func TestReadKeyTranslatesBackspace(t *testing.T) {
	b, w := pipeBridge(t)
	_, err := w.Write([]byte{0x7f})
	require.NoError(t, err)

	out, exit, err := b.readKey()
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, []byte{0x08}, out)
}

func TestReadKeySignalsExitOnCtrlBackslash(t *testing.T) {
	b, w := pipeBridge(t)
	_, err := w.Write([]byte{0x1c})
	require.NoError(t, err)

	_, exit, err := b.readKey()
	require.NoError(t, err)
	assert.True(t, exit)
}

func TestReadKeyPassesThroughArrowKeyCSISequence(t *testing.T) {
	b, w := pipeBridge(t)
	_, err := w.Write([]byte{0x1b, '[', 'A'})
	require.NoError(t, err)

	out, exit, err := b.readKey()
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, []byte{0x1b, '[', 'A'}, out)
}

func TestReadKeyReportsBareEscFollowedByAnotherKey(t *testing.T) {
	b, w := pipeBridge(t)
	_, err := w.Write([]byte{0x1b, 'x'})
	require.NoError(t, err)

	out, exit, err := b.readKey()
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, []byte{0x1b, 'x'}, out)
}

func TestReadKeyReturnsEOFWhenInputCloses(t *testing.T) {
	r, w := os.Pipe()
	w.Close()
	defer r.Close()
	b := New(nil, r, nil)

	_, _, err := b.readKey()
	assert.ErrorIs(t, err, io.EOF)
}
