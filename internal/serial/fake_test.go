package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeRecordsBytes(t *testing.T) {
	f := NewFake()
	for _, b := range []byte("ok\n") {
		require.NoError(t, f.Transmit(b))
	}
	assert.Equal(t, "ok\n", f.String())

	f.Reset()
	assert.Empty(t, f.String())
}

func TestFakeFailAfter(t *testing.T) {
	f := NewFake()
	f.TransmitError = errors.New("line down")
	f.FailAfter = 2

	require.NoError(t, f.Transmit('a'))
	require.NoError(t, f.Transmit('b'))
	assert.Error(t, f.Transmit('c'))
	assert.Equal(t, "ab", f.String())
}
