package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireWritesPID(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "data", "kiegate.db")

	l, err := Acquire(statePath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Release() })

	assert.Equal(t, statePath+".lock", l.Path())
	b, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(b)))
}

func TestAcquireIsExclusive(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "kiegate.db")

	first, err := Acquire(statePath)
	require.NoError(t, err)

	_, err = Acquire(statePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in use")

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	second, err := Acquire(statePath)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestAcquireEmptyPath(t *testing.T) {
	_, err := Acquire("")
	assert.Error(t, err)
}
