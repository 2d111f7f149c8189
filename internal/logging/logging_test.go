package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := New(false, "", &buf)
	require.NoError(t, err)
	defer closeFn()

	l.Debug("hidden")
	l.WithField("topic", "dev1/react").Info("published")

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "topic=dev1/react")
}

func TestNewFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "tofcal.log")
	l, closeFn, err := New(true, path, io.Discard)
	require.NoError(err)

	l.Debug("verbose line")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(err)
	assert.Contains(t, string(data), "verbose line")
}

func TestNewFileError(t *testing.T) {
	_, _, err := New(false, filepath.Join(t.TempDir(), "missing", "x.log"), io.Discard)
	assert.Error(t, err)
}
