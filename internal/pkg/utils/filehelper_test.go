package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHelper(t *testing.T) {
	_, err := NewFileHelper("")
	assert.ErrorIs(t, err, ErrNoFile)

	path := filepath.Join(t.TempDir(), "data.json")
	fh, err := NewFileHelper(path)
	require.NoError(t, err)

	require.NoError(t, fh.AppendJSON(map[string]int{"a": 1}))
	require.NoError(t, fh.AppendJSON(map[string]int{"b": 2}))
	lines, err := fh.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, toStrings(lines))

	require.NoError(t, fh.RewriteJSON(map[string]int{"c": 3}))
	require.NoError(t, fh.Close())

	fh, err = NewFileHelper(path)
	require.NoError(t, err)
	defer fh.Close()
	lines, err = fh.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{`{"c":3}`}, toStrings(lines))
}

func TestFileHelperLongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	fh, err := NewFileHelper(path)
	require.NoError(t, err)
	defer fh.Close()

	long := strings.Repeat("x", 200*1024)
	require.NoError(t, fh.AppendJSON(map[string]string{"url": long}))
	require.NoError(t, fh.AppendJSON(map[string]int{"b": 2}))

	lines, err := fh.ReadLines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, `{"url":"`+long+`"}`, string(lines[0]))
	assert.Equal(t, `{"b":2}`, string(lines[1]))
}

func TestFileHelperCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\r\n\r\n{\"b\":2}"), 0666))

	fh, err := NewFileHelper(path)
	require.NoError(t, err)
	defer fh.Close()
	lines, err := fh.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, toStrings(lines))
}

func toStrings(lines [][]byte) []string {
	res := make([]string, 0, len(lines))
	for _, l := range lines {
		res = append(res, string(l))
	}
	return res
}
