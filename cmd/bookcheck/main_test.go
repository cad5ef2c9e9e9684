package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBook(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	for _, r := range []struct {
		move   uint16
		weight uint16
	}{
		{4 | 3<<3 | 4<<6 | 1<<9, 30},
		{6 | 0<<3 | 6<<6 | 0<<9, 0},
		{5 | 2<<3 | 6<<6 | 0<<9, 10},
	} {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, uint64(0x463b96181691fc9c)))
		require.NoError(t, binary.Write(&buf, binary.BigEndian, r.move))
		require.NoError(t, binary.Write(&buf, binary.BigEndian, r.weight))
		require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(0)))
	}
	buf.WriteString("xyz")
	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRunPrintsMoves(t *testing.T) {
	path := writeBook(t)
	var out, errOut bytes.Buffer

	code := run([]string{"-seed", "3", "-min-weight", "1",
		"-fen", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		path, "0x463b96181691fc9c"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())

	s := out.String()
	assert.Contains(t, s, "3 records, 3 trailing bytes ignored")
	assert.Contains(t, s, "2 moves")
	assert.Contains(t, s, "e2e4")
	assert.Contains(t, s, "Nf3")
	assert.Contains(t, s, "75.0%")
	assert.NotContains(t, s, "g1g1")
	assert.Contains(t, s, "pick: ")
}

func TestRunNoMatches(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{writeBook(t), "42"}, &out, &errOut)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "0 moves")
	assert.NotContains(t, out.String(), "pick:")
}

func TestRunErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, 2, run(nil, &out, &errOut))
	assert.Equal(t, 2, run([]string{"book.bin", "nothex!"}, &out, &errOut))
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "nope.bin"), "1"}, &out, &errOut))
	assert.Contains(t, errOut.String(), "load error")
}
