package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorderWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	rec, err := newRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.writeRow("A", 10, 20, 30, 40))
	require.NoError(t, rec.writeRow("", 50, 60, 70, 80))
	require.NoError(t, rec.close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"winner", "a_start", "b_start", "a_end", "b_end"},
		{"A", "10", "20", "30", "40"},
		{"", "50", "60", "70", "80"},
	}, rows)
}

func TestDefaultCSVPathIsUnique(t *testing.T) {
	a := defaultCSVPath()
	b := defaultCSVPath()
	require.NotEqual(t, a, b)
	require.Contains(t, a, "fuzzysync-")
}
