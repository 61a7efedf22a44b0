package inventory

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMerged(t *testing.T, names ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "2024-03-09")
	merged := filepath.Join(dir, "merged")
	require.NoError(t, os.MkdirAll(merged, 0o755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(merged, n), []byte("png"), 0o644))
	}
	return dir
}

func TestBuild(t *testing.T) {
	dir := createMerged(t,
		"Philharmonic 1 ozt.png",
		"2024-03-09 14-05-07_1.png",
		"Argor 20 g.png",
		"notes.txt",
	)

	report, err := Build(dir)
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	assert.Equal(t, "Argor", report.Items[0].Name)
	assert.Equal(t, "Philharmonic", report.Items[1].Name)

	require.Len(t, report.Invalid, 1)
	assert.Equal(t, "2024-03-09 14-05-07_1.png", filepath.Base(report.Invalid[0]))

	assert.InDelta(t, 1+20/GramsPerTroyOunce, report.TotalOzt(), 1e-9)
}

func TestBuild_NoMergedDir(t *testing.T) {
	report, err := Build(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, report.Items)
	assert.Empty(t, report.Invalid)
}

func TestBuild_MissingDir(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	items := []Item{
		{Name: "Kangaroo", Weight: Weight{Raw: "1", Value: 1, Unit: TroyOunce}},
		{Name: "Heraeus, Kinebar", Weight: Weight{Raw: "10", Value: 10, Unit: Gram}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, items))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"item", "qty", "ozt", "g"},
		{"Kangaroo", "1", "1", ""},
		{"Heraeus, Kinebar", "1", "", "10"},
	}, rows)
}

func TestSave(t *testing.T) {
	dir := createMerged(t, "Krugerrand 1 ozt.png")
	report, err := Build(dir)
	require.NoError(t, err)

	out := t.TempDir()
	path, err := Save(report, dir, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "2024-03-09.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "item,qty,ozt,g\nKrugerrand,1,1,\n", string(data))
}

func TestCSVPath_TrailingSlash(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "scans.csv"), CSVPath("/data/scans/", "out"))
}
