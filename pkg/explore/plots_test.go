package explore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestClassBalance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class_balance.png")
	counts := map[string]int{"a": 30, "b": 25, "c": 28, "d": 31, "e": 26}
	require.NoError(t, ClassBalance(counts, path))
	assertPNG(t, path)
}

func TestMissingness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missingness.png")
	fractions := map[string]float64{
		"s1": 0.0, "s2": 0.97, "s3": 0.5, "s4": 0.92, "s5": 0.01,
	}
	require.NoError(t, Missingness(fractions, 0.9, path))
	assertPNG(t, path)
}

func TestScatterByClass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.png")
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{2, 1, 3, 8, 9, 7}
	labels := []string{"a", "a", "a", "b", "b", "b"}
	require.NoError(t, ScatterByClass(x, y, labels, "roll", "pitch", path))
	assertPNG(t, path)
}

func TestScatterByClassLengthMismatch(t *testing.T) {
	err := ScatterByClass([]float64{1}, []float64{1, 2}, []string{"a"}, "x", "y", "out.png")
	assert.Error(t, err)
}
