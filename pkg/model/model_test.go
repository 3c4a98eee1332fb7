package model

import (
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensorclass/pkg/dataset"
)

func TestDefaultPruneGrid(t *testing.T) {
	grid := DefaultPruneGrid()
	require.Len(t, grid, 25)
	assert.Equal(t, 0.0, grid[0])
	assert.InDelta(t, 0.48, grid[len(grid)-1], 1e-9)
	for i := 1; i < len(grid); i++ {
		assert.Greater(t, grid[i], grid[i-1])
	}
}

func TestFeaturesPerTree(t *testing.T) {
	assert.Equal(t, 1, featuresPerTree(0))
	assert.Equal(t, 1, featuresPerTree(1))
	assert.Equal(t, 3, featuresPerTree(9))
	assert.Equal(t, 12, featuresPerTree(150))
}

func TestDefaults(t *testing.T) {
	knnModel := NewKNN()
	assert.Equal(t, []int{1, 2, 3}, knnModel.Grid)
	assert.Equal(t, 5, knnModel.Folds)

	tree := NewDecisionTree(WithCVFolds(10), WithPruneGrid([]float64{0.1}))
	assert.Equal(t, 10, tree.Folds)
	assert.Equal(t, []float64{0.1}, tree.PruneGrid)

	forest := NewRandomForest(WithForestSize(7), WithFeaturesPerTree(2))
	assert.Equal(t, 7, forest.ForestSize)
	assert.Equal(t, 2, forest.Features)
}

func TestUnfittedPredictErrors(t *testing.T) {
	grid := blobGrid(t, 4)
	for _, cls := range []Classifier{NewKNN(), NewDecisionTree(), NewRandomForest()} {
		_, err := cls.Predict(grid)
		assert.Error(t, err, "%s must refuse to predict before Fit", cls.Name())
	}
}

// blobGrid builds two well-separated blobs: class a around (0,0), class b
// around (10,10).
func blobGrid(t *testing.T, perClass int) base.FixedDataGrid {
	t.Helper()
	var X [][]float64
	var y []string
	for i := 0; i < perClass; i++ {
		off := float64(i) * 0.1
		X = append(X, []float64{off, off})
		y = append(y, "a")
		X = append(X, []float64{10 + off, 10 + off})
		y = append(y, "b")
	}
	inst, err := dataset.NewInstanceSchema([]string{"s1", "s2"}, "class").Build(X, y)
	require.NoError(t, err)
	return inst
}

func TestKNNFitAndPredictSeparatedBlobs(t *testing.T) {
	train := blobGrid(t, 20)
	held := blobGrid(t, 4)

	m := NewKNN(WithNeighborGrid([]int{1, 3}), WithSearchFolds(4), WithSearchSeed(48375))
	require.NoError(t, m.Fit(train))
	assert.Contains(t, []int{1, 3}, m.ChosenK)
	assert.Greater(t, m.CVAcc, 0.9, "separated blobs cross-validate cleanly")

	preds, err := m.Predict(held)
	require.NoError(t, err)
	_, n := held.Size()
	for i := 0; i < n; i++ {
		assert.Equal(t, base.GetClass(held, i), base.GetClass(preds, i), "row %d", i)
	}
}

func TestKNNSingleCandidateStillScored(t *testing.T) {
	train := blobGrid(t, 10)
	m := NewKNN(WithNeighborGrid([]int{1}))
	require.NoError(t, m.Fit(train))
	assert.Equal(t, 1, m.ChosenK)
	assert.Greater(t, m.CVAcc, 0.9, "a lone candidate still gets a real CV score")
}

func TestKNNEmptyGrid(t *testing.T) {
	m := NewKNN(WithNeighborGrid(nil))
	assert.Error(t, m.Fit(blobGrid(t, 4)))
}

func TestCrossValidationFoldLayoutReproducible(t *testing.T) {
	grid := blobGrid(t, 10)
	for _, seed := range []int64{1, 48375} {
		first := NewKNN(WithNeighborGrid([]int{1, 3}), WithSearchFolds(4), WithSearchSeed(seed))
		second := NewKNN(WithNeighborGrid([]int{1, 3}), WithSearchFolds(4), WithSearchSeed(seed))
		require.NoError(t, first.Fit(grid))
		require.NoError(t, second.Fit(grid))
		assert.Equal(t, first.ChosenK, second.ChosenK, "seed %d", seed)
		assert.Equal(t, first.CVAcc, second.CVAcc, "seed %d", seed)
	}
}

func TestDecisionTreeSearchReproducibleForSeed(t *testing.T) {
	grid := blobGrid(t, 15)
	first := NewDecisionTree(WithCVFolds(5), WithCVSeed(48375))
	second := NewDecisionTree(WithCVFolds(5), WithCVSeed(48375))
	require.NoError(t, first.Fit(grid))
	require.NoError(t, second.Fit(grid))
	assert.Equal(t, first.ChosenPrune, second.ChosenPrune)
	assert.Equal(t, first.CVAcc, second.CVAcc)
}

func TestCrossValidatedAccuracyRejectsBadFolds(t *testing.T) {
	grid := blobGrid(t, 3)
	m := NewKNN(WithSearchFolds(1))
	assert.Error(t, m.Fit(grid), "fewer than two folds")

	m = NewKNN(WithSearchFolds(50))
	assert.Error(t, m.Fit(grid), "more folds than rows")
}
