package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
)

// crossValidatedAccuracy scores a candidate classifier by k-fold
// cross-validation, returning mean accuracy and its standard deviation
// across folds. Fold assignment comes from a locally seeded generator and
// the folds run in a fixed order, so the same seed always yields the same
// fold layout. The candidate is refit per fold; callers fit the final model
// separately on the full grid.
func crossValidatedAccuracy(data base.FixedDataGrid, cls base.Classifier, folds int, seed int64) (mean, stddev float64, err error) {
	if folds < 2 {
		return 0, 0, fmt.Errorf("model: need at least 2 folds, got %d", folds)
	}
	_, rows := data.Size()
	if rows < folds {
		return 0, 0, fmt.Errorf("model: %d rows cannot fill %d folds", rows, folds)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(rows)
	foldRows := make([][]int, folds)
	for i, r := range perm {
		foldRows[i%folds] = append(foldRows[i%folds], r)
	}

	attrs := data.AllAttributes()
	cms := make([]evaluation.ConfusionMatrix, 0, folds)
	for i := range foldRows {
		var trainRows []int
		for j, rs := range foldRows {
			if j != i {
				trainRows = append(trainRows, rs...)
			}
		}
		trainFold := base.NewInstancesViewFromVisible(data, trainRows, attrs)
		testFold := base.NewInstancesViewFromVisible(data, foldRows[i], attrs)

		if err := cls.Fit(trainFold); err != nil {
			return 0, 0, fmt.Errorf("model: fold %d fit: %w", i, err)
		}
		preds, err := cls.Predict(testFold)
		if err != nil {
			return 0, 0, fmt.Errorf("model: fold %d predict: %w", i, err)
		}
		cm, err := evaluation.GetConfusionMatrix(testFold, preds)
		if err != nil {
			return 0, 0, fmt.Errorf("model: fold %d confusion matrix: %w", i, err)
		}
		cms = append(cms, cm)
	}

	mean, variance := evaluation.GetCrossValidatedMetric(cms, evaluation.GetAccuracy)
	return mean, math.Sqrt(variance), nil
}
