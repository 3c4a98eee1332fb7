package model

import (
	"errors"
	"fmt"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/knn"
)

// KNN is a k-nearest-neighbors classifier with the neighbor count chosen by
// cross-validated accuracy over a small grid. Inputs are expected to be
// centered and scaled already; distance-based voting is meaningless on raw
// sensor magnitudes.
type KNN struct {
	Grid    []int // candidate neighbor counts
	Folds   int   // folds for the grid search
	Seed    int64 // fold-assignment seed for the search
	ChosenK int   // populated by Fit
	CVAcc   float64

	cls *knn.KNNClassifier
}

// KNNOption configures NewKNN.
type KNNOption func(*KNN)

// WithNeighborGrid sets the candidate neighbor counts.
func WithNeighborGrid(ks []int) KNNOption { return func(m *KNN) { m.Grid = ks } }

// WithSearchFolds sets the cross-validation folds for the k search.
func WithSearchFolds(n int) KNNOption { return func(m *KNN) { m.Folds = n } }

// WithSearchSeed sets the fold-assignment seed for the k search.
func WithSearchSeed(s int64) KNNOption { return func(m *KNN) { m.Seed = s } }

// NewKNN returns a classifier searching k over {1,2,3} with 5-fold
// cross-validation.
func NewKNN(opts ...KNNOption) *KNN {
	m := &KNN{Grid: []int{1, 2, 3}, Folds: 5, Seed: 1}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *KNN) Name() string { return "k-nearest-neighbors" }

// Fit selects the best k by cross-validated accuracy on train, then fits the
// final model with that k on the full training grid. Every candidate gets
// scored, so CVAcc is meaningful even for a single-entry grid.
func (m *KNN) Fit(train base.FixedDataGrid) error {
	if len(m.Grid) == 0 {
		return errors.New("model: empty neighbor grid")
	}

	bestK, bestAcc := 0, -1.0
	for _, k := range m.Grid {
		cand := knn.NewKnnClassifier("euclidean", "linear", k)
		acc, _, err := crossValidatedAccuracy(train, cand, m.Folds, m.Seed)
		if err != nil {
			return fmt.Errorf("model: knn k=%d: %w", k, err)
		}
		if acc > bestAcc {
			bestK, bestAcc = k, acc
		}
	}
	m.ChosenK = bestK
	m.CVAcc = bestAcc

	m.cls = knn.NewKnnClassifier("euclidean", "linear", bestK)
	if err := m.cls.Fit(train); err != nil {
		return fmt.Errorf("model: knn fit: %w", err)
	}
	return nil
}

// Predict applies the fitted model.
func (m *KNN) Predict(data base.FixedDataGrid) (base.FixedDataGrid, error) {
	if m.cls == nil {
		return nil, errors.New("model: knn not fitted")
	}
	return m.cls.Predict(data)
}
