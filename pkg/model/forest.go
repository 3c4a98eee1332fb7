package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
)

// RandomForest is golearn's random forest with library-default settings: no
// hyperparameter grid, 100 trees, sqrt(p) features sampled per tree. Like
// the decision tree it runs on ChiMerge-discretized inputs with the filter
// fitted on training data. The library's bagging draws from the process-wide
// generator across goroutines, so repeated fits can differ slightly; Seed
// pins the cross-validation fold layout only.
type RandomForest struct {
	ForestSize int
	Features   int     // 0 picks sqrt(p) at fit time
	CVAcc      float64 // cross-validated accuracy on the training grid
	CVStdDev   float64
	Folds      int
	Seed       int64 // fold-assignment seed for the CV estimate

	filter base.Filter
	cls    *ensemble.RandomForest
}

// ForestOption configures NewRandomForest.
type ForestOption func(*RandomForest)

// WithForestSize sets the number of trees.
func WithForestSize(n int) ForestOption { return func(m *RandomForest) { m.ForestSize = n } }

// WithFeaturesPerTree sets the number of features sampled per tree.
func WithFeaturesPerTree(n int) ForestOption { return func(m *RandomForest) { m.Features = n } }

// WithForestSeed sets the fold-assignment seed for the CV estimate.
func WithForestSeed(s int64) ForestOption { return func(m *RandomForest) { m.Seed = s } }

// NewRandomForest returns a forest with the default settings.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	m := &RandomForest{ForestSize: 100, Folds: 5, Seed: 1}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *RandomForest) Name() string { return "random forest" }

// featuresPerTree is the sqrt(p) default, never below one.
func featuresPerTree(p int) int {
	f := int(math.Sqrt(float64(p)))
	if f < 1 {
		f = 1
	}
	return f
}

// Fit trains the forest on the discretized training grid and records its
// cross-validated training accuracy for the report.
func (m *RandomForest) Fit(train base.FixedDataGrid) error {
	filt, err := fitDiscretizer(train)
	if err != nil {
		return err
	}
	m.filter = filt
	discretized := base.NewLazilyFilteredInstances(train, filt)

	features := m.Features
	if features == 0 {
		features = featuresPerTree(len(base.NonClassAttributes(train)))
	}

	scorer := ensemble.NewRandomForest(m.ForestSize, features)
	acc, sd, err := crossValidatedAccuracy(discretized, scorer, m.Folds, m.Seed)
	if err != nil {
		return fmt.Errorf("model: forest cross validation: %w", err)
	}
	m.CVAcc, m.CVStdDev = acc, sd

	m.cls = ensemble.NewRandomForest(m.ForestSize, features)
	if err := m.cls.Fit(discretized); err != nil {
		return fmt.Errorf("model: forest fit: %w", err)
	}
	return nil
}

// Predict discretizes data with the training-fitted filter and applies the
// fitted forest.
func (m *RandomForest) Predict(data base.FixedDataGrid) (base.FixedDataGrid, error) {
	if m.cls == nil {
		return nil, errors.New("model: forest not fitted")
	}
	return m.cls.Predict(base.NewLazilyFilteredInstances(data, m.filter))
}
