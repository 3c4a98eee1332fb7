package model

import (
	"errors"
	"fmt"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/filters"
	"github.com/sjwhitworth/golearn/trees"
)

// chiMergeSignificance is the significance level for the ChiMerge
// discretization the tree learners require on float attributes.
const chiMergeSignificance = 0.999

// DecisionTree is an ID3 tree with reduced-error pruning. The pruning
// fraction is searched over a fine grid under k-fold cross-validation, the
// continuous predictors having been discretized with a ChiMerge filter
// trained on the training partition and reused everywhere else.
type DecisionTree struct {
	PruneGrid   []float64 // candidate pruning fractions
	Folds       int       // cross-validation folds for the grid search
	Seed        int64     // fold-assignment seed for the grid search
	ChosenPrune float64   // populated by Fit
	CVAcc       float64

	filter base.Filter
	cls    *trees.ID3DecisionTree
}

// TreeOption configures NewDecisionTree.
type TreeOption func(*DecisionTree)

// WithPruneGrid sets the candidate pruning fractions.
func WithPruneGrid(grid []float64) TreeOption {
	return func(m *DecisionTree) { m.PruneGrid = grid }
}

// WithCVFolds sets the cross-validation fold count for the grid search.
func WithCVFolds(n int) TreeOption { return func(m *DecisionTree) { m.Folds = n } }

// WithCVSeed sets the fold-assignment seed for the grid search.
func WithCVSeed(s int64) TreeOption { return func(m *DecisionTree) { m.Seed = s } }

// DefaultPruneGrid returns the fine pruning grid: 0.00 to 0.48 in steps of
// 0.02, 25 values.
func DefaultPruneGrid() []float64 {
	grid := make([]float64, 25)
	for i := range grid {
		grid[i] = float64(i) * 0.02
	}
	return grid
}

// NewDecisionTree returns a tree searching the default fine pruning grid
// with 25-fold cross-validation.
func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	m := &DecisionTree{PruneGrid: DefaultPruneGrid(), Folds: 25, Seed: 1}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *DecisionTree) Name() string { return "decision tree" }

// fitDiscretizer trains the ChiMerge filter on the training grid. The
// fitted filter is a preprocessing parameter: test and validation grids are
// discretized with the training bins, never their own.
func fitDiscretizer(train base.FixedDataGrid) (base.Filter, error) {
	filt := filters.NewChiMergeFilter(train, chiMergeSignificance)
	for _, a := range base.NonClassFloatAttributes(train) {
		filt.AddAttribute(a)
	}
	if err := filt.Train(); err != nil {
		return nil, fmt.Errorf("model: chimerge training: %w", err)
	}
	return filt, nil
}

// Fit discretizes train, picks the pruning fraction with the best
// cross-validated accuracy, and fits the final tree on the full grid.
func (m *DecisionTree) Fit(train base.FixedDataGrid) error {
	if len(m.PruneGrid) == 0 {
		return errors.New("model: empty prune grid")
	}
	filt, err := fitDiscretizer(train)
	if err != nil {
		return err
	}
	m.filter = filt
	discretized := base.NewLazilyFilteredInstances(train, filt)

	bestPrune, bestAcc := m.PruneGrid[0], -1.0
	for _, prune := range m.PruneGrid {
		cand := trees.NewID3DecisionTree(prune)
		acc, _, err := crossValidatedAccuracy(discretized, cand, m.Folds, m.Seed)
		if err != nil {
			return fmt.Errorf("model: tree prune=%.2f: %w", prune, err)
		}
		if acc > bestAcc {
			bestPrune, bestAcc = prune, acc
		}
	}
	m.ChosenPrune = bestPrune
	m.CVAcc = bestAcc

	m.cls = trees.NewID3DecisionTree(bestPrune)
	if err := m.cls.Fit(discretized); err != nil {
		return fmt.Errorf("model: tree fit: %w", err)
	}
	return nil
}

// Predict discretizes data with the training-fitted filter and applies the
// fitted tree.
func (m *DecisionTree) Predict(data base.FixedDataGrid) (base.FixedDataGrid, error) {
	if m.cls == nil {
		return nil, errors.New("model: tree not fitted")
	}
	return m.cls.Predict(base.NewLazilyFilteredInstances(data, m.filter))
}
