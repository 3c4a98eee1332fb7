// Package model wraps the three off-the-shelf classifiers the report fits:
// k-nearest-neighbors, a pruned decision tree, and a random forest. Each
// wrapper runs its hyperparameter search during Fit and afterwards exposes
// only prediction; nothing is shared between the three fits.
package model

import "github.com/sjwhitworth/golearn/base"

// Classifier is the surface the evaluator consumes. Fit is atomic and
// side-effect-free with respect to the input grid; the trained model is
// opaque beyond Predict.
type Classifier interface {
	Name() string
	Fit(train base.FixedDataGrid) error
	Predict(data base.FixedDataGrid) (base.FixedDataGrid, error)
}
