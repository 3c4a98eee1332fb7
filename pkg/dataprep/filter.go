package dataprep

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"sensorclass/pkg/stats"
)

// DefaultMissingThreshold drops columns that are more than 90% missing.
const DefaultMissingThreshold = 0.9

// FeatureFilter is stage two: the training-fitted missing-value filter plus
// the manually curated predictor selection. Dropped and Selected are fitted
// parameters; Apply replays them on any partition without recomputing.
type FeatureFilter struct {
	Threshold float64
	Curated   []int // predictor positions in the stage-one column order; nil keeps all survivors
	Label     string

	Dropped   []string           // fitted: columns above the missing threshold
	Selected  []string           // fitted: final predictor columns, in frame order
	Fractions map[string]float64 // fitted: per-column missing fraction on training
}

// FilterOption configures FitFeatureFilter.
type FilterOption func(*FeatureFilter)

// WithMissingThreshold overrides the missing-fraction cutoff.
func WithMissingThreshold(t float64) FilterOption {
	return func(f *FeatureFilter) { f.Threshold = t }
}

// WithCuratedColumns restricts the surviving predictors to the given
// positions in the stage-one column order. The list is the analyst's
// hand-picked selection from the exploratory plots.
func WithCuratedColumns(idx []int) FilterOption {
	return func(f *FeatureFilter) { f.Curated = idx }
}

// FitFeatureFilter computes the stage-two parameters from the training
// partition only. Numeric columns whose missing fraction exceeds the
// threshold are marked for removal; the curated position list is then
// intersected with the survivors.
func FitFeatureFilter(train dataframe.DataFrame, label string, opts ...FilterOption) (*FeatureFilter, error) {
	f := &FeatureFilter{Threshold: DefaultMissingThreshold, Label: label}
	for _, o := range opts {
		o(f)
	}

	names := train.Names()
	labelSeen := false
	curated := map[int]bool{}
	for _, i := range f.Curated {
		if i < 0 || i >= len(names) {
			return nil, fmt.Errorf("dataprep: curated column %d out of range (%d columns)", i, len(names))
		}
		curated[i] = true
	}

	f.Fractions = map[string]float64{}
	for i, name := range names {
		if name == label {
			labelSeen = true
			continue
		}
		col := train.Col(name)
		if col.Type() != series.Float {
			// Non-numeric survivors of stage one are not predictors.
			continue
		}
		frac := stats.MissingFraction(col.Float())
		f.Fractions[name] = frac
		if frac > f.Threshold {
			f.Dropped = append(f.Dropped, name)
			continue
		}
		if f.Curated != nil && !curated[i] {
			continue
		}
		f.Selected = append(f.Selected, name)
	}
	if !labelSeen {
		return nil, fmt.Errorf("dataprep: label column %q not in training frame", label)
	}
	if len(f.Selected) == 0 {
		return nil, fmt.Errorf("dataprep: no predictor columns survived filtering")
	}
	sort.Strings(f.Dropped)
	return f, nil
}

// Apply projects df onto the fitted predictor columns plus the label. The
// same fitted column set is used for every partition; this is the transform
// whose reuse keeps test and validation free of training leakage.
func (f *FeatureFilter) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	cols := append(append([]string{}, f.Selected...), f.Label)
	out := df.Select(cols)
	if out.Err != nil {
		return out, fmt.Errorf("dataprep: select fitted columns: %w", out.Err)
	}
	return out, nil
}
