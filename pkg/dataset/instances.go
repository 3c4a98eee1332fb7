package dataset

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/sjwhitworth/golearn/base"
)

// Matrix extracts the predictor columns of df as a row-major matrix plus the
// label values. Column order follows the frame; the label column is excluded
// from the matrix. Missing values come through as NaN.
func Matrix(df dataframe.DataFrame, label string) (X [][]float64, y []string, cols []string, err error) {
	for _, name := range df.Names() {
		if name == label {
			continue
		}
		cols = append(cols, name)
	}
	if len(cols) == 0 {
		return nil, nil, nil, fmt.Errorf("dataset: no predictor columns besides label %q", label)
	}

	n := df.Nrow()
	X = make([][]float64, n)
	for i := range X {
		X[i] = make([]float64, len(cols))
	}
	for j, name := range cols {
		vals := df.Col(name).Float()
		for i, v := range vals {
			X[i][j] = v
		}
	}
	y = df.Col(label).Records()
	return X, y, cols, nil
}

// InstanceSchema builds golearn instances for the three partitions against a
// single shared attribute set, so a model fitted on one partition resolves
// the same attributes when predicting another. This is the same role
// templated CSV parsing plays in golearn itself.
type InstanceSchema struct {
	features []*base.FloatAttribute
	class    *base.CategoricalAttribute
}

// NewInstanceSchema creates a schema with float predictors named after cols
// and a categorical label attribute.
func NewInstanceSchema(cols []string, label string) *InstanceSchema {
	s := &InstanceSchema{
		features: make([]*base.FloatAttribute, len(cols)),
		class:    base.NewCategoricalAttribute(),
	}
	for i, name := range cols {
		s.features[i] = base.NewFloatAttribute(name)
	}
	s.class.SetName(label)
	return s
}

// Build materialises a partition as golearn DenseInstances. X must be
// row-major with one column per schema feature; y carries the class labels.
func (s *InstanceSchema) Build(X [][]float64, y []string) (*base.DenseInstances, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("dataset: %d rows but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("dataset: empty partition")
	}
	if len(X[0]) != len(s.features) {
		return nil, fmt.Errorf("dataset: %d columns but schema has %d features", len(X[0]), len(s.features))
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(s.features))
	for i, attr := range s.features {
		specs[i] = inst.AddAttribute(attr)
	}
	classSpec := inst.AddAttribute(s.class)
	if err := inst.AddClassAttribute(s.class); err != nil {
		return nil, fmt.Errorf("dataset: class attribute: %w", err)
	}
	if err := inst.Extend(len(X)); err != nil {
		return nil, fmt.Errorf("dataset: allocate instances: %w", err)
	}

	for i, row := range X {
		for j, v := range row {
			if math.IsInf(v, 0) {
				v = math.NaN()
			}
			inst.Set(specs[j], i, base.PackFloatToBytes(v))
		}
		inst.Set(classSpec, i, s.class.GetSysValFromString(y[i]))
	}
	return inst, nil
}
