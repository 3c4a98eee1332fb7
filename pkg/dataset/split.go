package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gota/gota/dataframe"
)

// Proportions are the target partition fractions. They must sum to 1.
type Proportions struct {
	Train      float64
	Test       float64
	Validation float64
}

// DefaultProportions is the 60/20/20 split used by the report.
var DefaultProportions = Proportions{Train: 0.6, Test: 0.2, Validation: 0.2}

// Partitions holds the three disjoint subsets of the raw dataset. Each is a
// fixed snapshot: preprocessing transforms derive new frames rather than
// mutating these.
type Partitions struct {
	Train      dataframe.DataFrame
	Test       dataframe.DataFrame
	Validation dataframe.DataFrame
}

// StratifiedSplit partitions df into train/test/validation subsets that each
// retain the label-class balance of the full dataset. Rows are assigned per
// class: shuffle the class's row indices with the seeded generator, then cut
// at the target fractions. Every row lands in exactly one partition, and the
// same seed reproduces the same partitions.
func StratifiedSplit(df dataframe.DataFrame, label string, p Proportions, seed int64) (*Partitions, error) {
	if math.Abs(p.Train+p.Test+p.Validation-1.0) > 1e-9 {
		return nil, fmt.Errorf("dataset: proportions sum to %v, want 1", p.Train+p.Test+p.Validation)
	}
	col := df.Col(label)
	if col.Err != nil {
		return nil, fmt.Errorf("dataset: label column %q: %w", label, col.Err)
	}
	labels := col.Records()

	// Group row indices by class, preserving first-seen class order so the
	// assignment is independent of map iteration order.
	groups := map[string][]int{}
	var order []string
	for i, lab := range labels {
		if _, ok := groups[lab]; !ok {
			order = append(order, lab)
		}
		groups[lab] = append(groups[lab], i)
	}

	rnd := rand.New(rand.NewSource(seed))
	var trainIdx, testIdx, valIdx []int
	for _, lab := range order {
		idx := groups[lab]
		rnd.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTrain := int(math.Round(p.Train * float64(len(idx))))
		nTest := int(math.Round(p.Test * float64(len(idx))))
		if nTrain+nTest > len(idx) {
			nTest = len(idx) - nTrain
		}
		trainIdx = append(trainIdx, idx[:nTrain]...)
		testIdx = append(testIdx, idx[nTrain:nTrain+nTest]...)
		valIdx = append(valIdx, idx[nTrain+nTest:]...)
	}

	parts := &Partitions{
		Train:      df.Subset(trainIdx),
		Test:       df.Subset(testIdx),
		Validation: df.Subset(valIdx),
	}
	for _, sub := range []dataframe.DataFrame{parts.Train, parts.Test, parts.Validation} {
		if sub.Err != nil {
			return nil, fmt.Errorf("dataset: subset: %w", sub.Err)
		}
	}
	return parts, nil
}
