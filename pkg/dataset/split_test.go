package dataset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticCSV builds a dataset with 30 rows per class and a unique row id.
func syntheticCSV(t *testing.T, classes []string, perClass int) dataframe.DataFrame {
	t.Helper()
	var b strings.Builder
	b.WriteString("row_id,reading,class\n")
	id := 0
	for _, c := range classes {
		for i := 0; i < perClass; i++ {
			fmt.Fprintf(&b, "%d,%d.5,%s\n", id, i, c)
			id++
		}
	}
	df, err := ReadCSV(strings.NewReader(b.String()))
	require.NoError(t, err)
	return df
}

func rowIDs(t *testing.T, df dataframe.DataFrame) map[string]bool {
	t.Helper()
	out := map[string]bool{}
	for _, id := range df.Col("row_id").Records() {
		require.False(t, out[id], "duplicate row id %s inside a partition", id)
		out[id] = true
	}
	return out
}

func TestStratifiedSplitSizesAndDisjointness(t *testing.T) {
	df := syntheticCSV(t, []string{"a", "b", "c"}, 30)
	parts, err := StratifiedSplit(df, "class", DefaultProportions, 48375)
	require.NoError(t, err)

	// 60/20/20 of 30 per class: 18/6/6 per class, 54/18/18 overall.
	assert.Equal(t, 54, parts.Train.Nrow())
	assert.Equal(t, 18, parts.Test.Nrow())
	assert.Equal(t, 18, parts.Validation.Nrow())
	assert.Equal(t, df.Nrow(), parts.Train.Nrow()+parts.Test.Nrow()+parts.Validation.Nrow())

	train := rowIDs(t, parts.Train)
	test := rowIDs(t, parts.Test)
	val := rowIDs(t, parts.Validation)
	for id := range test {
		assert.False(t, train[id], "row %s in both train and test", id)
		assert.False(t, val[id], "row %s in both test and validation", id)
	}
	for id := range val {
		assert.False(t, train[id], "row %s in both train and validation", id)
	}
	assert.Len(t, train, 54)
	assert.Len(t, test, 18)
	assert.Len(t, val, 18)
}

func TestStratifiedSplitPreservesClassBalance(t *testing.T) {
	df := syntheticCSV(t, []string{"a", "b", "c"}, 30)
	parts, err := StratifiedSplit(df, "class", DefaultProportions, 7)
	require.NoError(t, err)

	for _, part := range []dataframe.DataFrame{parts.Train, parts.Test, parts.Validation} {
		counts := map[string]int{}
		for _, lab := range part.Col("class").Records() {
			counts[lab]++
		}
		n := part.Nrow()
		for class, c := range counts {
			assert.InDelta(t, 1.0/3.0, float64(c)/float64(n), 0.05,
				"class %s proportion drifted in a partition", class)
		}
	}
}

func TestStratifiedSplitDeterministicPerSeed(t *testing.T) {
	df := syntheticCSV(t, []string{"a", "b"}, 25)

	first, err := StratifiedSplit(df, "class", DefaultProportions, 48375)
	require.NoError(t, err)
	second, err := StratifiedSplit(df, "class", DefaultProportions, 48375)
	require.NoError(t, err)

	assert.Equal(t, first.Train.Records(), second.Train.Records())
	assert.Equal(t, first.Test.Records(), second.Test.Records())
	assert.Equal(t, first.Validation.Records(), second.Validation.Records())
}

func TestStratifiedSplitRejectsBadInput(t *testing.T) {
	df := syntheticCSV(t, []string{"a"}, 10)

	_, err := StratifiedSplit(df, "class", Proportions{Train: 0.5, Test: 0.2, Validation: 0.2}, 1)
	assert.Error(t, err, "proportions not summing to one")

	_, err = StratifiedSplit(df, "no_such_column", DefaultProportions, 1)
	assert.Error(t, err)
}
