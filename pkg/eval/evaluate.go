// Package eval scores fitted classifiers against labeled partitions and
// implements the report's two-stage selection: pick by test accuracy, then
// report validation accuracy as the unbiased final estimate. Reusing the
// test partition for the final figure would be optimistically biased, since
// it already informed the model choice.
package eval

import (
	"fmt"
	"strings"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"

	"sensorclass/pkg/model"
	"sensorclass/pkg/stats"
)

// ConfidenceLevel is the two-sided level for accuracy intervals.
const ConfidenceLevel = 0.95

// Report is the read-only evaluation summary of one model on one partition.
type Report struct {
	Model     string
	Partition string
	Matrix    evaluation.ConfusionMatrix
	Accuracy  float64
	CILow     float64
	CIHigh    float64
	N         int
}

// Evaluate predicts data with cls and compares against the true labels,
// producing the confusion matrix and accuracy with its confidence interval.
func Evaluate(cls model.Classifier, data base.FixedDataGrid, partition string) (*Report, error) {
	predictions, err := cls.Predict(data)
	if err != nil {
		return nil, fmt.Errorf("eval: %s predict on %s: %w", cls.Name(), partition, err)
	}
	cm, err := evaluation.GetConfusionMatrix(data, predictions)
	if err != nil {
		return nil, fmt.Errorf("eval: %s confusion matrix on %s: %w", cls.Name(), partition, err)
	}

	_, n := data.Size()
	acc := evaluation.GetAccuracy(cm)
	lo, hi := stats.ProportionCI(acc, n, ConfidenceLevel)
	return &Report{
		Model:     cls.Name(),
		Partition: partition,
		Matrix:    cm,
		Accuracy:  acc,
		CILow:     lo,
		CIHigh:    hi,
		N:         n,
	}, nil
}

// SelectBest returns the report with the highest accuracy. Ties keep the
// earlier entry, so the fitting order decides.
func SelectBest(reports []*Report) *Report {
	var best *Report
	for _, r := range reports {
		if best == nil || r.Accuracy > best.Accuracy {
			best = r
		}
	}
	return best
}

// Summary renders the report: headline accuracy with its interval, then the
// per-class confusion matrix table from the evaluation library.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on %s partition (n=%d)\n", r.Model, r.Partition, r.N)
	fmt.Fprintf(&b, "accuracy %.4f (%.0f%% CI %.4f-%.4f)\n",
		r.Accuracy, ConfidenceLevel*100, r.CILow, r.CIHigh)
	b.WriteString(evaluation.GetSummary(r.Matrix))
	return b.String()
}
