// Package dataprep implements the two preprocessing stages of the report.
// Both are fitted on the training partition and replayed unchanged on the
// test and validation partitions; recomputing them per partition would leak
// information into the evaluation.
package dataprep

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColumnPlan is stage one: positional type coercion plus the removal of
// identifier/metadata columns. The plan captures the training partition's
// column order at fit time and every later application checks against it.
// Column positions are schema-dependent by construction; feeding a frame
// with a different column order or count is an error.
type ColumnPlan struct {
	Label         string   // label column, kept categorical
	Flag          string   // window-flag column, kept categorical
	Meta          []string // identifier/metadata columns dropped outright
	ExemptLeading int      // leading columns never coerced

	columns []string // training column order, fixed at fit time
	numeric []string // columns coerced to float
	keep    []string // post-drop column order
}

// PlanOption configures FitColumnPlan.
type PlanOption func(*ColumnPlan)

// WithMetaColumns names the identifier/metadata columns to drop.
func WithMetaColumns(names ...string) PlanOption {
	return func(p *ColumnPlan) { p.Meta = names }
}

// WithFlagColumn names the categorical flag column exempt from coercion.
func WithFlagColumn(name string) PlanOption {
	return func(p *ColumnPlan) { p.Flag = name }
}

// WithExemptLeading sets how many leading columns are exempt from coercion.
func WithExemptLeading(n int) PlanOption {
	return func(p *ColumnPlan) { p.ExemptLeading = n }
}

// FitColumnPlan derives the stage-one plan from the training partition. All
// columns past the leading exempt block, other than the label and the flag
// column, are marked for numeric coercion.
func FitColumnPlan(train dataframe.DataFrame, label string, opts ...PlanOption) (*ColumnPlan, error) {
	p := &ColumnPlan{Label: label, ExemptLeading: 3}
	for _, o := range opts {
		o(p)
	}

	p.columns = train.Names()
	pos := map[string]int{}
	for i, name := range p.columns {
		pos[name] = i
	}
	if _, ok := pos[label]; !ok {
		return nil, fmt.Errorf("dataprep: label column %q not in training frame", label)
	}
	if p.Flag != "" {
		if _, ok := pos[p.Flag]; !ok {
			return nil, fmt.Errorf("dataprep: flag column %q not in training frame", p.Flag)
		}
	}
	for _, m := range p.Meta {
		if _, ok := pos[m]; !ok {
			return nil, fmt.Errorf("dataprep: metadata column %q not in training frame", m)
		}
	}

	drop := map[string]bool{}
	for _, m := range p.Meta {
		drop[m] = true
	}
	for i, name := range p.columns {
		if i >= p.ExemptLeading && name != label && name != p.Flag {
			p.numeric = append(p.numeric, name)
		}
		if !drop[name] {
			p.keep = append(p.keep, name)
		}
	}
	return p, nil
}

// Columns returns the post-drop column order the plan produces.
func (p *ColumnPlan) Columns() []string {
	out := make([]string, len(p.keep))
	copy(out, p.keep)
	return out
}

// Apply coerces and trims df according to the fitted plan. Values that fail
// numeric coercion become NaN rather than surfacing as errors; that is the
// dataset's documented behavior for its mis-typed text columns.
func (p *ColumnPlan) Apply(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	names := df.Names()
	if len(names) != len(p.columns) {
		return df, fmt.Errorf("dataprep: frame has %d columns, plan fitted on %d", len(names), len(p.columns))
	}
	for i, name := range names {
		if name != p.columns[i] {
			return df, fmt.Errorf("dataprep: column %d is %q, plan fitted on %q (schema mismatch: %s)",
				i, name, p.columns[i], strings.Join(p.columns, ","))
		}
	}

	out := df
	for _, name := range p.numeric {
		col := out.Col(name)
		if col.Err != nil {
			return out, fmt.Errorf("dataprep: column %q: %w", name, col.Err)
		}
		out = out.Mutate(series.New(col.Records(), series.Float, name))
		if out.Err != nil {
			return out, fmt.Errorf("dataprep: coerce %q: %w", name, out.Err)
		}
	}

	out = out.Select(p.keep)
	if out.Err != nil {
		return out, fmt.Errorf("dataprep: drop metadata columns: %w", out.Err)
	}
	return out, nil
}
