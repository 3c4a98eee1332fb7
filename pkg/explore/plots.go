// Package explore renders the exploratory charts the report is narrated
// around: class balance, per-column missingness, and predictor scatter
// plots colored by class. All output is PNG files.
package explore

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// classPalette cycles across label classes in scatter plots.
var classPalette = []color.RGBA{
	{R: 220, G: 60, B: 60, A: 255},
	{R: 60, G: 120, B: 220, A: 255},
	{R: 60, G: 180, B: 90, A: 255},
	{R: 230, G: 160, B: 30, A: 255},
	{R: 150, G: 80, B: 200, A: 255},
}

// ClassBalance saves a bar chart of per-class record counts. Classes are
// sorted by name so the chart is stable across runs.
func ClassBalance(counts map[string]int, path string) error {
	classes := make([]string, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	values := make(plotter.Values, len(classes))
	for i, c := range classes {
		values[i] = float64(counts[c])
	}

	p := plot.New()
	p.Title.Text = "Class balance"
	p.Y.Label.Text = "Records"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return fmt.Errorf("explore: class balance bars: %w", err)
	}
	bars.Color = classPalette[1]
	p.Add(bars)
	p.NominalX(classes...)

	if err := p.Save(5*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("explore: save %s: %w", path, err)
	}
	return nil
}

// Missingness saves a bar chart of per-column missing fractions with a line
// at the drop threshold. Columns are sorted by name; with ~150 predictors
// the shape matters more than individual labels, so the x axis is left
// unlabeled.
func Missingness(fractions map[string]float64, threshold float64, path string) error {
	names := make([]string, 0, len(fractions))
	for n := range fractions {
		names = append(names, n)
	}
	sort.Strings(names)

	values := make(plotter.Values, len(names))
	for i, n := range names {
		values[i] = fractions[n]
	}

	p := plot.New()
	p.Title.Text = "Missing-value fraction by column"
	p.Y.Label.Text = "Fraction missing"
	p.Y.Max = 1.05

	bars, err := plotter.NewBarChart(values, vg.Points(2))
	if err != nil {
		return fmt.Errorf("explore: missingness bars: %w", err)
	}
	bars.Color = classPalette[0]
	bars.LineStyle.Width = 0
	p.Add(bars)

	cut, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: threshold},
		{X: float64(len(names)), Y: threshold},
	})
	if err != nil {
		return fmt.Errorf("explore: threshold line: %w", err)
	}
	cut.LineStyle.Width = vg.Points(1.5)
	cut.Color = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	p.Add(cut)
	p.Legend.Add(fmt.Sprintf("drop threshold %.0f%%", threshold*100), cut)

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("explore: save %s: %w", path, err)
	}
	return nil
}

// ScatterByClass saves a scatter of two predictors with one series per
// label class.
func ScatterByClass(x, y []float64, labels []string, xName, yName, path string) error {
	if len(x) != len(y) || len(x) != len(labels) {
		return fmt.Errorf("explore: scatter inputs differ in length")
	}

	byClass := map[string]plotter.XYs{}
	var order []string
	for i := range x {
		if _, ok := byClass[labels[i]]; !ok {
			order = append(order, labels[i])
		}
		byClass[labels[i]] = append(byClass[labels[i]], plotter.XY{X: x[i], Y: y[i]})
	}
	sort.Strings(order)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s by class", yName, xName)
	p.X.Label.Text = xName
	p.Y.Label.Text = yName

	for i, class := range order {
		s, err := plotter.NewScatter(byClass[class])
		if err != nil {
			return fmt.Errorf("explore: scatter for class %s: %w", class, err)
		}
		s.Color = classPalette[i%len(classPalette)]
		s.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add(class, s)
	}

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("explore: save %s: %w", path, err)
	}
	return nil
}
