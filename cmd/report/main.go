package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sjwhitworth/golearn/base"

	"sensorclass/pkg/dataprep"
	"sensorclass/pkg/dataset"
	"sensorclass/pkg/eval"
	"sensorclass/pkg/explore"
	"sensorclass/pkg/model"
	"sensorclass/pkg/stats"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --input          : Path to the sensor-readings CSV. Default = data/sensor_readings.csv
// --label          : Name of the label column (5 activity classes). Default = class
// --flag-col       : Name of the categorical window-flag column
// --meta           : Comma-separated identifier/metadata columns to drop
// --columns        : Comma-separated curated predictor positions in the cleaned
//                    frame (the hand-picked selection from the exploratory
//                    plots); empty keeps every surviving predictor
// --missing-thresh : Drop columns with > threshold fraction missing. Default = 0.9
// --seed           : Random seed for the stratified split and resampling
// --outdir         : Directory for the rendered PNG plots
//
// Example:
//   go run ./cmd/report --input data/sensor_readings.csv --seed 48375
//
// ---------------------------------------------------------------------
//

const defaultMeta = "row_id,subject,ts_epoch,ts_micro,ts_label,new_window"

// defaultColumns is the hand-picked predictor selection: the roll/pitch/yaw
// blocks and the gyro/accel/magnet triplets that separated the classes in
// the exploratory scatter plots.
const defaultColumns = "3,4,5,6,7,8,9,10,11,12,39,40,41,42,43,44,45,46,47,48," +
	"60,61,62,63,64,65,66,67,68,69,70,71,72,73,74"

func parseIntList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad column index %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func classCounts(labels []string) map[string]int {
	counts := map[string]int{}
	for _, lab := range labels {
		counts[lab]++
	}
	return counts
}

func main() {
	inputPath := flag.String("input", "data/sensor_readings.csv", "Path to the sensor-readings CSV")
	labelCol := flag.String("label", "class", "Name of the label column")
	flagCol := flag.String("flag-col", "new_window", "Name of the window-flag column")
	metaCols := flag.String("meta", defaultMeta, "Identifier/metadata columns to drop")
	columns := flag.String("columns", defaultColumns, "Curated predictor positions in the cleaned frame")
	missingThresh := flag.Float64("missing-thresh", dataprep.DefaultMissingThreshold,
		"Drop columns with more than this fraction missing")
	seed := flag.Int64("seed", 48375, "Random seed")
	outDir := flag.String("outdir", "figures", "Directory for rendered plots")
	flag.Parse()

	curated, err := parseIntList(*columns)
	if err != nil {
		log.Fatalf("Parsing --columns: %v", err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Creating %s: %v", *outDir, err)
	}

	// ---- Load ----
	fmt.Println("=== Sensor activity classification report ===")
	df, err := dataset.Load(*inputPath)
	if err != nil {
		log.Fatalf("Loading dataset: %v", err)
	}
	fmt.Printf("Loaded %d rows, %d columns from %s\n", df.Nrow(), df.Ncol(), *inputPath)

	// ---- Stratified 60/20/20 split ----
	parts, err := dataset.StratifiedSplit(df, *labelCol, dataset.DefaultProportions, *seed)
	if err != nil {
		log.Fatalf("Splitting dataset: %v", err)
	}
	fmt.Printf("Partitions: train=%d test=%d validation=%d (seed %d)\n",
		parts.Train.Nrow(), parts.Test.Nrow(), parts.Validation.Nrow(), *seed)

	// ---- Stage 1: type coercion + metadata drop, fitted on training ----
	var planOpts []dataprep.PlanOption
	if *metaCols != "" {
		planOpts = append(planOpts, dataprep.WithMetaColumns(strings.Split(*metaCols, ",")...))
	}
	if *flagCol != "" {
		planOpts = append(planOpts, dataprep.WithFlagColumn(*flagCol))
	}
	plan, err := dataprep.FitColumnPlan(parts.Train, *labelCol, planOpts...)
	if err != nil {
		log.Fatalf("Fitting column plan: %v", err)
	}
	trainClean, err := plan.Apply(parts.Train)
	if err != nil {
		log.Fatalf("Cleaning train partition: %v", err)
	}
	testClean, err := plan.Apply(parts.Test)
	if err != nil {
		log.Fatalf("Cleaning test partition: %v", err)
	}
	valClean, err := plan.Apply(parts.Validation)
	if err != nil {
		log.Fatalf("Cleaning validation partition: %v", err)
	}
	fmt.Printf("Stage 1: coerced to numeric, dropped %d metadata columns, %d columns remain\n",
		len(plan.Meta), len(plan.Columns()))

	// ---- Stage 2: missing-value filter + curated selection, fitted on training ----
	filter, err := dataprep.FitFeatureFilter(trainClean, *labelCol,
		dataprep.WithMissingThreshold(*missingThresh),
		dataprep.WithCuratedColumns(curated),
	)
	if err != nil {
		log.Fatalf("Fitting feature filter: %v", err)
	}
	fmt.Printf("Stage 2: %d columns over %.0f%% missing dropped, %d predictors selected\n",
		len(filter.Dropped), *missingThresh*100, len(filter.Selected))
	for _, name := range filter.Dropped {
		fmt.Printf("  dropped %-28s (%.1f%% missing)\n", name, filter.Fractions[name]*100)
	}

	trainF, err := filter.Apply(trainClean)
	if err != nil {
		log.Fatalf("Filtering train partition: %v", err)
	}
	testF, err := filter.Apply(testClean)
	if err != nil {
		log.Fatalf("Filtering test partition: %v", err)
	}
	valF, err := filter.Apply(valClean)
	if err != nil {
		log.Fatalf("Filtering validation partition: %v", err)
	}

	// ---- Exploratory plots ----
	counts := classCounts(df.Col(*labelCol).Records())
	if err := explore.ClassBalance(counts, filepath.Join(*outDir, "class_balance.png")); err != nil {
		log.Fatalf("Rendering class balance: %v", err)
	}
	if err := explore.Missingness(filter.Fractions, *missingThresh,
		filepath.Join(*outDir, "missingness.png")); err != nil {
		log.Fatalf("Rendering missingness: %v", err)
	}

	XTrain, yTrain, cols, err := dataset.Matrix(trainF, *labelCol)
	if err != nil {
		log.Fatalf("Extracting train matrix: %v", err)
	}
	XTest, yTest, _, err := dataset.Matrix(testF, *labelCol)
	if err != nil {
		log.Fatalf("Extracting test matrix: %v", err)
	}
	XVal, yVal, _, err := dataset.Matrix(valF, *labelCol)
	if err != nil {
		log.Fatalf("Extracting validation matrix: %v", err)
	}

	if len(cols) >= 2 {
		x0 := make([]float64, len(XTrain))
		x1 := make([]float64, len(XTrain))
		for i, row := range XTrain {
			x0[i], x1[i] = row[0], row[1]
		}
		scatter := filepath.Join(*outDir, "predictor_scatter.png")
		if err := explore.ScatterByClass(x0, x1, yTrain, cols[0], cols[1], scatter); err != nil {
			log.Fatalf("Rendering predictor scatter: %v", err)
		}
	}
	fmt.Printf("Plots written to %s\n", *outDir)

	// ---- Instances: raw grids for the tree learners, scaled for KNN ----
	schema := dataset.NewInstanceSchema(cols, *labelCol)
	rawTrain, err := schema.Build(XTrain, yTrain)
	if err != nil {
		log.Fatalf("Building train instances: %v", err)
	}
	rawTest, err := schema.Build(XTest, yTest)
	if err != nil {
		log.Fatalf("Building test instances: %v", err)
	}
	rawVal, err := schema.Build(XVal, yVal)
	if err != nil {
		log.Fatalf("Building validation instances: %v", err)
	}

	scaler := stats.NewStandardScaler()
	XsTrain, err := scaler.FitTransform(XTrain)
	if err != nil {
		log.Fatalf("Scaling train matrix: %v", err)
	}
	XsTest, err := scaler.Transform(XTest)
	if err != nil {
		log.Fatalf("Scaling test matrix: %v", err)
	}
	XsVal, err := scaler.Transform(XVal)
	if err != nil {
		log.Fatalf("Scaling validation matrix: %v", err)
	}
	scaledTrain, err := schema.Build(XsTrain, yTrain)
	if err != nil {
		log.Fatalf("Building scaled train instances: %v", err)
	}
	scaledTest, err := schema.Build(XsTest, yTest)
	if err != nil {
		log.Fatalf("Building scaled test instances: %v", err)
	}
	scaledVal, err := schema.Build(XsVal, yVal)
	if err != nil {
		log.Fatalf("Building scaled validation instances: %v", err)
	}

	// ---- Fit the three classifiers ----
	type candidate struct {
		cls      model.Classifier
		train    base.FixedDataGrid
		test     base.FixedDataGrid
		validate base.FixedDataGrid
	}

	knnModel := model.NewKNN(model.WithSearchSeed(*seed))
	treeModel := model.NewDecisionTree(model.WithCVSeed(*seed))
	forestModel := model.NewRandomForest(model.WithForestSeed(*seed))

	candidates := []*candidate{
		{cls: knnModel, train: scaledTrain, test: scaledTest, validate: scaledVal},
		{cls: treeModel, train: rawTrain, test: rawTest, validate: rawVal},
		{cls: forestModel, train: rawTrain, test: rawTest, validate: rawVal},
	}

	fmt.Println("\n=== Model fitting ===")
	for _, c := range candidates {
		fmt.Printf("Fitting %s...\n", c.cls.Name())
		if err := c.cls.Fit(c.train); err != nil {
			log.Fatalf("Fitting %s: %v", c.cls.Name(), err)
		}
	}
	fmt.Printf("KNN: chose k=%d (cross-validated accuracy %.4f)\n", knnModel.ChosenK, knnModel.CVAcc)
	fmt.Printf("Decision tree: chose prune=%.2f over %d-fold CV (accuracy %.4f)\n",
		treeModel.ChosenPrune, treeModel.Folds, treeModel.CVAcc)
	fmt.Printf("Random forest: %d trees, default settings (CV accuracy %.4f +/- %.4f)\n",
		forestModel.ForestSize, forestModel.CVAcc, forestModel.CVStdDev)

	// ---- Evaluate on the testing partition and select ----
	fmt.Println("\n=== Evaluation on the testing partition ===")
	reports := make([]*eval.Report, 0, len(candidates))
	for _, c := range candidates {
		r, err := eval.Evaluate(c.cls, c.test, "testing")
		if err != nil {
			log.Fatalf("Evaluating %s: %v", c.cls.Name(), err)
		}
		fmt.Println(r.Summary())
		reports = append(reports, r)
	}

	best := eval.SelectBest(reports)
	var winner *candidate
	for i, r := range reports {
		if r == best {
			winner = candidates[i]
		}
	}
	fmt.Printf("Selected %s (test accuracy %.4f)\n", best.Model, best.Accuracy)

	// ---- Final unbiased estimate on the validation partition ----
	// The test partition informed the selection above, so its accuracy is an
	// optimistic estimate; the validation partition was untouched until now.
	fmt.Println("\n=== Final estimate on the validation partition ===")
	final, err := eval.Evaluate(winner.cls, winner.validate, "validation")
	if err != nil {
		log.Fatalf("Final evaluation: %v", err)
	}
	fmt.Println(final.Summary())
	fmt.Printf("Final model: %s, validation accuracy %.4f (%.0f%% CI %.4f-%.4f)\n",
		final.Model, final.Accuracy, eval.ConfidenceLevel*100, final.CILow, final.CIHigh)
}
