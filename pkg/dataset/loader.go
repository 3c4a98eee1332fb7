package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingTokens are the raw values treated as missing on load. The sensor
// export uses empty cells, "NA" and spreadsheet division errors
// interchangeably.
var missingTokens = []string{"", "NA", "NaN", "#DIV/0!"}

// ReadCSV parses a delimited sensor export into a dataframe. Every column is
// kept as text: the export mis-types many numeric columns, so type decisions
// belong to the preprocessing stage, not the loader.
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingTokens),
	)
	if df.Err != nil {
		return df, fmt.Errorf("dataset: parse csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return df, fmt.Errorf("dataset: csv has no data rows")
	}
	return df, nil
}

// Load reads the dataset from a file on disk.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
