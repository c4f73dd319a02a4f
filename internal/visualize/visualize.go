// Package visualize turns the headerless aggregate exports back into
// named, calendar-enriched CSVs for Tableau/Power BI, plus a JSON manifest
// describing what was produced.
package visualize

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/crimson-sun/datapipe/internal/model"
)

// Dataset is one visualization-ready table: reattached column names plus
// string-typed rows.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Spec ties a dataset name to its export directory and positional columns.
type Spec struct {
	Name      string
	ExportDir string
	Columns   []string
}

// Specs lists every dataset in output order.
var Specs = []Spec{
	{model.DatasetWebTraffic, model.ExportWebTraffic, model.EndpointTrafficColumns},
	{model.DatasetWebHourly, model.ExportWebHourly, model.HourlyTrafficColumns},
	{model.DatasetSocial, model.ExportSocial, model.SocialColumns},
	{model.DatasetSensor, model.ExportSensor, model.SensorColumns},
	{model.DatasetCorrelation, model.ExportCorrelation, model.CorrelationColumns},
}

// Load reads one export directory into a Dataset, reattaching the given
// column names positionally.
func Load(dir string, spec Spec) (Dataset, error) {
	rows, err := readExport(filepath.Join(dir, spec.ExportDir))
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "load dataset %s", spec.Name)
	}
	return Dataset{Name: spec.Name, Columns: spec.Columns, Rows: rows}, nil
}

// readExport reads the fixed-name export file; when it is absent, it falls
// back to the first regular file in the directory.
func readExport(dir string) ([][]string, error) {
	path := filepath.Join(dir, model.ExportFileName)
	if _, err := os.Stat(path); err != nil {
		entries, dirErr := os.ReadDir(dir)
		if dirErr != nil {
			return nil, errors.Wrapf(dirErr, "read export directory %s", dir)
		}
		path = ""
		for _, e := range entries {
			if !e.IsDir() {
				path = filepath.Join(dir, e.Name())
				break
			}
		}
		if path == "" {
			return nil, errors.Newf("no export files in %s", dir)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return rows, nil
}

// Enrich appends the derived calendar columns and the dataset tag to every
// row. The date is always the first positional column.
func Enrich(ds Dataset) (Dataset, error) {
	columns := append(append([]string{}, ds.Columns...),
		"date_str", "year", "month", "day", "day_of_week", "dataset_type")

	rows := make([][]string, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		if len(row) != len(ds.Columns) {
			return Dataset{}, errors.Newf("dataset %s row %d has %d columns, want %d",
				ds.Name, i, len(row), len(ds.Columns))
		}
		date, err := time.Parse(model.DateLayout, row[0])
		if err != nil {
			return Dataset{}, errors.Wrapf(err, "dataset %s row %d", ds.Name, i)
		}
		enriched := append(append([]string{}, row...),
			date.Format(model.DateLayout),
			strconv.Itoa(date.Year()),
			strconv.Itoa(int(date.Month())),
			strconv.Itoa(date.Day()),
			date.Weekday().String(),
			ds.Name,
		)
		rows = append(rows, enriched)
	}
	return Dataset{Name: ds.Name, Columns: columns, Rows: rows}, nil
}

// WriteCSV writes the dataset with a header row to dir/<name>_data.csv.
func WriteCSV(dir string, ds Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}
	path := filepath.Join(dir, ds.Name+"_data.csv")
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		f.Close()
		return errors.Wrapf(err, "write header %s", path)
	}
	if err := w.WriteAll(ds.Rows); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}
