package aggregate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/crimson-sun/datapipe/internal/model"
)

// WriteExport writes rows as a headerless positional CSV named 000000_0
// inside dir, creating the directory first. Overwrites any previous export.
func WriteExport(dir string, rows [][]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create export directory %s", dir)
	}
	path := filepath.Join(dir, model.ExportFileName)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}

// Positional row encodings, one per aggregate type. Field order must match
// the column lists in the model package.

func EndpointRows(rows []model.EndpointTraffic) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date, r.Endpoint,
			itoa(r.TotalRequests), itoa(r.ErrorCount), ftoa(r.AvgResponseTime), itoa(r.UniqueVisitors),
		})
	}
	return out
}

func HourlyRows(rows []model.HourlyTraffic) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date, itoa(r.Hour),
			itoa(r.TotalRequests), itoa(r.ErrorCount), ftoa(r.AvgResponseTime),
		})
	}
	return out
}

func SocialRows(rows []model.SocialEngagement) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date, r.Platform, r.Category,
			itoa(r.PostCount), itoa(r.TotalLikes), itoa(r.TotalShares), itoa(r.TotalComments),
			ftoa(r.AvgEngagement), ftoa(r.AvgSentiment),
		})
	}
	return out
}

func SensorRows(rows []model.SensorSummary) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date, r.SensorType, r.Location,
			itoa(r.ReadingCount), ftoa(r.AvgValue), ftoa(r.MinValue), ftoa(r.MaxValue),
			itoa(r.ActiveReadings), itoa(r.ErrorReadings),
		})
	}
	return out
}

func CorrelationRows(rows []model.Correlation) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date,
			itoa(r.TotalRequests), itoa(r.ErrorCount), ftoa(r.AvgResponseTime),
			itoa(r.PostCount), itoa(r.TotalLikes), itoa(r.TotalShares), itoa(r.TotalComments),
			ftoa(r.AvgEngagement), ftoa(r.AvgSentiment),
		})
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
