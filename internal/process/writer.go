package process

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"

	"github.com/crimson-sun/datapipe/internal/model"
)

// WriteWebLogs writes the processed web log table as a headered CSV.
func WriteWebLogs(path string, records []model.ProcessedWebLog) error {
	return writeCSV(path, &records)
}

// WriteSocialPosts writes the processed social post table as a headered CSV.
func WriteSocialPosts(path string, posts []model.ProcessedSocialPost) error {
	return writeCSV(path, &posts)
}

// WriteSensorReadings writes the processed sensor reading table as a headered CSV.
func WriteSensorReadings(path string, readings []model.ProcessedSensorReading) error {
	return writeCSV(path, &readings)
}

func writeCSV(path string, records any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := gocsv.MarshalFile(records, f); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}
