package generate

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"

	"github.com/crimson-sun/datapipe/internal/model"
)

// WriteWebLogs writes records as a headered CSV, overwriting any existing file.
func WriteWebLogs(path string, records []model.WebLogRecord) error {
	return writeCSV(path, &records)
}

// WriteSensorReadings writes readings as a headered CSV, overwriting any existing file.
func WriteSensorReadings(path string, readings []model.SensorReading) error {
	return writeCSV(path, &readings)
}

// WriteSocialPosts writes posts as an indented JSON array, overwriting any existing file.
func WriteSocialPosts(path string, posts []model.SocialPost) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal social posts")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
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
