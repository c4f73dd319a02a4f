package process

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"

	"github.com/crimson-sun/datapipe/internal/model"
)

// ReadWebLogs loads the raw web access log CSV.
func ReadWebLogs(path string) ([]model.WebLogRecord, error) {
	var records []model.WebLogRecord
	if err := readCSV(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadSocialPosts loads the raw social post JSON array.
func ReadSocialPosts(path string) ([]model.SocialPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var posts []model.SocialPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return posts, nil
}

// ReadSensorReadings loads the raw sensor reading CSV.
func ReadSensorReadings(path string) ([]model.SensorReading, error) {
	var readings []model.SensorReading
	if err := readCSV(path, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// ReadProcessedWebLogs loads a processed web log table.
func ReadProcessedWebLogs(path string) ([]model.ProcessedWebLog, error) {
	var records []model.ProcessedWebLog
	if err := readCSV(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadProcessedSocialPosts loads a processed social post table.
func ReadProcessedSocialPosts(path string) ([]model.ProcessedSocialPost, error) {
	var posts []model.ProcessedSocialPost
	if err := readCSV(path, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ReadProcessedSensorReadings loads a processed sensor reading table.
func ReadProcessedSensorReadings(path string) ([]model.ProcessedSensorReading, error) {
	var readings []model.ProcessedSensorReading
	if err := readCSV(path, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}
