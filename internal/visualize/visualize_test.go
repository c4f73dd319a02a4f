package visualize

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/datapipe/internal/aggregate"
	"github.com/crimson-sun/datapipe/internal/model"
)

func writeExportFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_ReattachesColumns(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, model.ExportWebHourly)
	writeExportFile(t, dir, model.ExportFileName,
		"2024-01-01,9,2,1,0.3\n2024-01-01,10,1,0,0.5\n")

	ds, err := Load(root, Specs[1])
	require.NoError(t, err)

	assert.Equal(t, model.DatasetWebHourly, ds.Name)
	assert.Equal(t, model.HourlyTrafficColumns, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, []string{"2024-01-01", "9", "2", "1", "0.3"}, ds.Rows[0])
}

func TestLoad_FallsBackToAnyFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, model.ExportWebHourly)
	writeExportFile(t, dir, "part-00000", "2024-01-01,9,2,1,0.3\n")

	ds, err := Load(root, Specs[1])
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
}

func TestLoad_EmptyDirectoryFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, model.ExportWebHourly), 0o755))

	_, err := Load(root, Specs[1])
	require.Error(t, err)

	_, err = Load(root, Specs[0]) // directory missing entirely
	require.Error(t, err)
}

func TestEnrich_DerivesCalendarColumns(t *testing.T) {
	ds := Dataset{
		Name:    model.DatasetWebHourly,
		Columns: model.HourlyTrafficColumns,
		Rows: [][]string{
			{"2024-01-01", "9", "2", "1", "0.3"}, // a Monday
		},
	}

	enriched, err := Enrich(ds)
	require.NoError(t, err)

	wantColumns := append(append([]string{}, model.HourlyTrafficColumns...),
		"date_str", "year", "month", "day", "day_of_week", "dataset_type")
	assert.Equal(t, wantColumns, enriched.Columns)

	require.Len(t, enriched.Rows, 1)
	row := enriched.Rows[0]
	require.Len(t, row, len(wantColumns))
	assert.Equal(t, "2024-01-01", row[5])
	assert.Equal(t, "2024", row[6])
	assert.Equal(t, "1", row[7])
	assert.Equal(t, "1", row[8])
	assert.Equal(t, "Monday", row[9])
	assert.Equal(t, model.DatasetWebHourly, row[10])
}

func TestEnrich_RejectsShapeMismatch(t *testing.T) {
	ds := Dataset{
		Name:    model.DatasetWebHourly,
		Columns: model.HourlyTrafficColumns,
		Rows:    [][]string{{"2024-01-01", "9"}},
	}
	_, err := Enrich(ds)
	require.Error(t, err)

	ds.Rows = [][]string{{"not-a-date", "9", "2", "1", "0.3"}}
	_, err = Enrich(ds)
	require.Error(t, err)
}

func TestRoundTrip_AggregateToVisualization(t *testing.T) {
	logs := []model.ProcessedWebLog{
		{WebLogRecord: model.WebLogRecord{IPAddress: "1.1.1.1", Endpoint: "/home", ResponseTime: 0.2}, Date: "2024-01-01", Hour: 9},
		{WebLogRecord: model.WebLogRecord{IPAddress: "2.2.2.2", Endpoint: "/home", ResponseTime: 0.4}, Date: "2024-01-01", Hour: 10, IsError: true},
		{WebLogRecord: model.WebLogRecord{IPAddress: "1.1.1.1", Endpoint: "/blog", ResponseTime: 0.5}, Date: "2024-01-02", Hour: 9},
	}
	summaries := aggregate.ByEndpoint(logs)

	root := t.TempDir()
	exportDir := filepath.Join(root, model.ExportWebTraffic)
	require.NoError(t, aggregate.WriteExport(exportDir, aggregate.EndpointRows(summaries)))

	ds, err := Load(root, Specs[0])
	require.NoError(t, err)

	assert.Len(t, ds.Rows, len(summaries), "round trip preserves row count")
	assert.Equal(t, model.EndpointTrafficColumns, ds.Columns)
	for _, row := range ds.Rows {
		assert.Len(t, row, len(model.EndpointTrafficColumns))
	}
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	ds := Dataset{
		Name:    model.DatasetSensor,
		Columns: []string{"date", "value"},
		Rows:    [][]string{{"2024-01-01", "21.5"}},
	}

	require.NoError(t, WriteCSV(dir, ds))

	f, err := os.Open(filepath.Join(dir, "sensor_data.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"date", "value"}, rows[0])
	assert.Equal(t, []string{"2024-01-01", "21.5"}, rows[1])
}

func TestManifest_DescribesDatasets(t *testing.T) {
	datasets := []Dataset{
		{Name: model.DatasetWebTraffic, Columns: []string{"date", "endpoint"}, Rows: [][]string{{"2024-01-01", "/home"}, {"2024-01-02", "/blog"}}},
		{Name: model.DatasetSocial, Columns: []string{"date", "platform"}, Rows: [][]string{{"2024-01-01", "twitter"}}},
	}
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	m := NewManifest(datasets, "data/visualization", now)
	assert.Equal(t, ProjectName, m.ProjectName)
	assert.Equal(t, "2024-03-15 10:30:00", m.GeneratedOn)
	require.Len(t, m.Datasets, 2)

	web := m.Datasets[model.DatasetWebTraffic]
	assert.Equal(t, "web_traffic_data.csv", web.Filename)
	assert.Equal(t, 2, web.RecordCount)
	assert.Equal(t, []string{"date", "endpoint"}, web.Columns)
	assert.Equal(t, "data/visualization/web_traffic_data.csv", web.SamplePath)

	dir := t.TempDir()
	require.NoError(t, WriteManifest(dir, m))

	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	require.NoError(t, err)

	var decoded Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m, decoded)
}
