package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crimson-sun/datapipe/internal/config"
	"github.com/crimson-sun/datapipe/internal/model"
	"github.com/crimson-sun/datapipe/internal/visualize"
)

// mockUploader records the upload call sequence and can fail a given step.
type mockUploader struct {
	calls  []string
	failOn string
}

func (m *mockUploader) call(name string) error {
	m.calls = append(m.calls, name)
	if name == m.failOn {
		return fmt.Errorf("mock: %s failed", name)
	}
	return nil
}

func (m *mockUploader) CreateDirectory(_ context.Context, dir string) error {
	return m.call("mkdir " + dir)
}

func (m *mockUploader) CopyIn(_ context.Context, local, remote string) error {
	return m.call("cp " + filepath.Base(local))
}

func (m *mockUploader) PutFile(_ context.Context, remote, hdfsPath string) error {
	return m.call("put " + hdfsPath)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Load()
	cfg.Data.Dir = t.TempDir()
	cfg.Generate.WebLogCount = 200
	cfg.Generate.SocialPostCount = 100
	cfg.Generate.SensorReadingCount = 300
	cfg.Generate.Seed = 42
	cfg.HDFS.Upload = false
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, WithLogger(quietLogger()),
		WithClock(func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }))

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	// Processed tables.
	for _, path := range []string{
		cfg.Data.ProcessedWebLogs(),
		cfg.Data.ProcessedSocial(),
		cfg.Data.ProcessedSensor(),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing processed table: %v", err)
		}
	}

	// Headerless exports, one directory per aggregate.
	for _, name := range []string{
		model.ExportWebTraffic, model.ExportWebHourly,
		model.ExportSocial, model.ExportSensor, model.ExportCorrelation,
	} {
		path := filepath.Join(cfg.Data.ExportDir(name), model.ExportFileName)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing export: %v", err)
		}
	}

	// Visualization CSVs and manifest.
	for _, name := range []string{
		model.DatasetWebTraffic, model.DatasetWebHourly,
		model.DatasetSocial, model.DatasetSensor, model.DatasetCorrelation,
	} {
		path := filepath.Join(cfg.Data.VisualizationDir(), name+"_data.csv")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing visualization csv: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(cfg.Data.VisualizationDir(), visualize.ManifestFileName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m visualize.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if m.GeneratedOn != "2024-03-15 10:30:00" {
		t.Errorf("generated_on = %q, want fixed clock value", m.GeneratedOn)
	}
	if len(m.Datasets) != 5 {
		t.Fatalf("manifest has %d datasets, want 5", len(m.Datasets))
	}
	for name, meta := range m.Datasets {
		if meta.RecordCount == 0 {
			t.Errorf("dataset %s has zero records", name)
		}
		if meta.Filename != name+"_data.csv" {
			t.Errorf("dataset %s filename = %q", name, meta.Filename)
		}
	}
}

func TestProcess_UploadRunsWhenAllDatasetsSucceed(t *testing.T) {
	cfg := testConfig(t)
	up := &mockUploader{}
	p := New(cfg, WithLogger(quietLogger()), WithUploader(up))

	ctx := context.Background()
	if err := Failed(p.Generate(ctx)); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	results := p.Process(ctx)
	if err := Failed(results); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 3 datasets + upload", len(results))
	}
	if results[3].Stage != "hdfs_upload" || results[3].Records != 3 {
		t.Errorf("upload result = %+v", results[3])
	}
	// Three files, three calls each.
	if len(up.calls) != 9 {
		t.Errorf("uploader saw %d calls, want 9: %v", len(up.calls), up.calls)
	}
}

func TestProcess_UploadSkippedWhenADatasetFails(t *testing.T) {
	cfg := testConfig(t)
	up := &mockUploader{}
	p := New(cfg, WithLogger(quietLogger()), WithUploader(up))

	ctx := context.Background()
	if err := Failed(p.Generate(ctx)); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// Corrupt the raw social file so exactly one dataset fails.
	if err := os.WriteFile(cfg.Data.RawSocial(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt social file: %v", err)
	}

	results := p.Process(ctx)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (no upload attempted)", len(results))
	}
	if Failed(results) == nil {
		t.Fatal("expected a failed result for the corrupted dataset")
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Error("sibling datasets should still succeed")
	}
	if len(up.calls) != 0 {
		t.Errorf("uploader was called despite failures: %v", up.calls)
	}
}

func TestAggregate_MissingInputFailsPerExport(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, WithLogger(quietLogger()))

	ctx := context.Background()
	if err := Failed(p.Generate(ctx)); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if err := Failed(p.Process(ctx)); err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if err := os.Remove(cfg.Data.ProcessedSocial()); err != nil {
		t.Fatalf("remove social table: %v", err)
	}

	results := p.Aggregate(ctx)
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	byStage := map[string]Result{}
	for _, r := range results {
		byStage[r.Stage] = r
	}
	if byStage["aggregate_"+model.ExportSocial].Ok() {
		t.Error("social aggregate should fail without its input")
	}
	if byStage["aggregate_"+model.ExportCorrelation].Ok() {
		t.Error("correlation should fail without the social side")
	}
	if !byStage["aggregate_"+model.ExportWebTraffic].Ok() || !byStage["aggregate_"+model.ExportSensor].Ok() {
		t.Error("web and sensor aggregates should still succeed")
	}
}

func TestFailed(t *testing.T) {
	if err := Failed([]Result{{Stage: "a"}, {Stage: "b"}}); err != nil {
		t.Fatalf("expected nil for all-ok results, got %v", err)
	}
	err := Failed([]Result{{Stage: "a"}, {Stage: "b", Err: fmt.Errorf("boom")}})
	if err == nil {
		t.Fatal("expected error when a result failed")
	}
}
