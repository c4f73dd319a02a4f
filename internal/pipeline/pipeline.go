// Package pipeline orchestrates the four batch stages. Each stage reports
// per-dataset Results instead of aborting: a failure in one dataset never
// stops its siblings, and nothing short of a programming error panics.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/crimson-sun/datapipe/internal/aggregate"
	"github.com/crimson-sun/datapipe/internal/config"
	"github.com/crimson-sun/datapipe/internal/generate"
	"github.com/crimson-sun/datapipe/internal/hdfs"
	"github.com/crimson-sun/datapipe/internal/model"
	"github.com/crimson-sun/datapipe/internal/process"
	"github.com/crimson-sun/datapipe/internal/visualize"
)

// Result is the outcome of one stage step: which step, how many records it
// produced, and what (if anything) went wrong.
type Result struct {
	Stage   string
	Records int
	Err     error
}

// Ok reports whether the step succeeded.
func (r Result) Ok() bool { return r.Err == nil }

// Failed collapses a result list into a single error, nil when every step
// succeeded.
func Failed(results []Result) error {
	var err error
	for _, r := range results {
		if r.Err != nil {
			err = errors.CombineErrors(err, errors.Wrap(r.Err, r.Stage))
		}
	}
	return err
}

// Pipeline wires the stages to a data directory and an optional uploader.
type Pipeline struct {
	data     config.DataConfig
	gen      config.GenerateConfig
	hdfsCfg  config.HDFSConfig
	uploader hdfs.Uploader
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithUploader replaces the HDFS uploader. Used by tests.
func WithUploader(up hdfs.Uploader) Option {
	return func(p *Pipeline) { p.uploader = up }
}

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithClock replaces the manifest timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a Pipeline from configuration.
func New(cfg config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		data:    cfg.Data,
		gen:     cfg.Generate,
		hdfsCfg: cfg.HDFS,
		log:     slog.Default(),
		now:     time.Now,
	}
	if cfg.HDFS.Upload {
		p.uploader = hdfs.NewDockerClient(cfg.HDFS.Container)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate synthesizes the three raw datasets and writes them under
// data/raw. Each dataset reports its own Result.
func (p *Pipeline) Generate(ctx context.Context) []Result {
	g := generate.New(p.gen.Seed)

	return []Result{
		p.step("generate_web_logs", func() (int, error) {
			records := g.WebLogs(p.gen.WebLogCount)
			return len(records), generate.WriteWebLogs(p.data.RawWebLogs(), records)
		}),
		p.step("generate_social_posts", func() (int, error) {
			posts := g.SocialPosts(p.gen.SocialPostCount)
			return len(posts), generate.WriteSocialPosts(p.data.RawSocial(), posts)
		}),
		p.step("generate_sensor_readings", func() (int, error) {
			readings := g.SensorReadings(p.gen.SensorReadingCount)
			return len(readings), generate.WriteSensorReadings(p.data.RawSensor(), readings)
		}),
	}
}

// Process derives the processed tables from the raw datasets and, when
// enabled and everything succeeded, uploads them to HDFS. The upload is
// skipped entirely if any dataset failed.
func (p *Pipeline) Process(ctx context.Context) []Result {
	results := []Result{
		p.step("process_web_logs", func() (int, error) {
			raw, err := process.ReadWebLogs(p.data.RawWebLogs())
			if err != nil {
				return 0, err
			}
			processed, err := process.WebLogs(raw)
			if err != nil {
				return 0, err
			}
			return len(processed), process.WriteWebLogs(p.data.ProcessedWebLogs(), processed)
		}),
		p.step("process_social_posts", func() (int, error) {
			raw, err := process.ReadSocialPosts(p.data.RawSocial())
			if err != nil {
				return 0, err
			}
			processed, err := process.SocialPosts(raw)
			if err != nil {
				return 0, err
			}
			return len(processed), process.WriteSocialPosts(p.data.ProcessedSocial(), processed)
		}),
		p.step("process_sensor_readings", func() (int, error) {
			raw, err := process.ReadSensorReadings(p.data.RawSensor())
			if err != nil {
				return 0, err
			}
			processed, err := process.SensorReadings(raw)
			if err != nil {
				return 0, err
			}
			return len(processed), process.WriteSensorReadings(p.data.ProcessedSensor(), processed)
		}),
	}

	if p.uploader == nil {
		return results
	}
	for _, r := range results {
		if !r.Ok() {
			p.log.Warn("skipping HDFS upload", "reason", "processing failures")
			return results
		}
	}

	files := []string{
		p.data.ProcessedWebLogs(),
		p.data.ProcessedSocial(),
		p.data.ProcessedSensor(),
	}
	results = append(results, p.step("hdfs_upload", func() (int, error) {
		err := hdfs.UploadAll(ctx, p.uploader, files, p.hdfsCfg.WarehouseDir, p.hdfsCfg.TmpDir)
		return len(files), err
	}))
	return results
}

// Aggregate computes the five summary tables over the processed datasets
// and writes them as headerless exports, one Result per export.
func (p *Pipeline) Aggregate(ctx context.Context) []Result {
	web, webErr := process.ReadProcessedWebLogs(p.data.ProcessedWebLogs())
	social, socialErr := process.ReadProcessedSocialPosts(p.data.ProcessedSocial())
	sensor, sensorErr := process.ReadProcessedSensorReadings(p.data.ProcessedSensor())

	return []Result{
		p.export(model.ExportWebTraffic, webErr, func() [][]string {
			return aggregate.EndpointRows(aggregate.ByEndpoint(web))
		}),
		p.export(model.ExportWebHourly, webErr, func() [][]string {
			return aggregate.HourlyRows(aggregate.ByHour(web))
		}),
		p.export(model.ExportSocial, socialErr, func() [][]string {
			return aggregate.SocialRows(aggregate.SocialDaily(social))
		}),
		p.export(model.ExportSensor, sensorErr, func() [][]string {
			return aggregate.SensorRows(aggregate.SensorDaily(sensor))
		}),
		p.exportCorrelation(web, webErr, social, socialErr),
	}
}

// Visualize reads the exports back, enriches them with calendar columns,
// writes per-dataset CSVs and the manifest. Absent exports are skipped
// with a failed Result; the manifest covers whatever loaded.
func (p *Pipeline) Visualize(ctx context.Context) []Result {
	var results []Result
	var datasets []visualize.Dataset

	for _, spec := range visualize.Specs {
		stage := "visualize_" + spec.Name
		ds, err := visualize.Load(p.data.ExportsDir(), spec)
		if err == nil {
			ds, err = visualize.Enrich(ds)
		}
		if err == nil {
			err = visualize.WriteCSV(p.data.VisualizationDir(), ds)
		}
		if err != nil {
			results = append(results, p.fail(stage, err))
			continue
		}
		datasets = append(datasets, ds)
		results = append(results, p.ok(stage, len(ds.Rows)))
	}

	m := visualize.NewManifest(datasets, p.data.VisualizationDir(), p.now())
	if err := visualize.WriteManifest(p.data.VisualizationDir(), m); err != nil {
		results = append(results, p.fail("visualize_manifest", err))
	} else {
		results = append(results, p.ok("visualize_manifest", len(datasets)))
	}
	return results
}

// Run executes all four stages in order and returns the combined failures,
// nil when the whole pipeline succeeded.
func (p *Pipeline) Run(ctx context.Context) error {
	var all []Result
	all = append(all, p.Generate(ctx)...)
	all = append(all, p.Process(ctx)...)
	all = append(all, p.Aggregate(ctx)...)
	all = append(all, p.Visualize(ctx)...)
	return Failed(all)
}

func (p *Pipeline) step(stage string, fn func() (int, error)) Result {
	records, err := fn()
	if err != nil {
		return p.fail(stage, err)
	}
	return p.ok(stage, records)
}

func (p *Pipeline) export(name string, loadErr error, build func() [][]string) Result {
	stage := "aggregate_" + name
	if loadErr != nil {
		return p.fail(stage, loadErr)
	}
	rows := build()
	if err := aggregate.WriteExport(p.data.ExportDir(name), rows); err != nil {
		return p.fail(stage, err)
	}
	return p.ok(stage, len(rows))
}

func (p *Pipeline) exportCorrelation(web []model.ProcessedWebLog, webErr error,
	social []model.ProcessedSocialPost, socialErr error) Result {

	stage := "aggregate_" + model.ExportCorrelation
	if err := errors.CombineErrors(webErr, socialErr); err != nil {
		return p.fail(stage, err)
	}
	rows, err := aggregate.Correlate(web, social)
	if err != nil {
		return p.fail(stage, err)
	}
	encoded := aggregate.CorrelationRows(rows)
	if err := aggregate.WriteExport(p.data.ExportDir(model.ExportCorrelation), encoded); err != nil {
		return p.fail(stage, err)
	}
	return p.ok(stage, len(encoded))
}

func (p *Pipeline) ok(stage string, records int) Result {
	p.log.Info("stage complete", "stage", stage, "records", records)
	return Result{Stage: stage, Records: records}
}

func (p *Pipeline) fail(stage string, err error) Result {
	p.log.Error("stage failed", "stage", stage, "err", err)
	return Result{Stage: stage, Err: err}
}
