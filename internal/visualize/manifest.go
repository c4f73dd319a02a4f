package visualize

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/crimson-sun/datapipe/internal/model"
)

// ManifestFileName is the fixed name of the manifest inside the
// visualization directory.
const ManifestFileName = "tableau_metadata.json"

// ProjectName identifies the pipeline in the manifest.
const ProjectName = "Big Data Pipeline with Hadoop and Hive"

// Manifest describes the visualization-ready datasets for BI tools.
type Manifest struct {
	ProjectName string                 `json:"project_name"`
	GeneratedOn string                 `json:"generated_on"`
	Datasets    map[string]DatasetMeta `json:"datasets"`
}

// DatasetMeta describes one dataset entry in the manifest.
type DatasetMeta struct {
	Filename    string   `json:"filename"`
	RecordCount int      `json:"record_count"`
	Columns     []string `json:"columns"`
	SamplePath  string   `json:"sample_path"`
}

// NewManifest builds a manifest over the given datasets. Absent datasets
// simply have no entry.
func NewManifest(datasets []Dataset, dir string, now time.Time) Manifest {
	m := Manifest{
		ProjectName: ProjectName,
		GeneratedOn: now.Format(model.TimestampLayout),
		Datasets:    make(map[string]DatasetMeta, len(datasets)),
	}
	for _, ds := range datasets {
		m.Datasets[ds.Name] = DatasetMeta{
			Filename:    ds.Name + "_data.csv",
			RecordCount: len(ds.Rows),
			Columns:     ds.Columns,
			SamplePath:  path.Join(filepath.ToSlash(dir), ds.Name+"_data.csv"),
		}
	}
	return m
}

// WriteManifest writes the manifest as indented JSON into dir.
func WriteManifest(dir string, m Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}
	p := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", p)
	}
	return nil
}
