package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all datapipe configuration.
type Config struct {
	Data     DataConfig
	Generate GenerateConfig
	HDFS     HDFSConfig
	Log      LogConfig
}

// DataConfig holds the data directory root; every pipeline path hangs off it.
type DataConfig struct {
	Dir string
}

// GenerateConfig holds synthetic dataset sizes and the random seed.
type GenerateConfig struct {
	WebLogCount        int
	SocialPostCount    int
	SensorReadingCount int
	Seed               uint64 // 0 = derive from the clock
}

// HDFSConfig holds settings for the docker-based HDFS upload step.
type HDFSConfig struct {
	Upload       bool   // when false, processing skips the upload entirely
	Container    string // docker container running the namenode
	WarehouseDir string // HDFS destination directory
	TmpDir       string // staging directory inside the container
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Data: DataConfig{
			Dir: getenv("DATAPIPE_DATA_DIR", "data"),
		},
		Generate: GenerateConfig{
			WebLogCount:        getenvInt("DATAPIPE_WEB_LOG_COUNT", 2000),
			SocialPostCount:    getenvInt("DATAPIPE_SOCIAL_POST_COUNT", 1000),
			SensorReadingCount: getenvInt("DATAPIPE_SENSOR_READING_COUNT", 3000),
			Seed:               getenvUint("DATAPIPE_SEED", 0),
		},
		HDFS: HDFSConfig{
			Upload:       getenvBool("DATAPIPE_HDFS_UPLOAD", false),
			Container:    getenv("DATAPIPE_HDFS_CONTAINER", "namenode"),
			WarehouseDir: getenv("DATAPIPE_HDFS_DIR", "/user/hive/warehouse/raw_data"),
			TmpDir:       getenv("DATAPIPE_HDFS_TMP_DIR", "/tmp"),
		},
		Log: LogConfig{
			Level:  getenv("DATAPIPE_LOG_LEVEL", "info"),
			Format: getenv("DATAPIPE_LOG_FORMAT", "text"),
		},
	}
}

// Raw input paths.

func (d DataConfig) RawWebLogs() string {
	return filepath.Join(d.Dir, "raw", "logs", "web_access_logs.csv")
}

func (d DataConfig) RawSocial() string {
	return filepath.Join(d.Dir, "raw", "social", "social_data.json")
}

func (d DataConfig) RawSensor() string {
	return filepath.Join(d.Dir, "raw", "logs", "sensor_data.csv")
}

// Processed table paths.

func (d DataConfig) ProcessedWebLogs() string {
	return filepath.Join(d.Dir, "processed", "web_logs_processed.csv")
}

func (d DataConfig) ProcessedSocial() string {
	return filepath.Join(d.Dir, "processed", "social_data_processed.csv")
}

func (d DataConfig) ProcessedSensor() string {
	return filepath.Join(d.Dir, "processed", "sensor_data_processed.csv")
}

// ExportsDir returns the root directory for aggregate exports.
func (d DataConfig) ExportsDir() string {
	return filepath.Join(d.Dir, "exports")
}

// ExportDir returns the directory for one named aggregate export.
func (d DataConfig) ExportDir(name string) string {
	return filepath.Join(d.Dir, "exports", name)
}

// VisualizationDir returns the directory for visualization-ready outputs.
func (d DataConfig) VisualizationDir() string {
	return filepath.Join(d.Dir, "visualization")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
