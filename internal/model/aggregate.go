package model

// Aggregate row types. Field order is the positional column order of the
// headerless export files, so the column lists below must stay in sync.

// EndpointTraffic is the per-(date, endpoint) web traffic summary.
type EndpointTraffic struct {
	Date            string
	Endpoint        string
	TotalRequests   int
	ErrorCount      int
	AvgResponseTime float64
	UniqueVisitors  int
}

// HourlyTraffic is the per-(date, hour) web traffic summary.
type HourlyTraffic struct {
	Date            string
	Hour            int
	TotalRequests   int
	ErrorCount      int
	AvgResponseTime float64
}

// SocialEngagement is the per-(date, platform, category) social summary.
type SocialEngagement struct {
	Date          string
	Platform      string
	Category      string
	PostCount     int
	TotalLikes    int
	TotalShares   int
	TotalComments int
	AvgEngagement float64
	AvgSentiment  float64
}

// SensorSummary is the per-(date, sensor type, location) sensor summary.
type SensorSummary struct {
	Date           string
	SensorType     string
	Location       string
	ReadingCount   int
	AvgValue       float64
	MinValue       float64
	MaxValue       float64
	ActiveReadings int
	ErrorReadings  int
}

// Correlation is the per-date join of the web and social daily rollups.
type Correlation struct {
	Date            string
	TotalRequests   int
	ErrorCount      int
	AvgResponseTime float64
	PostCount       int
	TotalLikes      int
	TotalShares     int
	TotalComments   int
	AvgEngagement   float64
	AvgSentiment    float64
}

// Dataset names used for visualization outputs and the manifest.
const (
	DatasetWebTraffic  = "web_traffic"
	DatasetWebHourly   = "web_hourly"
	DatasetSocial      = "social"
	DatasetSensor      = "sensor"
	DatasetCorrelation = "correlation"
)

// Export directory names under data/exports/, one per aggregate.
const (
	ExportWebTraffic  = "web_traffic_by_endpoint"
	ExportWebHourly   = "web_traffic_hourly"
	ExportSocial      = "social_engagement"
	ExportSensor      = "sensor_readings"
	ExportCorrelation = "correlation_data"
)

// ExportFileName is the fixed file name inside each export directory,
// mimicking the output convention of a distributed compute job.
const ExportFileName = "000000_0"

// Positional column names for each export, reattached by the visualization
// preparer when reading the headerless files back.
var (
	EndpointTrafficColumns = []string{"date", "endpoint", "total_requests", "error_count", "avg_response_time", "unique_visitors"}
	HourlyTrafficColumns   = []string{"date", "hour", "total_requests", "error_count", "avg_response_time"}
	SocialColumns          = []string{"date", "platform", "category", "post_count", "total_likes", "total_shares", "total_comments", "avg_engagement", "avg_sentiment"}
	SensorColumns          = []string{"date", "sensor_type", "location", "reading_count", "avg_value", "min_value", "max_value", "active_readings", "error_readings"}
	CorrelationColumns     = []string{"date", "total_requests", "error_count", "avg_response_time", "post_count", "total_likes", "total_shares", "total_comments", "avg_engagement", "avg_sentiment"}
)
