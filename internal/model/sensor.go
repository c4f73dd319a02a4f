package model

// SensorReading is one synthetic IoT sensor measurement.
type SensorReading struct {
	Timestamp    string  `csv:"timestamp" json:"timestamp"`
	SensorID     string  `csv:"sensor_id" json:"sensor_id"`
	SensorType   string  `csv:"sensor_type" json:"sensor_type"`
	Location     string  `csv:"location" json:"location"`
	Value        float64 `csv:"value" json:"value"`
	BatteryLevel int     `csv:"battery_level" json:"battery_level"`
	Status       string  `csv:"status" json:"status"`
}

// ProcessedSensorReading is a sensor reading with derived flags and the
// battery bucket attached.
type ProcessedSensorReading struct {
	SensorReading
	Date            string `csv:"date" json:"date"`
	Hour            int    `csv:"hour" json:"hour"`
	IsActive        bool   `csv:"is_active" json:"is_active"`
	BatteryCategory string `csv:"battery_category" json:"battery_category"`
}

// StatusActive is the sensor status that marks a healthy reading.
const StatusActive = "active"

// BatteryCategory buckets a battery percentage. Bucket edges are
// left-exclusive, right-inclusive: (0,20]=critical, (20,50]=low,
// (50,80]=medium, (80,100]=high. Values outside (0,100] bucket to "".
func BatteryCategory(level int) string {
	switch {
	case level <= 0 || level > 100:
		return ""
	case level <= 20:
		return "critical"
	case level <= 50:
		return "low"
	case level <= 80:
		return "medium"
	default:
		return "high"
	}
}
