package model

// Fixed value sets used by the generator. The aggregation and visualization
// stages treat these as open sets; only the generator samples from them.
var (
	HTTPMethods = []string{"GET", "POST", "PUT", "DELETE"}
	StatusCodes = []int{200, 201, 204, 400, 403, 404, 500}
	Endpoints   = []string{"/home", "/about", "/contact", "/products", "/services", "/blog", "/login", "/register"}

	Sentiments = []string{"positive", "neutral", "negative"}
	Categories = []string{"product", "service", "support", "general"}
	Platforms  = []string{"twitter", "facebook", "instagram", "linkedin"}

	SensorTypes = []string{"temperature", "humidity", "pressure", "light", "co2"}
	Locations   = []string{"room1", "room2", "room3", "outside", "basement"}
)

// AnonymousUserID is the sentinel filled in for missing user identifiers.
const AnonymousUserID = "anonymous"

// Timestamp layouts used across the pipeline. Raw CSV files carry
// TimestampLayout; the raw social JSON carries ISOTimestampLayout.
const (
	TimestampLayout    = "2006-01-02 15:04:05"
	ISOTimestampLayout = "2006-01-02T15:04:05"
	DateLayout         = "2006-01-02"
)
