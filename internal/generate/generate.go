package generate

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/crimson-sun/datapipe/internal/model"
)

// Window is how far back generated timestamps reach from now.
const Window = 7 * 24 * time.Hour

// Generator produces synthetic datasets from a single seedable random
// source, so fixtures are reproducible under a fixed seed.
type Generator struct {
	faker *gofakeit.Faker
	rng   *rand.Rand
	now   time.Time
}

// New creates a Generator. Seed 0 derives a seed from the clock.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		faker: gofakeit.New(seed),
		rng:   rand.New(rand.NewSource(int64(seed))),
		now:   time.Now(),
	}
}

// WebLogs produces n synthetic web server access log records.
// Roughly 65% of records have no user id.
func (g *Generator) WebLogs(n int) []model.WebLogRecord {
	records := make([]model.WebLogRecord, 0, n)
	for i := 0; i < n; i++ {
		userID := ""
		if g.rng.Float64() >= 0.65 {
			userID = g.uuid()
		}
		records = append(records, model.WebLogRecord{
			Timestamp:    g.timestamp().Format(model.TimestampLayout),
			IPAddress:    g.faker.IPv4Address(),
			UserID:       userID,
			Method:       pick(g.rng, model.HTTPMethods),
			Endpoint:     pick(g.rng, model.Endpoints),
			StatusCode:   pick(g.rng, model.StatusCodes),
			ResponseTime: roundTo(g.faker.Float64Range(0.1, 2.0), 3),
			UserAgent:    g.faker.UserAgent(),
		})
	}
	return records
}

// SocialPosts produces n synthetic social media posts.
func (g *Generator) SocialPosts(n int) []model.SocialPost {
	posts := make([]model.SocialPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, model.SocialPost{
			PostID:     g.uuid(),
			UserHandle: g.faker.Username(),
			Timestamp:  g.timestamp().Format(model.ISOTimestampLayout),
			Content:    g.content(280),
			Likes:      g.rng.Intn(1001),
			Shares:     g.rng.Intn(201),
			Comments:   g.rng.Intn(51),
			Sentiment:  pick(g.rng, model.Sentiments),
			Category:   pick(g.rng, model.Categories),
			Platform:   pick(g.rng, model.Platforms),
		})
	}
	return posts
}

// SensorReadings produces n synthetic sensor readings. Value ranges depend
// on sensor type; roughly 5% of readings carry an error status.
func (g *Generator) SensorReadings(n int) []model.SensorReading {
	readings := make([]model.SensorReading, 0, n)
	for i := 0; i < n; i++ {
		sensorType := pick(g.rng, model.SensorTypes)
		status := model.StatusActive
		if g.rng.Float64() < 0.05 {
			status = "error"
		}
		readings = append(readings, model.SensorReading{
			Timestamp:    g.timestamp().Format(model.TimestampLayout),
			SensorID:     fmt.Sprintf("SENS-%d", 1000+g.rng.Intn(9000)),
			SensorType:   sensorType,
			Location:     pick(g.rng, model.Locations),
			Value:        g.sensorValue(sensorType),
			BatteryLevel: 10 + g.rng.Intn(91),
			Status:       status,
		})
	}
	return readings
}

func (g *Generator) sensorValue(sensorType string) float64 {
	switch sensorType {
	case "temperature":
		return roundTo(g.faker.Float64Range(18.0, 28.0), 1)
	case "humidity":
		return roundTo(g.faker.Float64Range(30.0, 70.0), 1)
	case "pressure":
		return roundTo(g.faker.Float64Range(980.0, 1020.0), 1)
	case "light":
		return roundTo(g.faker.Float64Range(200, 800), 0)
	default: // co2
		return roundTo(g.faker.Float64Range(400, 1200), 0)
	}
}

// timestamp returns a uniformly distributed time in the trailing window.
func (g *Generator) timestamp() time.Time {
	offset := time.Duration(g.rng.Int63n(int64(Window)))
	return g.now.Add(-offset)
}

// content builds post text up to maxChars characters.
func (g *Generator) content(maxChars int) string {
	s := g.faker.Sentence(g.rng.Intn(33) + 8)
	if len(s) > maxChars {
		s = s[:maxChars]
	}
	return s
}

// uuid draws identifier bytes from the generator's own random source, so
// ids stay deterministic under a fixed seed.
func (g *Generator) uuid() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// math/rand readers do not fail.
		panic(err)
	}
	return id.String()
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
