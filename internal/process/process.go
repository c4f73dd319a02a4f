package process

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/crimson-sun/datapipe/internal/model"
)

// WebLogs derives calendar fields and the error flag for raw web log
// records, filling missing user ids with the anonymous sentinel.
func WebLogs(records []model.WebLogRecord) ([]model.ProcessedWebLog, error) {
	out := make([]model.ProcessedWebLog, 0, len(records))
	for i, r := range records {
		ts, err := parseTimestamp(r.Timestamp)
		if err != nil {
			return nil, errors.Wrapf(err, "web log row %d", i)
		}
		if r.UserID == "" {
			r.UserID = model.AnonymousUserID
		}
		out = append(out, model.ProcessedWebLog{
			WebLogRecord: r,
			Date:         ts.Format(model.DateLayout),
			Hour:         ts.Hour(),
			IsError:      r.StatusCode >= 400,
		})
	}
	return out, nil
}

// SocialPosts derives calendar fields and the engagement/sentiment scores.
func SocialPosts(posts []model.SocialPost) ([]model.ProcessedSocialPost, error) {
	out := make([]model.ProcessedSocialPost, 0, len(posts))
	for i, p := range posts {
		ts, err := parseTimestamp(p.Timestamp)
		if err != nil {
			return nil, errors.Wrapf(err, "social post row %d", i)
		}
		out = append(out, model.ProcessedSocialPost{
			SocialPost:      p,
			Date:            ts.Format(model.DateLayout),
			Hour:            ts.Hour(),
			EngagementScore: model.EngagementScore(p.Likes, p.Shares, p.Comments),
			SentimentScore:  model.SentimentScore(p.Sentiment),
		})
	}
	return out, nil
}

// SensorReadings derives calendar fields, the active flag and the battery bucket.
func SensorReadings(readings []model.SensorReading) ([]model.ProcessedSensorReading, error) {
	out := make([]model.ProcessedSensorReading, 0, len(readings))
	for i, r := range readings {
		ts, err := parseTimestamp(r.Timestamp)
		if err != nil {
			return nil, errors.Wrapf(err, "sensor reading row %d", i)
		}
		out = append(out, model.ProcessedSensorReading{
			SensorReading:   r,
			Date:            ts.Format(model.DateLayout),
			Hour:            ts.Hour(),
			IsActive:        r.Status == model.StatusActive,
			BatteryCategory: model.BatteryCategory(r.BatteryLevel),
		})
	}
	return out, nil
}

// timestampLayouts are tried in order; raw CSVs use the first, the social
// JSON the second, the rest tolerate upstream variations.
var timestampLayouts = []string{
	model.TimestampLayout,
	model.ISOTimestampLayout,
	"2006-01-02T15:04:05.999999",
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errors.Newf("unparseable timestamp %q", s)
}
