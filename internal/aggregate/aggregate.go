// Package aggregate computes the grouped summary tables over the processed
// datasets. Every aggregate is recomputed from scratch; outputs are sorted
// by their grouping key so export files are deterministic.
package aggregate

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/crimson-sun/datapipe/internal/model"
)

// ErrNoOverlap reports a correlation join that produced no rows. The
// original pipeline substituted fabricated placeholder metrics here; that
// silently invents data, so the failure is surfaced instead.
var ErrNoOverlap = errors.New("no overlapping dates between web and social rollups")

// ByEndpoint summarizes web traffic per (date, endpoint).
func ByEndpoint(logs []model.ProcessedWebLog) []model.EndpointTraffic {
	type acc struct {
		total    int
		errs     int
		sumRT    float64
		visitors map[string]struct{}
	}
	groups := map[[2]string]*acc{}
	for _, l := range logs {
		key := [2]string{l.Date, l.Endpoint}
		a := groups[key]
		if a == nil {
			a = &acc{visitors: map[string]struct{}{}}
			groups[key] = a
		}
		a.total++
		if l.IsError {
			a.errs++
		}
		a.sumRT += l.ResponseTime
		a.visitors[l.IPAddress] = struct{}{}
	}

	out := make([]model.EndpointTraffic, 0, len(groups))
	for key, a := range groups {
		out = append(out, model.EndpointTraffic{
			Date:            key[0],
			Endpoint:        key[1],
			TotalRequests:   a.total,
			ErrorCount:      a.errs,
			AvgResponseTime: a.sumRT / float64(a.total),
			UniqueVisitors:  len(a.visitors),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Endpoint < out[j].Endpoint
	})
	return out
}

// ByHour summarizes web traffic per (date, hour).
func ByHour(logs []model.ProcessedWebLog) []model.HourlyTraffic {
	type key struct {
		date string
		hour int
	}
	type acc struct {
		total int
		errs  int
		sumRT float64
	}
	groups := map[key]*acc{}
	for _, l := range logs {
		k := key{l.Date, l.Hour}
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.total++
		if l.IsError {
			a.errs++
		}
		a.sumRT += l.ResponseTime
	}

	out := make([]model.HourlyTraffic, 0, len(groups))
	for k, a := range groups {
		out = append(out, model.HourlyTraffic{
			Date:            k.date,
			Hour:            k.hour,
			TotalRequests:   a.total,
			ErrorCount:      a.errs,
			AvgResponseTime: a.sumRT / float64(a.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// SocialDaily summarizes posts per (date, platform, category).
func SocialDaily(posts []model.ProcessedSocialPost) []model.SocialEngagement {
	type acc struct {
		posts         int
		likes         int
		shares        int
		comments      int
		sumEngagement float64
		sumSentiment  float64
	}
	groups := map[[3]string]*acc{}
	for _, p := range posts {
		key := [3]string{p.Date, p.Platform, p.Category}
		a := groups[key]
		if a == nil {
			a = &acc{}
			groups[key] = a
		}
		a.posts++
		a.likes += p.Likes
		a.shares += p.Shares
		a.comments += p.Comments
		a.sumEngagement += float64(p.EngagementScore)
		a.sumSentiment += float64(p.SentimentScore)
	}

	out := make([]model.SocialEngagement, 0, len(groups))
	for key, a := range groups {
		out = append(out, model.SocialEngagement{
			Date:          key[0],
			Platform:      key[1],
			Category:      key[2],
			PostCount:     a.posts,
			TotalLikes:    a.likes,
			TotalShares:   a.shares,
			TotalComments: a.comments,
			AvgEngagement: a.sumEngagement / float64(a.posts),
			AvgSentiment:  a.sumSentiment / float64(a.posts),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		return a.Category < b.Category
	})
	return out
}

// SensorDaily summarizes readings per (date, sensor type, location).
func SensorDaily(readings []model.ProcessedSensorReading) []model.SensorSummary {
	type acc struct {
		count    int
		active   int
		sum      float64
		min, max float64
	}
	groups := map[[3]string]*acc{}
	for _, r := range readings {
		key := [3]string{r.Date, r.SensorType, r.Location}
		a := groups[key]
		if a == nil {
			a = &acc{min: r.Value, max: r.Value}
			groups[key] = a
		}
		a.count++
		if r.IsActive {
			a.active++
		}
		a.sum += r.Value
		if r.Value < a.min {
			a.min = r.Value
		}
		if r.Value > a.max {
			a.max = r.Value
		}
	}

	out := make([]model.SensorSummary, 0, len(groups))
	for key, a := range groups {
		out = append(out, model.SensorSummary{
			Date:           key[0],
			SensorType:     key[1],
			Location:       key[2],
			ReadingCount:   a.count,
			AvgValue:       a.sum / float64(a.count),
			MinValue:       a.min,
			MaxValue:       a.max,
			ActiveReadings: a.active,
			ErrorReadings:  a.count - a.active,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.SensorType != b.SensorType {
			return a.SensorType < b.SensorType
		}
		return a.Location < b.Location
	})
	return out
}

// Correlate inner-joins the per-date web rollup with the per-date social
// rollup. A join with no overlapping dates returns ErrNoOverlap.
func Correlate(logs []model.ProcessedWebLog, posts []model.ProcessedSocialPost) ([]model.Correlation, error) {
	web := webDaily(logs)
	social := socialDaily(posts)

	dates := make([]string, 0, len(web))
	for date := range web {
		if _, ok := social[date]; ok {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return nil, ErrNoOverlap
	}
	sort.Strings(dates)

	out := make([]model.Correlation, 0, len(dates))
	for _, date := range dates {
		w, s := web[date], social[date]
		out = append(out, model.Correlation{
			Date:            date,
			TotalRequests:   w.TotalRequests,
			ErrorCount:      w.ErrorCount,
			AvgResponseTime: w.AvgResponseTime,
			PostCount:       s.PostCount,
			TotalLikes:      s.TotalLikes,
			TotalShares:     s.TotalShares,
			TotalComments:   s.TotalComments,
			AvgEngagement:   s.AvgEngagement,
			AvgSentiment:    s.AvgSentiment,
		})
	}
	return out, nil
}

type webRollup struct {
	TotalRequests   int
	ErrorCount      int
	AvgResponseTime float64
}

func webDaily(logs []model.ProcessedWebLog) map[string]webRollup {
	type acc struct {
		total int
		errs  int
		sumRT float64
	}
	groups := map[string]*acc{}
	for _, l := range logs {
		a := groups[l.Date]
		if a == nil {
			a = &acc{}
			groups[l.Date] = a
		}
		a.total++
		if l.IsError {
			a.errs++
		}
		a.sumRT += l.ResponseTime
	}

	out := make(map[string]webRollup, len(groups))
	for date, a := range groups {
		out[date] = webRollup{
			TotalRequests:   a.total,
			ErrorCount:      a.errs,
			AvgResponseTime: a.sumRT / float64(a.total),
		}
	}
	return out
}

type socialRollup struct {
	PostCount     int
	TotalLikes    int
	TotalShares   int
	TotalComments int
	AvgEngagement float64
	AvgSentiment  float64
}

func socialDaily(posts []model.ProcessedSocialPost) map[string]socialRollup {
	type acc struct {
		posts         int
		likes         int
		shares        int
		comments      int
		sumEngagement float64
		sumSentiment  float64
	}
	groups := map[string]*acc{}
	for _, p := range posts {
		a := groups[p.Date]
		if a == nil {
			a = &acc{}
			groups[p.Date] = a
		}
		a.posts++
		a.likes += p.Likes
		a.shares += p.Shares
		a.comments += p.Comments
		a.sumEngagement += float64(p.EngagementScore)
		a.sumSentiment += float64(p.SentimentScore)
	}

	out := make(map[string]socialRollup, len(groups))
	for date, a := range groups {
		out[date] = socialRollup{
			PostCount:     a.posts,
			TotalLikes:    a.likes,
			TotalShares:   a.shares,
			TotalComments: a.comments,
			AvgEngagement: a.sumEngagement / float64(a.posts),
			AvgSentiment:  a.sumSentiment / float64(a.posts),
		}
	}
	return out
}
