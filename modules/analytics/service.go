package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"

	domain "github.com/example/taskboard/domain/analytics"
)

const (
	defaultTrendDays = 14
	maxTrendDays     = 90

	summaryCacheTTL = time.Minute
)

// getSummary handles the get-analytics-summary service request with a
// cache-aside read when Redis is available.
func (m *AnalyticsModule) getSummary(ctx context.Context, req SummaryRequest, _ *mono.Msg) (SummaryResponse, error) {
	cacheKey := "analytics:" + req.UserID + ":summary"

	if m.cache != nil {
		var cached SummaryResponse
		hit, err := m.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Printf("[analytics] Cache read failed, falling back to database: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	summary, err := m.buildSummary(req.UserID)
	if err != nil {
		return SummaryResponse{}, err
	}

	if m.cache != nil {
		if err := m.cache.SetWithTTL(ctx, cacheKey, summary, summaryCacheTTL); err != nil {
			log.Printf("[analytics] Cache write failed: %v", err)
		}
	}
	return summary, nil
}

func (m *AnalyticsModule) buildSummary(userID string) (SummaryResponse, error) {
	counts, err := m.repo.CountByType(userID)
	if err != nil {
		return SummaryResponse{}, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	completedToday, err := m.repo.CountCompletedSince(userID, midnight)
	if err != nil {
		return SummaryResponse{}, err
	}
	completedThisWeek, err := m.repo.CountCompletedSince(userID, midnight.AddDate(0, 0, -6))
	if err != nil {
		return SummaryResponse{}, err
	}
	breakdown, err := m.repo.CompletedPriorityBreakdown(userID)
	if err != nil {
		return SummaryResponse{}, err
	}

	return SummaryResponse{
		UserID:            userID,
		TotalCreated:      counts[domain.ActivityCreated],
		TotalCompleted:    counts[domain.ActivityCompleted],
		TotalReopened:     counts[domain.ActivityReopened],
		TotalDeleted:      counts[domain.ActivityDeleted],
		CompletedToday:    completedToday,
		CompletedThisWeek: completedThisWeek,
		PriorityBreakdown: breakdown,
		GeneratedAt:       now,
	}, nil
}

// getTrend handles the get-completion-trend service request.
func (m *AnalyticsModule) getTrend(ctx context.Context, req TrendRequest, _ *mono.Msg) (TrendResponse, error) {
	days := req.Days
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	cacheKey := trendCacheKey(req.UserID, time.Now(), days)
	var cached TrendResponse
	if m.cache != nil {
		hit, err := m.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Printf("[analytics] Cache read failed, falling back to database: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	trend, err := m.buildTrend(req.UserID, days)
	if err != nil {
		return TrendResponse{}, err
	}

	if m.cache != nil {
		if err := m.cache.SetWithTTL(ctx, cacheKey, trend, summaryCacheTTL); err != nil {
			log.Printf("[analytics] Cache write failed: %v", err)
		}
	}
	return trend, nil
}

// trendCacheKey scopes the cached trend to the day it was computed and
// the requested window, so different windows don't evict each other.
func trendCacheKey(userID string, now time.Time, days int) string {
	return fmt.Sprintf("analytics:%s:trend:%s:%d", userID, now.Format("2006-01-02"), days)
}

func (m *AnalyticsModule) buildTrend(userID string, days int) (TrendResponse, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	perDay, err := m.repo.CompletionsPerDay(userID, start)
	if err != nil {
		return TrendResponse{}, err
	}

	points := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, TrendPoint{Date: date, Completed: perDay[date]})
	}

	return TrendResponse{UserID: userID, Days: days, Points: points}, nil
}

// invalidateUser drops the user's cached aggregates after new activity.
func (m *AnalyticsModule) invalidateUser(userID string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.DeletePattern(context.Background(), "analytics:"+userID+":*"); err != nil {
		log.Printf("[analytics] Cache invalidation failed for user %s: %v", userID, err)
	}
}
