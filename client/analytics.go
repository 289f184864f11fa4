package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AnalyticsService calls the /analytics endpoints.
type AnalyticsService struct {
	client *Client
}

// Summary returns the user's activity summary.
func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := s.client.do(ctx, http.MethodGet, "/analytics/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Trend returns the daily completion trend over the given number of
// days. Zero or negative days falls back to the server default.
func (s *AnalyticsService) Trend(ctx context.Context, days int) (*Trend, error) {
	var v url.Values
	if days > 0 {
		v = url.Values{}
		v.Set("days", strconv.Itoa(days))
	}
	var trend Trend
	if err := s.client.do(ctx, http.MethodGet, "/analytics/trend", v, nil, &trend); err != nil {
		return nil, err
	}
	return &trend, nil
}
