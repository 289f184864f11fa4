package api

import (
	"encoding/json"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/example/taskboard/modules/analytics"
)

// analyticsSummary handles GET /api/v1/analytics/summary.
func (h *Handlers) analyticsSummary(c *fiber.Ctx) error {
	req := analytics.SummaryRequest{UserID: currentUserID(c)}

	var resp analytics.SummaryResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.analyticsContainer, "get-analytics-summary",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// completionTrend handles GET /api/v1/analytics/trend?days=.
func (h *Handlers) completionTrend(c *fiber.Ctx) error {
	req := analytics.TrendRequest{
		UserID: currentUserID(c),
		Days:   c.QueryInt("days"),
	}

	var resp analytics.TrendResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.analyticsContainer, "get-completion-trend",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// cacheStats handles GET /api/v1/analytics/cache-stats.
func (h *Handlers) cacheStats(c *fiber.Ctx) error {
	if h.cache == nil {
		return c.JSON(fiber.Map{"enabled": false})
	}
	return c.JSON(fiber.Map{"enabled": true, "stats": h.cache.Stats()})
}
