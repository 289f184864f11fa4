package analytics

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskboard/domain/analytics"
	taskdomain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/events"
)

func setupModule(t *testing.T) *AnalyticsModule {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.ActivityRecord{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &AnalyticsModule{db: db, repo: NewActivityRepository(db)}
}

func completeTask(t *testing.T, m *AnalyticsModule, userID string, priority taskdomain.Priority, at time.Time) {
	t.Helper()
	err := m.handleTaskCompleted(context.Background(), events.TaskCompletedEvent{
		TaskID:      "t-" + at.Format("150405.000000"),
		ListID:      "l1",
		UserID:      userID,
		Priority:    priority,
		CompletedAt: at,
	}, nil)
	if err != nil {
		t.Fatalf("handleTaskCompleted() error = %v", err)
	}
}

func TestSummary(t *testing.T) {
	m := setupModule(t)
	ctx := context.Background()
	now := time.Now()

	err := m.handleTaskCreated(ctx, events.TaskCreatedEvent{
		TaskID: "t1", ListID: "l1", UserID: "u1",
		Priority: taskdomain.PriorityHigh, CreatedAt: now,
	}, nil)
	if err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	completeTask(t, m, "u1", taskdomain.PriorityHigh, now)
	completeTask(t, m, "u1", taskdomain.PriorityLow, now.AddDate(0, 0, -2))
	completeTask(t, m, "u1", taskdomain.PriorityLow, now.AddDate(0, 0, -30))
	completeTask(t, m, "u2", taskdomain.PriorityHigh, now)

	err = m.handleTaskDeleted(ctx, events.TaskDeletedEvent{
		TaskID: "t9", ListID: "l1", UserID: "u1", DeletedAt: now,
	}, nil)
	if err != nil {
		t.Fatalf("handleTaskDeleted() error = %v", err)
	}

	summary, err := m.getSummary(ctx, SummaryRequest{UserID: "u1"}, nil)
	if err != nil {
		t.Fatalf("getSummary() error = %v", err)
	}

	if summary.TotalCreated != 1 {
		t.Errorf("TotalCreated = %d, expected 1", summary.TotalCreated)
	}
	if summary.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d, expected 3 (other user excluded)", summary.TotalCompleted)
	}
	if summary.TotalDeleted != 1 {
		t.Errorf("TotalDeleted = %d, expected 1", summary.TotalDeleted)
	}
	if summary.CompletedToday != 1 {
		t.Errorf("CompletedToday = %d, expected 1", summary.CompletedToday)
	}
	if summary.CompletedThisWeek != 2 {
		t.Errorf("CompletedThisWeek = %d, expected 2", summary.CompletedThisWeek)
	}
	if summary.PriorityBreakdown["high"] != 1 || summary.PriorityBreakdown["low"] != 2 {
		t.Errorf("PriorityBreakdown = %v, expected high:1 low:2", summary.PriorityBreakdown)
	}
}

func TestSummary_EmptyUser(t *testing.T) {
	m := setupModule(t)

	summary, err := m.getSummary(context.Background(), SummaryRequest{UserID: "nobody"}, nil)
	if err != nil {
		t.Fatalf("getSummary() error = %v", err)
	}
	if summary.TotalCreated != 0 || summary.TotalCompleted != 0 {
		t.Errorf("empty user summary = %+v, expected zeros", summary)
	}
}

func TestTrend(t *testing.T) {
	m := setupModule(t)
	ctx := context.Background()
	now := time.Now()

	completeTask(t, m, "u1", taskdomain.PriorityMedium, now)
	completeTask(t, m, "u1", taskdomain.PriorityMedium, now)
	completeTask(t, m, "u1", taskdomain.PriorityMedium, now.AddDate(0, 0, -1))
	// Outside a 7 day window.
	completeTask(t, m, "u1", taskdomain.PriorityMedium, now.AddDate(0, 0, -10))

	trend, err := m.getTrend(ctx, TrendRequest{UserID: "u1", Days: 7}, nil)
	if err != nil {
		t.Fatalf("getTrend() error = %v", err)
	}

	if len(trend.Points) != 7 {
		t.Fatalf("trend has %d points, expected 7", len(trend.Points))
	}

	last := trend.Points[6]
	if last.Date != now.Format("2006-01-02") || last.Completed != 2 {
		t.Errorf("today's point = %+v, expected 2 completions on %s", last, now.Format("2006-01-02"))
	}
	if trend.Points[5].Completed != 1 {
		t.Errorf("yesterday's point = %+v, expected 1 completion", trend.Points[5])
	}
	if trend.Points[0].Completed != 0 {
		t.Errorf("oldest point = %+v, expected zero", trend.Points[0])
	}
}

func TestTrendCacheKey_PerWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	week := trendCacheKey("u1", now, 7)
	fortnight := trendCacheKey("u1", now, 14)
	if week == fortnight {
		t.Errorf("7 and 14 day windows share cache key %q, they must not evict each other", week)
	}
	if week != "analytics:u1:trend:2026-03-14:7" {
		t.Errorf("trendCacheKey = %q, expected analytics:u1:trend:2026-03-14:7", week)
	}

	tomorrow := trendCacheKey("u1", now.AddDate(0, 0, 1), 7)
	if week == tomorrow {
		t.Error("cache key should roll over with the calendar day")
	}
}

func TestTrend_DayClamping(t *testing.T) {
	m := setupModule(t)
	ctx := context.Background()

	trend, err := m.getTrend(ctx, TrendRequest{UserID: "u1"}, nil)
	if err != nil {
		t.Fatalf("getTrend() error = %v", err)
	}
	if trend.Days != defaultTrendDays || len(trend.Points) != defaultTrendDays {
		t.Errorf("default days = %d with %d points, expected %d", trend.Days, len(trend.Points), defaultTrendDays)
	}

	trend, err = m.getTrend(ctx, TrendRequest{UserID: "u1", Days: 500}, nil)
	if err != nil {
		t.Fatalf("getTrend() error = %v", err)
	}
	if trend.Days != maxTrendDays {
		t.Errorf("oversized request days = %d, expected cap at %d", trend.Days, maxTrendDays)
	}
}
