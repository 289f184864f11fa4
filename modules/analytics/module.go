package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskboard/domain/analytics"
	"github.com/example/taskboard/events"
	"github.com/example/taskboard/modules/cache"
)

// AnalyticsModule consumes task lifecycle events and serves activity
// aggregates.
type AnalyticsModule struct {
	db     *gorm.DB
	repo   *ActivityRepository
	cache  *cache.Cache
	dbPath string
}

// Compile-time interface checks.
var _ mono.Module = (*AnalyticsModule)(nil)
var _ mono.ServiceProviderModule = (*AnalyticsModule)(nil)
var _ mono.EventConsumerModule = (*AnalyticsModule)(nil)
var _ mono.HealthCheckableModule = (*AnalyticsModule)(nil)

// NewModule creates a new AnalyticsModule.
func NewModule() *AnalyticsModule {
	dbPath := os.Getenv("TASKBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &AnalyticsModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *AnalyticsModule) Name() string {
	return "analytics"
}

// SetCache wires the shared Redis cache. Without it every read goes to
// the database.
func (m *AnalyticsModule) SetCache(c *cache.Cache) {
	m.cache = c
}

// RegisterEventConsumers subscribes to the task lifecycle events.
func (m *AnalyticsModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskReopenedV1, m.handleTaskReopened, m); err != nil {
		return fmt.Errorf("failed to register TaskReopened consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskMovedV1, m.handleTaskMoved, m); err != nil {
		return fmt.Errorf("failed to register TaskMoved consumer: %w", err)
	}

	log.Printf("[analytics] Registered event consumers: TaskCreated, TaskCompleted, TaskReopened, TaskDeleted, TaskMoved")
	return nil
}

func (m *AnalyticsModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	return m.record(&domain.ActivityRecord{
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		ListID:     event.ListID,
		Type:       domain.ActivityCreated,
		Priority:   string(event.Priority),
		OccurredAt: event.CreatedAt,
	})
}

func (m *AnalyticsModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	return m.record(&domain.ActivityRecord{
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		ListID:     event.ListID,
		Type:       domain.ActivityCompleted,
		Priority:   string(event.Priority),
		OccurredAt: event.CompletedAt,
	})
}

func (m *AnalyticsModule) handleTaskReopened(_ context.Context, event events.TaskReopenedEvent, _ *mono.Msg) error {
	return m.record(&domain.ActivityRecord{
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		ListID:     event.ListID,
		Type:       domain.ActivityReopened,
		OccurredAt: event.ReopenedAt,
	})
}

func (m *AnalyticsModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	return m.record(&domain.ActivityRecord{
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		ListID:     event.ListID,
		Type:       domain.ActivityDeleted,
		OccurredAt: event.DeletedAt,
	})
}

func (m *AnalyticsModule) handleTaskMoved(_ context.Context, event events.TaskMovedEvent, _ *mono.Msg) error {
	return m.record(&domain.ActivityRecord{
		UserID:     event.UserID,
		TaskID:     event.TaskID,
		ListID:     event.ToListID,
		Type:       domain.ActivityMoved,
		OccurredAt: event.MovedAt,
	})
}

func (m *AnalyticsModule) record(rec *domain.ActivityRecord) error {
	if err := m.repo.Record(rec); err != nil {
		log.Printf("[analytics] Failed to record %s activity for user %s: %v", rec.Type, rec.UserID, err)
		return err
	}
	m.invalidateUser(rec.UserID)
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *AnalyticsModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-analytics-summary", json.Unmarshal, json.Marshal, m.getSummary,
	); err != nil {
		return fmt.Errorf("failed to register get-analytics-summary service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-completion-trend", json.Unmarshal, json.Marshal, m.getTrend,
	); err != nil {
		return fmt.Errorf("failed to register get-completion-trend service: %w", err)
	}

	log.Printf("[analytics] Registered services: get-analytics-summary, get-completion-trend")
	return nil
}

// Start initializes the analytics module.
func (m *AnalyticsModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.ActivityRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	m.repo = NewActivityRepository(db)

	if m.cache == nil {
		log.Println("[analytics] Running without cache, aggregates are computed per request")
	}
	log.Printf("[analytics] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *AnalyticsModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[analytics] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AnalyticsModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"cached":   m.cache != nil,
		},
	}
}
