package list

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/taskboard/domain/list"
	"github.com/example/taskboard/events"
)

// ListModule provides list management services.
type ListModule struct {
	db       *gorm.DB
	repo     *ListRepository
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*ListModule)(nil)
var _ mono.ServiceProviderModule = (*ListModule)(nil)
var _ mono.EventEmitterModule = (*ListModule)(nil)
var _ mono.HealthCheckableModule = (*ListModule)(nil)

// NewModule creates a new ListModule.
func NewModule() *ListModule {
	dbPath := os.Getenv("TASKBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &ListModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *ListModule) Name() string {
	return "list"
}

// SetEventBus receives the application event bus.
func (m *ListModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *ListModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ListCreatedV1.ToBase(),
		events.ListDeletedV1.ToBase(),
		events.ListDuplicatedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *ListModule) RegisterServices(container mono.ServiceContainer) error {
	handlers := map[string]func() error{
		"create-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create-list", json.Unmarshal, json.Marshal, m.createList)
		},
		"get-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-list", json.Unmarshal, json.Marshal, m.getList)
		},
		"update-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update-list", json.Unmarshal, json.Marshal, m.updateList)
		},
		"delete-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete-list", json.Unmarshal, json.Marshal, m.deleteList)
		},
		"list-lists": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-lists", json.Unmarshal, json.Marshal, m.listLists)
		},
		"duplicate-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "duplicate-list", json.Unmarshal, json.Marshal, m.duplicateList)
		},
		"archive-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "archive-list", json.Unmarshal, json.Marshal, m.archiveList)
		},
		"unarchive-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "unarchive-list", json.Unmarshal, json.Marshal, m.unarchiveList)
		},
		"get-list-stats": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-list-stats", json.Unmarshal, json.Marshal, m.getListStats)
		},
		"validate-list": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "validate-list", json.Unmarshal, json.Marshal, m.validateList)
		},
	}

	for name, register := range handlers {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[list] Registered %d services", len(handlers))
	return nil
}

// Start initializes the list module.
func (m *ListModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[list] Warning: eventBus not set, events will not be published")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.List{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	m.repo = NewListRepository(db)

	log.Printf("[list] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *ListModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[list] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *ListModule) Health(_ context.Context) mono.HealthStatus {
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
		},
	}
}

func (m *ListModule) publishCreated(l *domain.List) {
	if m.eventBus == nil {
		return
	}
	event := events.ListCreatedEvent{
		ListID:    l.ID,
		UserID:    l.UserID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
	if err := events.ListCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		// Event publishing is best-effort; log but don't fail the operation
		log.Printf("[list] Warning: failed to publish ListCreated event for list %s: %v", l.ID, err)
	}
}

func (m *ListModule) publishDeleted(l *domain.List) {
	if m.eventBus == nil {
		return
	}
	event := events.ListDeletedEvent{
		ListID:    l.ID,
		UserID:    l.UserID,
		TaskCount: l.TaskCount,
		DeletedAt: time.Now(),
	}
	if err := events.ListDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[list] Warning: failed to publish ListDeleted event for list %s: %v", l.ID, err)
	}
}

func (m *ListModule) publishDuplicated(src, copy *domain.List) {
	if m.eventBus == nil {
		return
	}
	event := events.ListDuplicatedEvent{
		SourceListID: src.ID,
		NewListID:    copy.ID,
		UserID:       src.UserID,
		DuplicatedAt: copy.CreatedAt,
	}
	if err := events.ListDuplicatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[list] Warning: failed to publish ListDuplicated event for list %s: %v", src.ID, err)
	}
}
