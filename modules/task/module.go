package task

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

	domain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/events"
	"github.com/example/taskboard/modules/list"
)

// TaskModule provides task management services (core domain).
type TaskModule struct {
	db       *gorm.DB
	repo     *TaskRepository
	listPort list.ListPort
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.EventConsumerModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("TASKBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &TaskModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies returns the modules this module depends on.
func (m *TaskModule) Dependencies() []string {
	return []string{"list"}
}

// SetDependencyServiceContainer receives service containers of dependencies.
func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "list" {
		m.listPort = list.NewListAdapter(container)
	}
}

// SetEventBus receives the application event bus.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskReopenedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
		events.TaskMovedV1.ToBase(),
	}
}

// RegisterEventConsumers subscribes to list events: deleting a list
// cascades to its tasks, duplicating one copies them.
func (m *TaskModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.ListDeletedV1, m.handleListDeleted, m); err != nil {
		return fmt.Errorf("failed to register ListDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ListDuplicatedV1, m.handleListDuplicated, m); err != nil {
		return fmt.Errorf("failed to register ListDuplicated consumer: %w", err)
	}

	log.Printf("[task] Registered event consumers: ListDeleted, ListDuplicated")
	return nil
}

func (m *TaskModule) handleListDeleted(_ context.Context, event events.ListDeletedEvent, _ *mono.Msg) error {
	deleted, err := m.repo.DeleteByList(event.ListID)
	if err != nil {
		log.Printf("[task] Failed to cascade-delete tasks of list %s: %v", event.ListID, err)
		return err
	}

	log.Printf("[task] Deleted %d tasks of removed list %s", deleted, event.ListID)
	return nil
}

// handleListDuplicated copies the source list's tasks into the freshly
// duplicated list, preserving titles, state and board order.
func (m *TaskModule) handleListDuplicated(_ context.Context, event events.ListDuplicatedEvent, _ *mono.Msg) error {
	copied, err := m.repo.CopyToList(event.SourceListID, event.NewListID, event.UserID)
	if err != nil {
		log.Printf("[task] Failed to copy tasks of duplicated list %s: %v", event.SourceListID, err)
		return err
	}

	log.Printf("[task] Copied %d tasks from list %s to %s", copied, event.SourceListID, event.NewListID)
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	handlers := map[string]func() error{
		"create-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "create-task", json.Unmarshal, json.Marshal, m.createTask)
		},
		"get-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "get-task", json.Unmarshal, json.Marshal, m.getTask)
		},
		"update-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "update-task", json.Unmarshal, json.Marshal, m.updateTask)
		},
		"delete-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask)
		},
		"list-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks)
		},
		"search-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "search-tasks", json.Unmarshal, json.Marshal, m.searchTasks)
		},
		"toggle-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "toggle-task", json.Unmarshal, json.Marshal, m.toggleTask)
		},
		"move-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "move-task", json.Unmarshal, json.Marshal, m.moveTask)
		},
		"reorder-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "reorder-tasks", json.Unmarshal, json.Marshal, m.reorderTasks)
		},
		"duplicate-task": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "duplicate-task", json.Unmarshal, json.Marshal, m.duplicateTask)
		},
		"set-task-priority": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "set-task-priority", json.Unmarshal, json.Marshal, m.setPriority)
		},
		"set-task-deadline": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "set-task-deadline", json.Unmarshal, json.Marshal, m.setDeadline)
		},
		"tasks-due-today": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "tasks-due-today", json.Unmarshal, json.Marshal, m.dueToday)
		},
		"tasks-due-this-week": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "tasks-due-this-week", json.Unmarshal, json.Marshal, m.dueThisWeek)
		},
		"tasks-overdue": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "tasks-overdue", json.Unmarshal, json.Marshal, m.overdue)
		},
		"list-scoped-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "list-scoped-tasks", json.Unmarshal, json.Marshal, m.tasksForList)
		},
		"bulk-create-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "bulk-create-tasks", json.Unmarshal, json.Marshal, m.bulkCreate)
		},
		"bulk-complete-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "bulk-complete-tasks", json.Unmarshal, json.Marshal, m.bulkComplete)
		},
		"bulk-delete-tasks": func() error {
			return helper.RegisterTypedRequestReplyService(
				container, "bulk-delete-tasks", json.Unmarshal, json.Marshal, m.bulkDelete)
		},
	}

	for name, register := range handlers {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[task] Registered %d services", len(handlers))
	return nil
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	if m.listPort == nil {
		return fmt.Errorf("listPort dependency not set")
	}
	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	m.repo = NewTaskRepository(db)

	log.Printf("[task] Module started (database: %s, depends on: list)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
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
