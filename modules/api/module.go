package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/cache"
	"github.com/example/taskboard/modules/task"
)

// Handlers contains the HTTP handlers for all routes.
type Handlers struct {
	authContainer      mono.ServiceContainer
	taskContainer      mono.ServiceContainer
	listContainer      mono.ServiceContainer
	analyticsContainer mono.ServiceContainer
	taskAdapter        task.TaskPort
	cache              *cache.Cache
}

// APIModule is the HTTP API module.
type APIModule struct {
	app      *fiber.App
	addr     string
	handlers *Handlers

	authAdapter auth.AuthPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	addr := os.Getenv("TASKBOARD_HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return &APIModule{
		addr:     addr,
		handlers: &Handlers{},
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "list", "analytics"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.handlers.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.handlers.taskContainer = container
		m.handlers.taskAdapter = task.NewTaskAdapter(container)
	case "list":
		m.handlers.listContainer = container
	case "analytics":
		m.handlers.analyticsContainer = container
	}
}

// SetCache wires the shared Redis cache for the stats route.
func (m *APIModule) SetCache(c *cache.Cache) {
	m.handlers.cache = c
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.handlers.authContainer == nil || m.handlers.taskContainer == nil ||
		m.handlers.listContainer == nil || m.handlers.analyticsContainer == nil {
		return fmt.Errorf("module dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	h := m.handlers

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.registerUser)
	authRoutes.Post("/login", h.login)
	authRoutes.Post("/refresh", h.refresh)

	// Everything below requires a valid access token.
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))

	protected.Post("/auth/logout", h.logout)
	protected.Get("/auth/profile", h.profile)
	protected.Put("/auth/profile", h.updateProfile)
	protected.Put("/auth/password", h.changePassword)

	tasks := protected.Group("/tasks")
	tasks.Get("/", h.listTasks)
	tasks.Post("/", h.createTask)
	tasks.Get("/search", h.searchTasks)
	tasks.Get("/due-today", h.tasksDueToday)
	tasks.Get("/due-this-week", h.tasksDueThisWeek)
	tasks.Get("/overdue", h.tasksOverdue)
	tasks.Put("/reorder", h.reorderTasks)
	tasks.Post("/bulk", h.bulkCreateTasks)
	tasks.Post("/bulk/complete", h.bulkCompleteTasks)
	tasks.Post("/bulk/delete", h.bulkDeleteTasks)
	tasks.Get("/:id", h.getTask)
	tasks.Put("/:id", h.updateTask)
	tasks.Delete("/:id", h.deleteTask)
	tasks.Patch("/:id/toggle", h.toggleTask)
	tasks.Patch("/:id/move", h.moveTask)
	tasks.Patch("/:id/priority", h.setTaskPriority)
	tasks.Patch("/:id/deadline", h.setTaskDeadline)
	tasks.Post("/:id/duplicate", h.duplicateTask)

	lists := protected.Group("/lists")
	lists.Get("/", h.listLists)
	lists.Post("/", h.createList)
	lists.Get("/:id", h.getList)
	lists.Put("/:id", h.updateList)
	lists.Delete("/:id", h.deleteList)
	lists.Get("/:id/tasks", h.listTasksOfList)
	lists.Get("/:id/stats", h.listStats)
	lists.Post("/:id/duplicate", h.duplicateList)
	lists.Post("/:id/archive", h.archiveList)
	lists.Post("/:id/unarchive", h.unarchiveList)

	analyticsRoutes := protected.Group("/analytics")
	analyticsRoutes.Get("/summary", h.analyticsSummary)
	analyticsRoutes.Get("/trend", h.completionTrend)
	analyticsRoutes.Get("/cache-stats", h.cacheStats)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
