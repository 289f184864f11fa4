package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/taskboard/middleware/ratelimit"
	analyticsmod "github.com/example/taskboard/modules/analytics"
	apimod "github.com/example/taskboard/modules/api"
	authmod "github.com/example/taskboard/modules/auth"
	cachemod "github.com/example/taskboard/modules/cache"
	listmod "github.com/example/taskboard/modules/list"
	taskmod "github.com/example/taskboard/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	redisAddr := os.Getenv("TASKBOARD_REDIS_ADDR")
	dbPath := getEnv("TASKBOARD_DB_PATH", "taskboard.db")
	httpAddr := getEnv("TASKBOARD_HTTP_ADDR", ":3000")

	log.Println("=== Taskboard ===")
	log.Printf("Database: %s", dbPath)
	log.Printf("HTTP: %s", httpAddr)
	if redisAddr != "" {
		log.Printf("Redis: %s", redisAddr)
	} else {
		log.Println("Redis: disabled (caching and rate limiting off)")
	}

	cacheModule := cachemod.NewModule()
	authModule := authmod.NewModule()
	listModule := listmod.NewModule()
	taskModule := taskmod.NewModule()
	analyticsModule := analyticsmod.NewModule()
	apiModule := apimod.NewModule()

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Middleware must be registered before regular modules so it can
	// intercept their service registrations.
	if redisAddr != "" {
		app.Register(ratelimit.New(
			ratelimit.WithRedisAddr(redisAddr),
		))
	}

	app.Register(cacheModule)
	app.Register(authModule)
	app.Register(listModule)
	app.Register(taskModule)
	app.Register(analyticsModule)
	app.Register(apiModule)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// The Redis cache is shared infrastructure rather than a service
	// dependency, so it is wired after start.
	if cacheModule.Enabled() {
		analyticsModule.SetCache(cacheModule.Cache())
		apiModule.SetCache(cacheModule.Cache())
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost%s/api/v1", httpAddr)
	log.Println("Press Ctrl+C to shutdown")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
