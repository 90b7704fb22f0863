package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	postgresout "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultLockTTLMinutes = 30

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustPrepareDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateReleaseExpiredLocksCommandHandler(),
		app.CreateAutoMoveExhaustedCommandHandler(),
		jobs.Schedules{
			LockReclaimer: configs.LockReclaimerSchedule,
			AutoMove:      configs.AutoMoveSchedule,
		},
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		LockTTLMinutes:        intEnvVariable("LOCK_TTL_MINUTES", defaultLockTTLMinutes),
		LockReclaimerSchedule: envOrDefault("LOCK_RECLAIMER_SCHEDULE", "*/5 * * * *"),
		AutoMoveSchedule:      envOrDefault("AUTO_MOVE_SCHEDULE", "*/10 * * * *"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnvVariable(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return v
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustPrepareDB(gormDB *gorm.DB) {
	if err := postgresout.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := postgresout.SeedDefaults(context.Background(), gormDB); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateAcquireLockCommandHandler(),
		app.CreateReleaseLockCommandHandler(),
		app.CreateNextOrderCommandHandler(),
		app.CreateDecideOrderCommandHandler(),
		app.CreateDistributeManualCommandHandler(),
		app.CreateDistributeAutoCommandHandler(),
		app.CreateSavePolicyCommandHandler(),
		app.CreateCreateCustomStatusCommandHandler(),
		app.CreateDeleteCustomStatusCommandHandler(),
		app.CreateGetFreeOrdersQueryHandler(),
		app.CreatePreviewDistributionQueryHandler(),
		app.CreateGetPolicyQueryHandler(),
		app.CreateGetStatusesQueryHandler(),
		app.CreateGetStatusHistoryQueryHandler(),
		time.Duration(configs.LockTTLMinutes)*time.Minute,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
