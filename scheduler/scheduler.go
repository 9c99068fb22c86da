package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clashfinder/fetcher/assets"
	"clashfinder/pkg/config"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/redis"
	"clashfinder/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file, using the environment")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	appLogger, err := logger.CreateLogger(cfg.Bucket, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Couldn't create the logger: %v", err)
	}
	defer appLogger.Close()

	client, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Couldn't connect to redis: %v", err)
	}
	defer client.Close()

	revalidator := assets.NewRevalidator(assets.NewDDragon(assets.DDragonURL), client, cfg.Assets.Language, appLogger)

	log.Println("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Register the asset revalidation job, on the same interval the api refreshes.
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Assets.RefreshInterval),
		gocron.NewTask(func() error {
			return jobs.RevalidateAssets(revalidator, appLogger)
		}),
		gocron.WithName("asset-revalidation"),
		gocron.WithTags("cache"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to create asset job: %v", err)
	}

	// Register the log upload job - once per day at midnight.
	if cfg.Bucket.Enabled() {
		_, err = s.NewJob(
			gocron.DailyJob(
				1,
				gocron.NewAtTimes(
					gocron.NewAtTime(0, 0, 0),
				),
			),
			gocron.NewTask(func() error {
				return jobs.UploadLogs(appLogger)
			}),
			gocron.WithName("log-upload"),
			gocron.WithTags("logs"),
		)
		if err != nil {
			log.Fatalf("Failed to create log upload job: %v", err)
		}
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		err := s.Shutdown()
		if err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Println("Shutting down scheduler...")
}
