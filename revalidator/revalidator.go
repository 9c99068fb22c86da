package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"clashfinder/fetcher/assets"
	"clashfinder/pkg/config"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/redis"

	"github.com/joho/godotenv"
)

const usage = "usage: revalidator [check|force]"

// Check the stored DDragon catalog against the latest patch, or rebuild it.
// Without a command it revalidates only when outdated.
func main() {
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file, using the environment")
		}
	}

	command := "revalidate"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	client, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Couldn't connect to redis: %v", err)
	}
	defer client.Close()

	revalidator := assets.NewRevalidator(
		assets.NewDDragon(assets.DDragonURL),
		client,
		cfg.Assets.Language,
		logger.NewWithWriter(os.Stdout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, revalidator, command); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, revalidator *assets.Revalidator, command string) error {
	switch command {
	case "check":
		latest, outdated, err := revalidator.CheckForUpdate(ctx)
		if err != nil {
			return err
		}
		if outdated {
			fmt.Printf("Catalog is outdated, latest version is %s\n", latest)
		} else {
			fmt.Printf("Catalog is up to date on %s\n", latest)
		}
		return nil
	case "force", "revalidate":
		version, err := revalidator.Revalidate(ctx, command == "force")
		if err != nil {
			return fmt.Errorf("couldn't revalidate the catalog: %w", err)
		}
		fmt.Printf("Catalog stored on version %s\n", version)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}
