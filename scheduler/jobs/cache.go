package jobs

import (
	"context"
	"fmt"
	"time"

	"clashfinder/pkg/logger"
)

const revalidationTimeout = 2 * time.Minute

// AssetRevalidator refreshes the stored DDragon catalog.
type AssetRevalidator interface {
	Revalidate(ctx context.Context, force bool) (string, error)
}

// RevalidateAssets stores the catalog of the latest patch when the stored one is outdated.
func RevalidateAssets(revalidator AssetRevalidator, log *logger.Logger) error {
	log.Infof("Starting asset revalidation")

	ctx, cancel := context.WithTimeout(context.Background(), revalidationTimeout)
	defer cancel()

	version, err := revalidator.Revalidate(ctx, false)
	if err != nil {
		log.Errorf("Error revalidating the assets: %v", err)
		return fmt.Errorf("couldn't revalidate the assets: %w", err)
	}

	log.Infof("Asset revalidation completed, catalog on version %s", version)
	return nil
}
