package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clashfinder/fetcher/assets"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/models/catalog"
)

// CatalogCache keeps the DDragon names in memory and serves the name lookups.
// The catalog is read from the shared store, built from DDragon when missing.
type CatalogCache struct {
	current  atomic.Pointer[catalog.Catalog]
	ddragon  *assets.DDragon
	store    assets.KeyValueStore
	language string
	logger   *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCatalogCache creates a empty cache, Load must be called before serving.
// A nil store always builds from DDragon.
func NewCatalogCache(ddragon *assets.DDragon, store assets.KeyValueStore, language string, log *logger.Logger) *CatalogCache {
	if log == nil {
		log = logger.NewNop()
	}
	return &CatalogCache{
		ddragon:  ddragon,
		store:    store,
		language: language,
		logger:   log,
	}
}

// Load replaces the in memory catalog.
func (cc *CatalogCache) Load(ctx context.Context) error {
	if cc.store != nil {
		stored, err := assets.LoadCatalog(ctx, cc.store, cc.language)
		if err == nil {
			cc.set(stored)
			return nil
		}
		if !errors.Is(err, assets.ErrCatalogNotStored) {
			cc.logger.Warnf("Couldn't read the stored catalog, building from DDragon: %v", err)
		}
	}

	version, err := cc.ddragon.LatestVersion(ctx)
	if err != nil {
		return fmt.Errorf("couldn't get the latest version: %w", err)
	}

	// Already on the latest patch.
	if current := cc.current.Load(); current != nil && current.Version == version {
		return nil
	}

	built, err := cc.ddragon.BuildCatalog(ctx, version, cc.language)
	if err != nil {
		return err
	}
	cc.set(built)
	return nil
}

func (cc *CatalogCache) set(c *catalog.Catalog) {
	previous := cc.current.Swap(c)
	if previous == nil || previous.Version != c.Version {
		cc.logger.Infof("Catalog loaded on version %s", c.Version)
	}
}

// StartRefresh reloads the catalog on the interval until Close.
func (cc *CatalogCache) StartRefresh(interval time.Duration) {
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	cc.cancel = cancel

	cc.wg.Add(1)
	go func() {
		defer cc.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := cc.Load(ctx); err != nil {
					cc.logger.Warnf("Couldn't refresh the catalog: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close stops the refresh worker.
func (cc *CatalogCache) Close() {
	if cc.cancel != nil {
		cc.cancel()
	}
	cc.wg.Wait()
}

// Version returns the loaded patch, empty before the first load.
func (cc *CatalogCache) Version() string {
	if c := cc.current.Load(); c != nil {
		return c.Version
	}
	return ""
}

// CDN returns the image url helper of the loaded patch.
func (cc *CatalogCache) CDN() assets.CDN {
	return assets.CDN{BaseURL: cc.ddragon.BaseURL(), Version: cc.Version()}
}

// Catalog returns the loaded catalog, nil before the first load.
func (cc *CatalogCache) Catalog() *catalog.Catalog {
	return cc.current.Load()
}

func (cc *CatalogCache) NameForItem(id int) string {
	if c := cc.current.Load(); c != nil {
		return c.NameForItem(id)
	}
	return ""
}

func (cc *CatalogCache) NameForRune(id int) string {
	if c := cc.current.Load(); c != nil {
		return c.NameForRune(id)
	}
	return ""
}

func (cc *CatalogCache) NameForRuneStyle(id int) string {
	if c := cc.current.Load(); c != nil {
		return c.NameForRuneStyle(id)
	}
	return ""
}

func (cc *CatalogCache) NameForSummonerSpell(id int) string {
	if c := cc.current.Load(); c != nil {
		return c.NameForSummonerSpell(id)
	}
	return ""
}

func (cc *CatalogCache) NameForStatShard(id int) string {
	if c := cc.current.Load(); c != nil {
		return c.NameForStatShard(id)
	}
	return ""
}
