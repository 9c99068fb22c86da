package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clashfinder/pkg/logger"
	"clashfinder/pkg/models/catalog"
	"clashfinder/pkg/redis"
)

// ErrCatalogNotStored is returned when the store has no catalog for the language.
var ErrCatalogNotStored = errors.New("catalog not stored")

// Revalidator keeps the stored catalog on the latest patch.
type Revalidator struct {
	ddragon  *DDragon
	store    KeyValueStore
	language string
	logger   *logger.Logger
}

// NewRevalidator creates the revalidator for a single language.
func NewRevalidator(ddragon *DDragon, store KeyValueStore, language string, log *logger.Logger) *Revalidator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Revalidator{
		ddragon:  ddragon,
		store:    store,
		language: language,
		logger:   log,
	}
}

// BuildCatalog fetches every manifest of a version.
func (d *DDragon) BuildCatalog(ctx context.Context, version string, language string) (*catalog.Catalog, error) {
	c := catalog.New(version, language)

	if err := d.loadItems(ctx, c); err != nil {
		return nil, fmt.Errorf("couldn't load the items: %w", err)
	}
	if err := d.loadSummonerSpells(ctx, c); err != nil {
		return nil, fmt.Errorf("couldn't load the summoner spells: %w", err)
	}
	if err := d.loadRunes(ctx, c); err != nil {
		return nil, fmt.Errorf("couldn't load the runes: %w", err)
	}
	loadStatShards(c)

	return c, nil
}

// LatestVersion returns the current patch.
func (d *DDragon) LatestVersion(ctx context.Context) (string, error) {
	versions, err := d.GetVersions(ctx)
	if err != nil {
		return "", err
	}
	return versions[0], nil
}

// StoredVersion returns the version of the stored catalog.
func (r *Revalidator) StoredVersion(ctx context.Context) (string, error) {
	version, err := r.store.Get(ctx, versionKey)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return "", ErrCatalogNotStored
	}
	return version, err
}

// CheckForUpdate compares the stored version with the latest one.
func (r *Revalidator) CheckForUpdate(ctx context.Context) (latest string, outdated bool, err error) {
	latest, err = r.ddragon.LatestVersion(ctx)
	if err != nil {
		return "", false, fmt.Errorf("couldn't get the latest version: %w", err)
	}

	stored, err := r.StoredVersion(ctx)
	if errors.Is(err, ErrCatalogNotStored) {
		return latest, true, nil
	}
	if err != nil {
		return "", false, err
	}

	return latest, stored != latest, nil
}

// Revalidate rebuilds the catalog when the patch changed, or always if forced.
// Returns the version that is stored after the call.
func (r *Revalidator) Revalidate(ctx context.Context, force bool) (string, error) {
	latest, outdated, err := r.CheckForUpdate(ctx)
	if err != nil {
		return "", err
	}

	if !outdated && !force {
		r.logger.Infof("Catalog already on version %s", latest)
		return latest, nil
	}

	r.logger.Infof("Revalidating catalog to version %s (%s)", latest, r.language)
	c, err := r.ddragon.BuildCatalog(ctx, latest, r.language)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("couldn't encode the catalog: %w", err)
	}

	// Catalog first, so a reader never sees a version without its catalog.
	if err := r.store.Set(ctx, CatalogKey(r.language), payload, 0); err != nil {
		return "", fmt.Errorf("couldn't store the catalog: %w", err)
	}
	if err := r.store.Set(ctx, versionKey, latest, 0); err != nil {
		return "", fmt.Errorf("couldn't store the version: %w", err)
	}

	r.logger.Infof("Catalog revalidated: %d items, %d runes, %d spells", len(c.Items), len(c.Runes), len(c.Spells))
	return latest, nil
}

// LoadCatalog reads a stored catalog.
func LoadCatalog(ctx context.Context, store KeyValueStore, language string) (*catalog.Catalog, error) {
	raw, err := store.Get(ctx, CatalogKey(language))
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, ErrCatalogNotStored
	}
	if err != nil {
		return nil, err
	}

	c := catalog.New("", language)
	if err := json.Unmarshal([]byte(raw), c); err != nil {
		return nil, fmt.Errorf("couldn't decode the stored catalog: %w", err)
	}
	return c, nil
}
