package assets

import (
	"context"
	"time"
)

// Consts used across the package.
const (
	DDragonURL = "https://ddragon.leagueoflegends.com"
	catalogKey = "ddragon:catalog:"
	versionKey = "ddragon:version"
)

// KeyValueStore is where the revalidated catalog is kept, usually Redis.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Definition for extracting the item data.
type fullItem struct {
	Data map[string]struct {
		Name  string `json:"name"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

// Definition for extracting the summoner spell data.
type fullSummoner struct {
	Data map[string]struct {
		Key   string `json:"key"`
		Name  string `json:"name"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

// Definition for extracting the rune trees.
type runeStyle struct {
	Id    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Slots []struct {
		Runes []struct {
			Id   int    `json:"id"`
			Key  string `json:"key"`
			Name string `json:"name"`
			Icon string `json:"icon"`
		} `json:"runes"`
	} `json:"slots"`
}

// CatalogKey returns the store key of a language catalog.
func CatalogKey(language string) string {
	return catalogKey + language
}
