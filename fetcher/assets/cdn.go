package assets

import (
	"fmt"
	"strings"
)

// CDN formats the image urls of a catalog version.
type CDN struct {
	BaseURL string
	Version string
}

// Versionless images under /cdn/img/, such as runes and stat mods.
func (c CDN) img(path string) string {
	return fmt.Sprintf("%s/cdn/img/%s", c.BaseURL, strings.TrimLeft(path, "/"))
}

func (c CDN) versionedImg(folder string, file string) string {
	return fmt.Sprintf("%s/cdn/%s/img/%s/%s", c.BaseURL, c.Version, folder, file)
}

// ChampionURL returns the square icon of a champion by its DDragon name.
func (c CDN) ChampionURL(championName string) string {
	if championName == "" {
		return ""
	}
	return c.versionedImg("champion", championName+".png")
}

// ItemURL returns the item icon, empty for the empty slot.
func (c CDN) ItemURL(itemId int) string {
	if itemId <= 0 {
		return ""
	}
	return c.versionedImg("item", fmt.Sprintf("%d.png", itemId))
}

// SummonerSpellURL returns the spell icon from the image file name.
func (c CDN) SummonerSpellURL(file string) string {
	if file == "" {
		return ""
	}
	return c.versionedImg("spell", file)
}

// ProfileIconURL returns a summoner icon.
func (c CDN) ProfileIconURL(iconId int) string {
	return c.versionedImg("profileicon", fmt.Sprintf("%d.png", iconId))
}

// RuneURL returns a rune or rune tree icon from the manifest path.
func (c CDN) RuneURL(iconPath string) string {
	if iconPath == "" {
		return ""
	}
	return c.img(iconPath)
}

// StatShardURL returns the stat shard icon.
func (c CDN) StatShardURL(shardId int) string {
	file, ok := statShardIcons[shardId]
	if !ok {
		return ""
	}
	return c.img("perk-images/StatMods/" + file)
}
