package assets

import (
	"context"
	"strconv"

	"clashfinder/pkg/models/catalog"
)

// loadItems adds the item names of the version to the catalog.
func (d *DDragon) loadItems(ctx context.Context, c *catalog.Catalog) error {
	var itemData fullItem
	if err := d.getJSON(ctx, manifestPath(c.Version, c.Language, "item"), &itemData); err != nil {
		return err
	}

	// Item keys are numeric strings, anything else is skipped.
	for itemKey, item := range itemData.Data {
		id, err := strconv.Atoi(itemKey)
		if err != nil {
			continue
		}
		c.Items[id] = item.Name
	}
	return nil
}

// loadSummonerSpells adds the summoner spell names and images.
func (d *DDragon) loadSummonerSpells(ctx context.Context, c *catalog.Catalog) error {
	var summonerData fullSummoner
	if err := d.getJSON(ctx, manifestPath(c.Version, c.Language, "summoner"), &summonerData); err != nil {
		return err
	}

	for _, spell := range summonerData.Data {
		id, err := strconv.Atoi(spell.Key)
		if err != nil {
			continue
		}
		c.Spells[id] = spell.Name
		if spell.Image.Full != "" {
			c.Images.Spells[id] = spell.Image.Full
		}
	}
	return nil
}

// loadRunes adds the rune trees and every rune of their slots.
func (d *DDragon) loadRunes(ctx context.Context, c *catalog.Catalog) error {
	var styles []runeStyle
	if err := d.getJSON(ctx, manifestPath(c.Version, c.Language, "runesReforged"), &styles); err != nil {
		return err
	}

	for _, style := range styles {
		c.RuneStyles[style.Id] = style.Name
		if style.Icon != "" {
			c.Images.RuneStyles[style.Id] = style.Icon
		}

		for _, slot := range style.Slots {
			for _, rune := range slot.Runes {
				c.Runes[rune.Id] = rune.Name
				if rune.Icon != "" {
					c.Images.Runes[rune.Id] = rune.Icon
				}
			}
		}
	}
	return nil
}
