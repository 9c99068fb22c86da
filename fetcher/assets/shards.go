package assets

import "clashfinder/pkg/models/catalog"

// DDragon doesn't provide the stat shards, so the names are kept here.
var statShardNames = map[int]string{
	5001: "Health Scaling",
	5002: "Armor",
	5003: "Magic Resist",
	5005: "Attack Speed",
	5007: "Ability Haste",
	5008: "Adaptive Force",
	5010: "Move Speed",
	5011: "Health",
	5013: "Tenacity and Slow Resist",
}

// Icons under /cdn/img/perk-images/StatMods/.
var statShardIcons = map[int]string{
	5001: "StatModsHealthScalingIcon.png",
	5002: "StatModsArmorIcon.png",
	5003: "StatModsMagicResIcon.png",
	5005: "StatModsAttackSpeedIcon.png",
	5007: "StatModsCDRScalingIcon.png",
	5008: "StatModsAdaptiveForceIcon.png",
	5010: "StatModsMovementSpeedIcon.png",
	5011: "StatModsHealthPlusIcon.png",
	5013: "StatModsTenacityIcon.png",
}

func loadStatShards(c *catalog.Catalog) {
	for id, name := range statShardNames {
		c.StatShards[id] = name
	}
}
