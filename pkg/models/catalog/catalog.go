package catalog

// Catalog holds the DDragon names for a given patch.
type Catalog struct {
	Version    string         `json:"version"`
	Language   string         `json:"language"`
	Items      map[int]string `json:"items"`
	Runes      map[int]string `json:"runes"`
	RuneStyles map[int]string `json:"runeStyles"`
	Spells     map[int]string `json:"spells"`
	StatShards map[int]string `json:"statShards"`
	Images     ImageIndex     `json:"images"`
}

// ImageIndex holds the image paths that can't be derived from the id.
type ImageIndex struct {
	Runes      map[int]string `json:"runes"`
	RuneStyles map[int]string `json:"runeStyles"`
	Spells     map[int]string `json:"spells"`
}

// New creates a empty catalog.
func New(version string, language string) *Catalog {
	return &Catalog{
		Version:    version,
		Language:   language,
		Items:      make(map[int]string),
		Runes:      make(map[int]string),
		RuneStyles: make(map[int]string),
		Spells:     make(map[int]string),
		StatShards: make(map[int]string),
		Images: ImageIndex{
			Runes:      make(map[int]string),
			RuneStyles: make(map[int]string),
			Spells:     make(map[int]string),
		},
	}
}

// Name lookups, unknown ids are always a empty string.

func (c *Catalog) NameForItem(id int) string {
	return lookup(c.Items, id)
}

func (c *Catalog) NameForRune(id int) string {
	return lookup(c.Runes, id)
}

func (c *Catalog) NameForRuneStyle(id int) string {
	return lookup(c.RuneStyles, id)
}

func (c *Catalog) NameForSummonerSpell(id int) string {
	return lookup(c.Spells, id)
}

func (c *Catalog) NameForStatShard(id int) string {
	return lookup(c.StatShards, id)
}

func lookup(m map[int]string, id int) string {
	if m == nil {
		return ""
	}
	return m[id]
}
