package riotid

import "strings"

// Identity is a Riot ID split into its name and tag.
type Identity struct {
	Name string
	Tag  string
}

// Split separates a "Name#Tag" string on the first '#'.
// Without a separator the tag is empty, further '#' characters stay in the tag.
func Split(full string) Identity {
	name, tag, _ := strings.Cut(full, "#")
	return Identity{Name: name, Tag: tag}
}

// String joins the identity back into the Riot ID format.
func (i Identity) String() string {
	if i.Tag == "" {
		return i.Name
	}
	return i.Name + "#" + i.Tag
}

// Slug converts a Riot ID into the URL form, '#' becomes "--" and spaces become '-'.
// The name and tag are trimmed so the separator never touches a space.
func Slug(full string) string {
	identity := Split(strings.TrimSpace(full))
	identity.Name = strings.TrimSpace(identity.Name)
	identity.Tag = strings.TrimSpace(identity.Tag)

	slug := strings.ReplaceAll(identity.String(), "#", "--")
	return strings.ReplaceAll(slug, " ", "-")
}

// Unslug reverts Slug.
func Unslug(slug string) string {
	full := strings.ReplaceAll(slug, "--", "#")
	return strings.ReplaceAll(full, "-", " ")
}
