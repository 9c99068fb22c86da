package regions

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Route codes used by the Riot API hosts.
type (
	Platform string
	Regional string
)

// Regional routes.
const (
	Americas Regional = "americas"
	Asia     Regional = "asia"
	Europe   Regional = "europe"
	Sea      Regional = "sea"
)

var ErrUnknownServer = errors.New("unknown server")

// Route is everything needed to reach the API for a given server.
type Route struct {
	Server   string
	Platform Platform
	Regional Regional
	Slug     string
}

// AccountRegional returns the regional host serving the account endpoints.
// The account API is not deployed on the sea cluster.
func (r Route) AccountRegional() Regional {
	if r.Regional == Sea {
		return Asia
	}
	return r.Regional
}

// Human readable server names and their routes.
var serverList = map[string]Route{
	"brazil":              {Platform: "br1", Regional: Americas, Slug: "br"},
	"latin america north": {Platform: "la1", Regional: Americas, Slug: "lan"},
	"latin america south": {Platform: "la2", Regional: Americas, Slug: "las"},
	"north america":       {Platform: "na1", Regional: Americas, Slug: "na"},
	"japan":               {Platform: "jp1", Regional: Asia, Slug: "jp"},
	"korea":               {Platform: "kr", Regional: Asia, Slug: "kr"},
	"philippines":         {Platform: "ph2", Regional: Sea, Slug: "ph"},
	"singapore":           {Platform: "sg2", Regional: Sea, Slug: "sg"},
	"thailand":            {Platform: "th2", Regional: Sea, Slug: "th"},
	"taiwan":              {Platform: "tw2", Regional: Sea, Slug: "tw"},
	"vietnam":             {Platform: "vn2", Regional: Sea, Slug: "vn"},
	"oceania":             {Platform: "oc1", Regional: Sea, Slug: "oce"},
	"eu nordic & east":    {Platform: "eun1", Regional: Europe, Slug: "eune"},
	"eu west":             {Platform: "euw1", Regional: Europe, Slug: "euw"},
	"russia":              {Platform: "ru", Regional: Europe, Slug: "ru"},
	"turkey":              {Platform: "tr1", Regional: Europe, Slug: "tr"},
	"middle east":         {Platform: "me1", Regional: Europe, Slug: "me"},
}

// Platforms that historically share players, tried when a lookup fails on the requested one.
var neighbors = map[Platform]Platform{
	"euw1": "eun1",
	"eun1": "euw1",
	"la1":  "la2",
	"la2":  "la1",
	"ph2":  "sg2",
	"sg2":  "ph2",
}

// Reverse index from the platform to the server name.
var platformIndex = func() map[Platform]string {
	index := make(map[Platform]string, len(serverList))
	for name, route := range serverList {
		index[route.Platform] = name
	}
	return index
}()

// Resolve returns the route for a given server name.
func Resolve(server string) (Route, error) {
	key := strings.ToLower(strings.TrimSpace(server))

	route, ok := serverList[key]
	if !ok {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownServer, server)
	}

	route.Server = key
	return route, nil
}

// RouteForPlatform returns the route owning the platform.
func RouteForPlatform(platform Platform) (Route, error) {
	server, ok := platformIndex[Platform(strings.ToLower(string(platform)))]
	if !ok {
		return Route{}, fmt.Errorf("%w: platform %q", ErrUnknownServer, platform)
	}
	return Resolve(server)
}

// Neighbor returns the paired platform, if any.
func Neighbor(platform Platform) (Platform, bool) {
	neighbor, ok := neighbors[platform]
	return neighbor, ok
}

// PlatformFromMatchId infers the platform from the prefix of a match id (EUN1_123 -> eun1).
func PlatformFromMatchId(matchId string) (Platform, error) {
	prefix, _, found := strings.Cut(matchId, "_")
	if !found || prefix == "" {
		return "", fmt.Errorf("match id %q has no platform prefix", matchId)
	}

	platform := Platform(strings.ToLower(prefix))
	if _, ok := platformIndex[platform]; !ok {
		return "", fmt.Errorf("%w: platform %q from match %s", ErrUnknownServer, platform, matchId)
	}
	return platform, nil
}

// Servers returns every server name sorted alphabetically.
func Servers() []string {
	servers := make([]string, 0, len(serverList))
	for name := range serverList {
		servers = append(servers, name)
	}
	sort.Strings(servers)
	return servers
}

// Platforms returns every platform route.
func Platforms() []Platform {
	platforms := make([]Platform, 0, len(serverList))
	for _, route := range serverList {
		platforms = append(platforms, route.Platform)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}

// Regionals returns every regional route.
func Regionals() []Regional {
	return []Regional{Americas, Asia, Europe, Sea}
}

var andWord = regexp.MustCompile(`\band\b`)

// Slugify converts a server name into a URL friendly slug.
func Slugify(server string) string {
	slug := strings.ToLower(server)
	slug = strings.ReplaceAll(slug, " ", "-")
	return strings.ReplaceAll(slug, "&", "and")
}

// Unslugify converts a slug back into a server name.
func Unslugify(slug string) string {
	server := strings.ReplaceAll(slug, "-", " ")
	return andWord.ReplaceAllString(server, "&")
}
