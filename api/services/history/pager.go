package historyservice

import (
	"context"
	"fmt"

	"clashfinder/pkg/regions"
)

// MatchIdPager lists the ranked match ids of a player.
type MatchIdPager struct {
	api MatchAPI
}

func NewMatchIdPager(api MatchAPI) *MatchIdPager {
	return &MatchIdPager{api: api}
}

// ListMatchIds returns a page of ids, most recent first, with a single request.
// A empty page with no error is the end of the history.
func (p *MatchIdPager) ListMatchIds(ctx context.Context, puuid string, server string, offset int, count int) ([]string, error) {
	route, err := regions.Resolve(server)
	if err != nil {
		return nil, err
	}

	ids, err := p.api.MatchIds(ctx, route.Regional, puuid, offset, count)
	if err != nil {
		return nil, fmt.Errorf("couldn't list the matches of %s from %d: %w", puuid, offset, err)
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
