package handlers

import (
	"context"
	"errors"
	"net/http"

	clashservice "clashfinder/api/services/clash"
	historyservice "clashfinder/api/services/history"
	identityservice "clashfinder/api/services/identity"
	"clashfinder/pkg/messages"
	"clashfinder/pkg/regions"
)

// errorStatus maps a service error into the response status and the message shown to the user.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, regions.ErrUnknownServer):
		return http.StatusBadRequest, messages.UnknownServerMsg
	case errors.Is(err, identityservice.ErrAccountNotFound):
		return http.StatusNotFound, messages.AccountNotFoundMsg
	case errors.Is(err, identityservice.ErrSummonerNotFound):
		return http.StatusNotFound, messages.SummonerNotFoundMsg
	case errors.Is(err, clashservice.ErrNoClashTeam):
		return http.StatusNotFound, messages.NoClashTeamMsg
	case errors.Is(err, historyservice.ErrNotFound):
		return http.StatusNotFound, messages.PlayerNotFoundMsg
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, messages.UpstreamUnavailable
	default:
		return http.StatusBadGateway, messages.UpstreamUnavailable
	}
}
