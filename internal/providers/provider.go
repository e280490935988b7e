package providers

import (
	"context"

	"playbud-discovery/internal/domain/games"
	"playbud-discovery/internal/domain/refdata"
)

// GameLister fetches the discoverable game listing from the upstream API.
// Providers return records as-is; status filtering happens in the app layer.
type GameLister interface {
	ListGames(ctx context.Context, limit int) ([]games.Record, error)
}

// GameFetcher fetches a single game record by id.
type GameFetcher interface {
	GetGame(ctx context.Context, id string) (games.Record, error)
}

// ReferenceFetcher fetches the four lookup tables in one request. There is
// no pagination or incremental update; callers re-fetch in full.
type ReferenceFetcher interface {
	FetchReferenceData(ctx context.Context) (refdata.Set, error)
}

// JoinSubmitter submits a join request for a game on behalf of the bearer of
// accessToken. Implementations must not retry: the caller owns the
// submit-once semantics of the booking workflow.
type JoinSubmitter interface {
	JoinGame(ctx context.Context, gameID, notes, accessToken string) (games.Booking, error)
}

// AuthUser is the authenticated identity as reported by the upstream API.
type AuthUser struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

// TokenPair is an access/refresh token set issued by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthProvider exposes the identity endpoints the session layer needs.
type AuthProvider interface {
	Me(ctx context.Context, accessToken string) (AuthUser, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, error)
}

// DataProvider combines the read/write capabilities of the upstream API.
type DataProvider interface {
	GameLister
	GameFetcher
	ReferenceFetcher
	JoinSubmitter
}
