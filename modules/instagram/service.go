package instagram

import (
	"context"
	"time"

	"github.com/leadkit/igbroker/broker"
)

// Service is the broker surface the HTTP layer consumes. *broker.Service
// satisfies it; tests substitute a stub.
type Service interface {
	Login(ctx context.Context, accountID, username, password string) *broker.AuthResult
	CompleteTwoFactor(ctx context.Context, accountID, code string) *broker.AuthResult
	SubmitChallengeCode(ctx context.Context, accountID, code string) *broker.AuthResult
	RetryAfterCheckpoint(ctx context.Context, accountID string) *broker.AuthResult
	RestoreSession(ctx context.Context, accountID string) *broker.RestoreResult
	Logout(ctx context.Context, accountID string) *broker.LogoutResult

	SearchUsers(ctx context.Context, accountID, query string, limit int) *broker.UserSearchResult
	SearchHashtags(ctx context.Context, accountID, query string, limit int) *broker.HashtagSearchResult
	SearchPlaces(ctx context.Context, accountID, query string) *broker.PlaceSearchResult

	UserInfo(ctx context.Context, accountID, username string) *broker.UserInfoResult
	Followers(ctx context.Context, accountID, username string, limit int) *broker.FollowersResult
	Following(ctx context.Context, accountID, username string, limit int) *broker.FollowingResult
	UserMedias(ctx context.Context, accountID, username string, limit int) *broker.MediaListResult
	HashtagMedias(ctx context.Context, accountID, name string, limit int) *broker.MediaListResult
	LocationMedias(ctx context.Context, accountID, locationID string, limit int) *broker.MediaListResult
	Timeline(ctx context.Context, accountID string, limit int) *broker.MediaListResult
	PostLikers(ctx context.Context, accountID, postURL string, limit int) *broker.PostLikersResult

	SendDirectMessage(ctx context.Context, accountID, username, text string) *broker.DirectMessageResult
	SendMassMessage(ctx context.Context, accountID, text string, usernames []string, delay time.Duration, useTemplate bool) *broker.MassMessageResult

	Clients() int
}
