package broker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/leadkit/igbroker/instagram"
	"github.com/leadkit/igbroker/pkg/async"
	"github.com/leadkit/igbroker/pkg/logger"
)

// Per-call wall-clock budgets. Followers get a larger budget than following
// because the bulk endpoint degrades harder on large follower counts.
const (
	followersResolveTimeout = 60 * time.Second
	followersFetchTimeout   = 120 * time.Second
	followingResolveTimeout = 30 * time.Second
	followingFetchTimeout   = 100 * time.Second

	// Paginated fallback pacing.
	fallbackPageSize    = 20
	fallbackPageTimeout = 30 * time.Second
	fallbackPagePause   = 3 * time.Second
)

// ResolveUserID resolves a handle to a pk through progressively more
// expensive strategies. Order matters: the cheap authenticated lookup first,
// then the id-only endpoint, then an exact-match search.
func (s *Service) ResolveUserID(ctx context.Context, cl instagram.Client, username string) (string, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")

	if user, err := cl.UserByUsername(ctx, username); err == nil && user != nil && user.PK != "" {
		return user.PK, nil
	}
	if pk, err := cl.UserIDFromUsername(ctx, username); err == nil && pk != "" {
		return pk, nil
	}
	if users, err := cl.SearchUsers(ctx, username, 1); err == nil {
		for _, u := range users {
			if strings.EqualFold(u.Username, username) {
				return u.PK, nil
			}
		}
	}
	return "", &UserNotResolvedError{Username: username}
}

// Followers enumerates up to limit followers of username. The bulk endpoint
// runs first under a hard budget; on failure a cursor-paginated walk
// collects what it can, returning partial results instead of nothing.
func (s *Service) Followers(ctx context.Context, accountID, username string, limit int) *FollowersResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &FollowersResult{Followers: []instagram.User{}, Error: Classify(err).Message}
	}
	users, res := s.fetchEdge(ctx, accountID, cl, username, limit, edgeConfig{
		resolveTimeout: followersResolveTimeout,
		fetchTimeout:   followersFetchTimeout,
		bulk:           cl.Followers,
		page:           cl.FollowersPage,
	})
	if res != nil {
		return &FollowersResult{Followers: []instagram.User{}, Error: res.Message, RateLimited: res.RateLimited}
	}
	return &FollowersResult{Success: true, Followers: users, Total: len(users)}
}

// Following enumerates up to limit accounts username follows.
func (s *Service) Following(ctx context.Context, accountID, username string, limit int) *FollowingResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &FollowingResult{Following: []instagram.User{}, Error: Classify(err).Message}
	}
	users, res := s.fetchEdge(ctx, accountID, cl, username, limit, edgeConfig{
		resolveTimeout: followingResolveTimeout,
		fetchTimeout:   followingFetchTimeout,
		bulk:           cl.Following,
		page:           cl.FollowingPage,
	})
	if res != nil {
		return &FollowingResult{Following: []instagram.User{}, Error: res.Message, RateLimited: res.RateLimited}
	}
	return &FollowingResult{Success: true, Following: users, Total: len(users)}
}

// edgeConfig parameterizes fetchEdge over the two edge directions.
type edgeConfig struct {
	resolveTimeout time.Duration
	fetchTimeout   time.Duration
	bulk           func(ctx context.Context, userID string, limit int) ([]instagram.User, error)
	page           func(ctx context.Context, userID string, maxItems int, cursor string) ([]instagram.User, string, error)
}

// fetchEdge resolves the target user then fetches one follow edge under the
// configured budgets. It returns the users on success, or a classification
// describing the failure.
func (s *Service) fetchEdge(ctx context.Context, accountID string, cl instagram.Client, username string, limit int, cfg edgeConfig) ([]instagram.User, *Classification) {
	userID, err := async.RunWithTimeout(ctx, cfg.resolveTimeout, func(ctx context.Context) (string, error) {
		return s.ResolveUserID(ctx, cl, username)
	})
	if err != nil {
		var notResolved *UserNotResolvedError
		if errors.As(err, &notResolved) {
			c := Classification{Kind: KindUserNotFound, Message: notResolved.Error()}
			return nil, &c
		}
		c := Classify(err)
		return nil, &c
	}

	users, err := async.RunWithTimeout(ctx, cfg.fetchTimeout, func(ctx context.Context) ([]instagram.User, error) {
		users, bulkErr := cfg.bulk(ctx, userID, limit)
		if bulkErr == nil {
			return users, nil
		}
		s.log.WarnContext(ctx, "bulk edge fetch failed, falling back to pagination",
			logger.AccountID(accountID), logger.Username(username), logger.Error(bulkErr))
		return s.fetchEdgePaginated(ctx, userID, limit, bulkErr, cfg.page)
	})
	if err != nil {
		c := Classify(err)
		return nil, &c
	}
	if users == nil {
		users = []instagram.User{}
	}
	// The bulk endpoint occasionally overshoots the requested count.
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

// fetchEdgePaginated walks the cursor-paginated endpoint in small pages,
// each under its own timeout. A page timeout or error ends the walk with
// whatever accumulated; only a first-page failure with nothing collected
// surfaces the original bulk error.
func (s *Service) fetchEdgePaginated(ctx context.Context, userID string, limit int, bulkErr error, page func(ctx context.Context, userID string, maxItems int, cursor string) ([]instagram.User, string, error)) ([]instagram.User, error) {
	collected := make([]instagram.User, 0, limit)
	cursor := ""

	for len(collected) < limit {
		remaining := limit - len(collected)
		pageSize := fallbackPageSize
		if remaining < pageSize {
			pageSize = remaining
		}

		type pageResult struct {
			users []instagram.User
			next  string
		}
		res, err := async.RunWithTimeout(ctx, fallbackPageTimeout, func(ctx context.Context) (pageResult, error) {
			users, next, err := page(ctx, userID, pageSize, cursor)
			return pageResult{users: users, next: next}, err
		})
		if err != nil {
			if len(collected) == 0 {
				return nil, bulkErr
			}
			return collected, nil
		}

		collected = append(collected, res.users...)
		if res.next == "" || len(res.users) == 0 {
			break
		}
		cursor = res.next

		if len(collected) < limit {
			s.sleep(fallbackPagePause)
		}
	}
	return collected, nil
}
