package broker

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/leadkit/igbroker/instagram"
	"github.com/leadkit/igbroker/pkg/logger"
)

var shortcodePattern = regexp.MustCompile(`instagram\.com/(?:p|reel|tv)/([A-Za-z0-9_-]+)`)

// SearchUsers searches profiles by query. When the authenticated search is
// blocked by a challenge the public profile lookup serves as a single-result
// fallback so an exact handle still resolves.
func (s *Service) SearchUsers(ctx context.Context, accountID, query string, limit int) *UserSearchResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &UserSearchResult{Users: []instagram.User{}, Error: Classify(err).Message}
	}

	users, err := cl.SearchUsers(ctx, query, limit)
	if err != nil {
		if errors.Is(err, instagram.ErrChallengeRequired) || errors.Is(err, instagram.ErrMalformedResponse) {
			if user, fallbackErr := cl.UserProfile(ctx, strings.TrimPrefix(query, "@")); fallbackErr == nil && user != nil {
				return &UserSearchResult{Success: true, Users: []instagram.User{*user}, Total: 1}
			}
		}
		s.log.WarnContext(ctx, "user search failed",
			logger.AccountID(accountID), logger.Error(err))
		return &UserSearchResult{Users: []instagram.User{}, Error: Classify(err).Message}
	}
	if users == nil {
		users = []instagram.User{}
	}
	return &UserSearchResult{Success: true, Users: users, Total: len(users)}
}

// SearchHashtags searches hashtags by query.
func (s *Service) SearchHashtags(ctx context.Context, accountID, query string, limit int) *HashtagSearchResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &HashtagSearchResult{Hashtags: []instagram.Hashtag{}, Error: Classify(err).Message}
	}
	tags, err := cl.SearchHashtags(ctx, strings.TrimPrefix(query, "#"), limit)
	if err != nil {
		return &HashtagSearchResult{Hashtags: []instagram.Hashtag{}, Error: Classify(err).Message}
	}
	if tags == nil {
		tags = []instagram.Hashtag{}
	}
	return &HashtagSearchResult{Success: true, Hashtags: tags, Total: len(tags)}
}

// SearchPlaces searches locations by query.
func (s *Service) SearchPlaces(ctx context.Context, accountID, query string) *PlaceSearchResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &PlaceSearchResult{Locations: []instagram.Place{}, Error: Classify(err).Message}
	}
	places, err := cl.SearchPlaces(ctx, query)
	if err != nil {
		return &PlaceSearchResult{Locations: []instagram.Place{}, Error: Classify(err).Message}
	}
	if places == nil {
		places = []instagram.Place{}
	}
	return &PlaceSearchResult{Success: true, Locations: places, Total: len(places)}
}

// UserInfo fetches the full profile for username, falling back to a pk
// resolve plus id lookup when the handle endpoint is blocked.
func (s *Service) UserInfo(ctx context.Context, accountID, username string) *UserInfoResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &UserInfoResult{Error: Classify(err).Message}
	}
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")

	user, err := cl.UserByUsername(ctx, username)
	if err != nil {
		pk, resolveErr := s.ResolveUserID(ctx, cl, username)
		if resolveErr != nil {
			return &UserInfoResult{Error: Classify(err).Message}
		}
		user, err = cl.UserInfo(ctx, pk)
		if err != nil {
			return &UserInfoResult{Error: Classify(err).Message}
		}
	}
	return &UserInfoResult{Success: true, User: user}
}

// UserMedias lists recent posts of username.
func (s *Service) UserMedias(ctx context.Context, accountID, username string, limit int) *MediaListResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")

	pk, err := s.ResolveUserID(ctx, cl, username)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	media, err := cl.UserMedias(ctx, pk, limit)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	if media == nil {
		media = []instagram.Media{}
	}
	return &MediaListResult{Success: true, Media: media, Total: len(media), Username: username}
}

// HashtagMedias lists recent posts under a hashtag.
func (s *Service) HashtagMedias(ctx context.Context, accountID, name string, limit int) *MediaListResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	media, err := cl.HashtagMedias(ctx, strings.TrimPrefix(name, "#"), limit)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	if media == nil {
		media = []instagram.Media{}
	}
	return &MediaListResult{Success: true, Media: media, Total: len(media)}
}

// LocationMedias lists recent posts from a location.
func (s *Service) LocationMedias(ctx context.Context, accountID, locationID string, limit int) *MediaListResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	media, err := cl.LocationMedias(ctx, locationID, limit)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	if media == nil {
		media = []instagram.Media{}
	}
	return &MediaListResult{Success: true, Media: media, Total: len(media)}
}

// Timeline fetches up to limit items from the authenticated account's home
// feed.
func (s *Service) Timeline(ctx context.Context, accountID string, limit int) *MediaListResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	media, err := cl.TimelineFeed(ctx)
	if err != nil {
		return &MediaListResult{Media: []instagram.Media{}, Error: Classify(err).Message}
	}
	if media == nil {
		media = []instagram.Media{}
	}
	if limit > 0 && len(media) > limit {
		media = media[:limit]
	}
	return &MediaListResult{Success: true, Media: media, Total: len(media)}
}

// PostLikers lists up to limit users who liked the post behind a share URL.
func (s *Service) PostLikers(ctx context.Context, accountID, postURL string, limit int) *PostLikersResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &PostLikersResult{Likes: []instagram.User{}, Error: Classify(err).Message}
	}

	shortcode, ok := extractShortcode(postURL)
	if !ok {
		return &PostLikersResult{Likes: []instagram.User{}, Error: "Could not recognize the post URL. Use a link like instagram.com/p/<code>/."}
	}

	mediaPK, err := cl.MediaPKFromCode(ctx, shortcode)
	if err != nil {
		return &PostLikersResult{Likes: []instagram.User{}, Error: Classify(err).Message}
	}
	likers, err := cl.MediaLikers(ctx, mediaPK)
	if err != nil {
		return &PostLikersResult{Likes: []instagram.User{}, Error: Classify(err).Message}
	}
	if likers == nil {
		likers = []instagram.User{}
	}
	if limit > 0 && len(likers) > limit {
		likers = likers[:limit]
	}

	result := &PostLikersResult{Success: true, Likes: likers, Total: len(likers)}
	if media, infoErr := cl.MediaInfo(ctx, mediaPK); infoErr == nil && media != nil {
		info := &PostInfo{
			PK:           media.PK,
			Shortcode:    shortcode,
			LikeCount:    media.LikeCount,
			CommentCount: media.CommentCount,
		}
		if media.User != nil {
			info.Owner = PostOwner{Username: media.User.Username, PK: media.User.PK}
		}
		result.PostInfo = info
	}
	return result
}

// extractShortcode pulls the shortcode out of a post, reel or tv share URL.
// A bare shortcode is accepted as-is.
func extractShortcode(postURL string) (string, bool) {
	if m := shortcodePattern.FindStringSubmatch(postURL); m != nil {
		return m[1], true
	}
	trimmed := strings.Trim(strings.TrimSpace(postURL), "/")
	if trimmed != "" && !strings.ContainsAny(trimmed, "/.: ") {
		return trimmed, true
	}
	return "", false
}
