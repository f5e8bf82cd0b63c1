package broker

import "github.com/leadkit/igbroker/instagram"

// AuthResult is the caller-facing outcome of login, two-factor completion,
// challenge code submission and checkpoint retry. Field names are part of
// the boundary contract and must stay stable.
type AuthResult struct {
	Success  bool   `json:"success"`
	PK       string `json:"pk,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`

	Needs2FA            bool     `json:"needs_2fa,omitempty"`
	TwoFactorIdentifier string   `json:"two_factor_identifier,omitempty"`
	Methods             []string `json:"methods,omitempty"`

	NeedsCheckpoint bool   `json:"needs_checkpoint,omitempty"`
	CheckpointType  string `json:"checkpoint_type,omitempty"`
	NeedsCode       bool   `json:"needs_code,omitempty"`

	RateLimited bool `json:"rate_limited,omitempty"`
}

// checkpointResult builds the "platform wants interactive verification"
// response shared by the login and challenge flows.
func checkpointResult(message, checkpointType string, needsCode bool) *AuthResult {
	return &AuthResult{
		NeedsCheckpoint: true,
		CheckpointType:  checkpointType,
		Message:         message,
		NeedsCode:       needsCode,
	}
}

// failureResult classifies err into a non-fatal caller-facing failure.
func failureResult(err error) *AuthResult {
	c := Classify(err)
	return &AuthResult{Error: c.Message, RateLimited: c.RateLimited}
}

// RestoreResult reports the outcome of restoring a persisted session.
type RestoreResult struct {
	Success         bool   `json:"success"`
	Restored        bool   `json:"restored"`
	Username        string `json:"username,omitempty"`
	NeedsCheckpoint bool   `json:"needs_checkpoint,omitempty"`
	Error           string `json:"error,omitempty"`
}

// LogoutResult acknowledges a logout; logout never fails.
type LogoutResult struct {
	Success bool `json:"success"`
}

// FollowersResult carries a follower enumeration, or a classified failure
// with an empty collection so callers can render a consistent empty state.
type FollowersResult struct {
	Success     bool             `json:"success"`
	Followers   []instagram.User `json:"followers"`
	Total       int              `json:"total"`
	Error       string           `json:"error,omitempty"`
	RateLimited bool             `json:"rate_limited,omitempty"`
}

// FollowingResult mirrors FollowersResult for the accounts a user follows.
type FollowingResult struct {
	Success     bool             `json:"success"`
	Following   []instagram.User `json:"following"`
	Total       int              `json:"total"`
	Error       string           `json:"error,omitempty"`
	RateLimited bool             `json:"rate_limited,omitempty"`
}

// UserSearchResult lists profile search matches.
type UserSearchResult struct {
	Success bool             `json:"success"`
	Users   []instagram.User `json:"users"`
	Total   int              `json:"total"`
	Error   string           `json:"error,omitempty"`
}

// HashtagSearchResult lists hashtag search matches.
type HashtagSearchResult struct {
	Success  bool                `json:"success"`
	Hashtags []instagram.Hashtag `json:"hashtags"`
	Total    int                 `json:"total"`
	Error    string              `json:"error,omitempty"`
}

// PlaceSearchResult lists location search matches.
type PlaceSearchResult struct {
	Success   bool              `json:"success"`
	Locations []instagram.Place `json:"locations"`
	Total     int               `json:"total"`
	Error     string            `json:"error,omitempty"`
}

// UserInfoResult carries a single profile.
type UserInfoResult struct {
	Success bool            `json:"success"`
	User    *instagram.User `json:"user,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// MediaListResult carries posts for a user, hashtag, location or timeline.
type MediaListResult struct {
	Success  bool              `json:"success"`
	Media    []instagram.Media `json:"media"`
	Total    int               `json:"total"`
	Username string            `json:"username,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// PostInfo summarizes the post whose likers were listed.
type PostInfo struct {
	PK           string    `json:"pk"`
	Shortcode    string    `json:"shortcode"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	Owner        PostOwner `json:"owner"`
}

// PostOwner identifies the author of a post.
type PostOwner struct {
	Username string `json:"username"`
	PK       string `json:"pk,omitempty"`
}

// PostLikersResult lists the users who liked a post.
type PostLikersResult struct {
	Success  bool             `json:"success"`
	Likes    []instagram.User `json:"likes"`
	Total    int              `json:"total"`
	PostInfo *PostInfo        `json:"post_info,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// DirectMessageResult reports a single direct message send.
type DirectMessageResult struct {
	Success bool               `json:"success"`
	Data    *DirectMessageData `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// DirectMessageData carries the thread the message landed in.
type DirectMessageData struct {
	ThreadID string `json:"thread_id"`
}

// MassRecipientStatus records the per-recipient outcome of a mass send.
type MassRecipientStatus struct {
	Username string `json:"username"`
	Success  bool   `json:"success,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MassMessageResult carries the ordered sent and failed lists plus the
// original recipient count. Failed sends are not retried within the call.
type MassMessageResult struct {
	Sent   []MassRecipientStatus `json:"sent"`
	Failed []MassRecipientStatus `json:"failed"`
	Total  int                   `json:"total"`
}
