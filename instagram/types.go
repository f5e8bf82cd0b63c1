package instagram

import "time"

// Account is the authenticated account's own identity, as reported by the
// account-info probe.
type Account struct {
	PK       string `json:"pk"`
	Username string `json:"username"`
}

// User is the caller-facing profile shape shared by search, follower and
// liker listings.
type User struct {
	PK             string `json:"pk"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Biography      string `json:"biography,omitempty"`
	IsPrivate      bool   `json:"is_private"`
	IsVerified     bool   `json:"is_verified"`
	IsBusiness     bool   `json:"is_business"`
	ProfilePicURL  string `json:"profile_pic_url,omitempty"`
	FollowerCount  *int   `json:"follower_count,omitempty"`
	FollowingCount *int   `json:"following_count,omitempty"`
	MediaCount     *int   `json:"media_count,omitempty"`
}

// MediaOwner is the embedded author reference on a media item.
type MediaOwner struct {
	PK         string `json:"pk"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	IsVerified bool   `json:"is_verified"`
}

// Media is a post, reel or video in the caller-facing shape.
type Media struct {
	PK           string      `json:"pk"`
	Shortcode    string      `json:"shortcode"`
	MediaType    int         `json:"media_type"`
	Caption      string      `json:"caption"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	TakenAt      *time.Time  `json:"taken_at,omitempty"`
	Permalink    string      `json:"permalink,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	User         *MediaOwner `json:"user,omitempty"`
}

// Hashtag is a search result for tag discovery.
type Hashtag struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MediaCount    int    `json:"media_count"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// Place is a location search result.
type Place struct {
	PK             string  `json:"pk"`
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	ExternalSource string  `json:"external_source,omitempty"`
}

// DirectThread identifies the conversation a direct message landed in.
type DirectThread struct {
	ThreadID string `json:"thread_id"`
}
