package instagram

import (
	"context"
	"time"
)

// CodeProvider supplies a verification code when the platform demands one
// mid-call. The default provider must never block waiting for input: it
// returns a CodeSentError carrying the delivery channel so the broker can
// prompt the caller instead.
type CodeProvider func(username, channel string) (string, error)

// RaiseCodeRequest is the non-blocking default CodeProvider. It surfaces the
// code demand as an error so an unexpected challenge is reported as a
// challenge rather than silently swallowed.
func RaiseCodeRequest(username, channel string) (string, error) {
	return "", &CodeSentError{Channel: channel}
}

// Options carries the conservative defaults a freshly created client starts
// with. DeviceID seeds the device fingerprint sent to the platform.
type Options struct {
	Proxy          string
	RequestTimeout time.Duration
	DelayRange     [2]time.Duration
	DeviceID       string
}

// Factory creates a live protocol client for one account.
type Factory func(opts Options) Client

// Client is the capability surface this service assumes from the external
// protocol client. One instance serves exactly one account and is not safe
// for concurrent state-changing calls.
type Client interface {
	// Login authenticates with username and password. It may fail with
	// TwoFactorRequiredError, ErrChallengeRequired, CodeSentError (when the
	// platform pushed a code during the attempt), BadCredentialsError or
	// ErrMalformedResponse.
	Login(ctx context.Context, username, password string) error

	// LoginWithCode replays a login carrying a two-factor verification code.
	LoginWithCode(ctx context.Context, username, password, code string) error

	// LoginBySessionID authenticates from a previously issued session id.
	LoginBySessionID(ctx context.Context, sessionID string) error

	// Logout invalidates the platform session.
	Logout(ctx context.Context) error

	// AccountInfo probes the authenticated account. Fails with
	// ErrLoginRequired or ErrChallengeRequired when the session is not
	// trusted.
	AccountInfo(ctx context.Context) (*Account, error)

	// Settings serializes the client state (cookies, device info, tokens)
	// into an opaque blob; ApplySettings restores it verbatim.
	Settings() (Settings, error)
	ApplySettings(Settings) error

	// UserID reports the account pk acquired during the latest login
	// attempt, or "" when none was obtained. It is meaningful even after a
	// failed login: a non-empty value with a decode failure means the login
	// mostly succeeded but an interstitial blocked the final response.
	UserID() string

	// SetCodeProvider installs the strategy used to obtain verification
	// codes during challenge resolution.
	SetCodeProvider(CodeProvider)

	// ResolveChallengeAuto attempts to clear a pending challenge without
	// caller interaction. Fails with CodeSentError, ErrUnknownChallengeStep,
	// ErrCaptchaChallenge or ErrContactPointRecovery when it cannot.
	ResolveChallengeAuto(ctx context.Context) error

	// TimelineFeed is the low-cost authenticated probe used to validate a
	// restored session.
	TimelineFeed(ctx context.Context) ([]Media, error)

	// UserByUsername is the authenticated profile lookup.
	UserByUsername(ctx context.Context, username string) (*User, error)

	// UserIDFromUsername resolves a handle to a pk; it may try several
	// strategies internally.
	UserIDFromUsername(ctx context.Context, username string) (string, error)

	// UserProfile is the public (unauthenticated-path) profile lookup used
	// as a search fallback.
	UserProfile(ctx context.Context, username string) (*User, error)

	UserInfo(ctx context.Context, userID string) (*User, error)

	SearchUsers(ctx context.Context, query string, limit int) ([]User, error)
	SearchHashtags(ctx context.Context, query string, limit int) ([]Hashtag, error)
	SearchPlaces(ctx context.Context, query string) ([]Place, error)

	// Followers and Following are the authenticated bulk endpoints.
	Followers(ctx context.Context, userID string, limit int) ([]User, error)
	Following(ctx context.Context, userID string, limit int) ([]User, error)

	// FollowersPage and FollowingPage are the cursor-paginated fallback
	// endpoints. An empty next cursor means the end of the collection.
	FollowersPage(ctx context.Context, userID string, maxItems int, cursor string) ([]User, string, error)
	FollowingPage(ctx context.Context, userID string, maxItems int, cursor string) ([]User, string, error)

	UserMedias(ctx context.Context, userID string, limit int) ([]Media, error)
	HashtagMedias(ctx context.Context, name string, limit int) ([]Media, error)
	LocationMedias(ctx context.Context, locationID string, limit int) ([]Media, error)

	MediaPKFromCode(ctx context.Context, shortcode string) (string, error)
	MediaInfo(ctx context.Context, mediaPK string) (*Media, error)
	MediaLikers(ctx context.Context, mediaPK string) ([]User, error)

	DirectSend(ctx context.Context, text string, userIDs []string) (*DirectThread, error)
}
