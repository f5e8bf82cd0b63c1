package broker

import (
	"errors"
	"strings"

	"github.com/leadkit/igbroker/instagram"
	"github.com/leadkit/igbroker/pkg/async"
)

// Classification is a caller-facing rendering of a client failure. Kind is a
// stable machine tag, Message is safe to show to an operator.
type Classification struct {
	Kind        string
	Message     string
	RateLimited bool
}

// Failure kinds produced by Classify.
const (
	KindChallengeRequired = "challenge_required"
	KindTwoFactorRequired = "two_factor_required"
	KindLoginRequired     = "login_required"
	KindRateLimited       = "rate_limited"
	KindBadCredentials    = "bad_credentials"
	KindIPBlocked         = "ip_blocked"
	KindUserNotFound      = "user_not_found"
	KindMalformedResponse = "malformed_response"
	KindTimeout           = "timeout"
	KindNotConnected      = "not_connected"
	KindUnknown           = "unknown"
)

// Classify maps a client error to a stable kind and operator message.
// Unrecognized errors pass through verbatim so nothing gets swallowed.
func Classify(err error) Classification {
	var bad *instagram.BadCredentialsError
	var twoFactor *instagram.TwoFactorRequiredError

	switch {
	case errors.Is(err, ErrNotConnected):
		return Classification{Kind: KindNotConnected, Message: "Private API not connected. Log in first."}
	case errors.Is(err, instagram.ErrChallengeRequired):
		return Classification{Kind: KindChallengeRequired, Message: "Instagram requires additional verification. Wait a few minutes and try again."}
	case errors.As(err, &twoFactor):
		return Classification{Kind: KindTwoFactorRequired, Message: "Two-factor authentication required."}
	case errors.Is(err, instagram.ErrLoginRequired):
		return Classification{Kind: KindLoginRequired, Message: "Session expired. Log in again."}
	case errors.Is(err, instagram.ErrRateLimited):
		return Classification{Kind: KindRateLimited, Message: "Instagram says: wait a few minutes before trying again.", RateLimited: true}
	case errors.As(err, &bad):
		if isIPBlock(bad.Message) {
			return Classification{Kind: KindIPBlocked, Message: "Your IP has been blocked by Instagram. Switch networks (mobile data, VPN) or wait a few hours and try again."}
		}
		return Classification{Kind: KindBadCredentials, Message: "Incorrect password."}
	case errors.Is(err, instagram.ErrUserNotFound):
		return Classification{Kind: KindUserNotFound, Message: "User not found."}
	case errors.Is(err, instagram.ErrMalformedResponse):
		return Classification{Kind: KindMalformedResponse, Message: "Instagram requires additional verification. Wait a few minutes and try again."}
	case errors.Is(err, async.ErrTimeout):
		return Classification{Kind: KindTimeout, Message: "The request took too long. Instagram may be throttling requests. Try again in a few minutes.", RateLimited: true}
	}

	msg := err.Error()
	if isIPBlock(msg) {
		return Classification{Kind: KindIPBlocked, Message: "Your IP has been blocked by Instagram. Switch networks (mobile data, VPN) or wait a few hours and try again."}
	}
	return Classification{Kind: KindUnknown, Message: msg}
}

// isIPBlock matches the wording the platform uses for network-level blocks.
func isIPBlock(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "blacklist") || strings.Contains(lower, "change your ip")
}
