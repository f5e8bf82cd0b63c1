package instagram

import (
	"errors"
	"fmt"
)

// Sentinel conditions shared across the whole capability surface. Callers
// classify with errors.Is; implementations wrap these with call context.
var (
	// ErrLoginRequired means the platform no longer trusts the session and
	// demands a fresh login.
	ErrLoginRequired = errors.New("instagram: login required")

	// ErrChallengeRequired means the platform demands interactive
	// verification before continuing.
	ErrChallengeRequired = errors.New("instagram: challenge required")

	// ErrRateLimited is the platform's please-wait signal.
	ErrRateLimited = errors.New("instagram: rate limited")

	// ErrUserNotFound means the requested account does not exist.
	ErrUserNotFound = errors.New("instagram: user not found")

	// ErrMalformedResponse means the platform returned something that could
	// not be decoded, usually an interstitial page instead of JSON.
	ErrMalformedResponse = errors.New("instagram: malformed response")

	// Challenge sub-kinds raised by ResolveChallengeAuto.
	ErrUnknownChallengeStep = errors.New("instagram: unknown challenge step")
	ErrCaptchaChallenge     = errors.New("instagram: captcha challenge form")
	ErrContactPointRecovery = errors.New("instagram: contact point recovery form")
)

// TwoFactorRequiredError is raised by Login when the account has two-factor
// authentication enabled. Identifier must be echoed back with the code.
type TwoFactorRequiredError struct {
	Identifier string
	Methods    []string
}

func (e *TwoFactorRequiredError) Error() string {
	return "instagram: two factor authentication required"
}

// CodeSentError reports that the platform pushed a verification code through
// the named channel and is waiting for it. It is the "interactive input
// needed" outcome of the code-provider hook, expressed as a value instead of
// control flow.
type CodeSentError struct {
	Channel string
}

func (e *CodeSentError) Error() string {
	return fmt.Sprintf("instagram: verification code sent via %s", e.Channel)
}

// BadCredentialsError reports a rejected password. The platform's message is
// preserved because it distinguishes plain bad passwords from IP blocks.
type BadCredentialsError struct {
	Message string
}

func (e *BadCredentialsError) Error() string {
	if e.Message == "" {
		return "instagram: bad credentials"
	}
	return "instagram: " + e.Message
}
