package broker

import (
	"context"
	"errors"
	"strings"

	"github.com/leadkit/igbroker/instagram"
	"github.com/leadkit/igbroker/pkg/logger"
)

// Login authenticates accountID against the platform with the given
// credentials. A challenge or two-factor demand is not a failure: the broker
// records the interrupted login and tells the caller what it needs next.
func (s *Service) Login(ctx context.Context, accountID, username, password string) *AuthResult {
	cl := s.registry.GetOrCreate(accountID)

	err := cl.Login(ctx, username, password)
	if err == nil {
		s.observeTransition(ctx, accountID, EventLoginOK)
		s.saveSession(ctx, accountID, username, cl)

		// The login call can succeed while the session is already flagged;
		// probe once so the caller learns about a checkpoint immediately.
		info, probeErr := cl.AccountInfo(ctx)
		switch {
		case probeErr == nil:
			return &AuthResult{Success: true, PK: info.PK, Username: username}
		case errors.Is(probeErr, instagram.ErrChallengeRequired):
			return s.resolveChallenge(ctx, accountID, username, "")
		default:
			s.log.WarnContext(ctx, "post-login probe failed, keeping session",
				logger.AccountID(accountID), logger.Error(probeErr))
			return &AuthResult{Success: true, PK: cl.UserID(), Username: username}
		}
	}

	var codeSent *instagram.CodeSentError
	var twoFactor *instagram.TwoFactorRequiredError

	switch {
	case errors.As(err, &codeSent):
		// The platform already dispatched a verification code during login.
		s.observeTransition(ctx, accountID, EventChallengeRequired)
		s.setPendingChallenge(accountID, pendingChallengeInfo{Username: username, Password: password})
		s.saveSession(ctx, accountID, username, cl)
		return checkpointResult(verifyCodeMessage(codeSent.Channel), "verify_code", true)

	case errors.As(err, &twoFactor):
		s.observeTransition(ctx, accountID, EventTwoFactorRequired)
		s.setPending2FA(accountID, pendingTwoFactor{
			Username:   username,
			Password:   password,
			Identifier: twoFactor.Identifier,
			Methods:    twoFactor.Methods,
		})
		s.saveSession(ctx, accountID, username, cl)
		return &AuthResult{
			Needs2FA:            true,
			TwoFactorIdentifier: twoFactor.Identifier,
			Methods:             twoFactor.Methods,
			Message:             "Two-factor authentication required. Enter the code from your authenticator app or SMS.",
		}

	case errors.Is(err, instagram.ErrChallengeRequired):
		s.observeTransition(ctx, accountID, EventChallengeRequired)
		return s.resolveChallenge(ctx, accountID, username, password)

	case errors.Is(err, instagram.ErrMalformedResponse):
		// The login mostly went through but an interstitial blocked the final
		// response. A populated pk means the session is usable enough to keep.
		if cl.UserID() != "" {
			s.saveSession(ctx, accountID, username, cl)
			return checkpointResult(
				"Login completed but Instagram flagged the session. Open the Instagram app to confirm it was you, then retry.",
				"manual_verification", false)
		}
		return failureResult(err)
	}

	s.log.WarnContext(ctx, "login failed",
		logger.AccountID(accountID), logger.Username(username), logger.Error(err))
	return failureResult(err)
}

// CompleteTwoFactor finishes a login that was interrupted by a two-factor
// demand. The pending entry survives failed attempts so the caller can retry
// with a fresh code.
func (s *Service) CompleteTwoFactor(ctx context.Context, accountID, code string) *AuthResult {
	pending, ok := s.takePending2FA(accountID)
	if !ok {
		return &AuthResult{Error: "No two-factor login is pending for this account."}
	}
	cl := s.registry.GetOrCreate(accountID)

	err := cl.LoginWithCode(ctx, pending.Username, pending.Password, code)
	switch {
	case err == nil:
		s.observeTransition(ctx, accountID, EventTwoFactorCompleted)
		s.clearPending2FA(accountID)
		s.saveSession(ctx, accountID, pending.Username, cl)
		return &AuthResult{Success: true, PK: cl.UserID(), Username: pending.Username}

	case errors.Is(err, instagram.ErrChallengeRequired):
		// The platform escalated from 2FA to a challenge.
		s.observeTransition(ctx, accountID, EventChallengeRequired)
		s.clearPending2FA(accountID)
		return s.resolveChallenge(ctx, accountID, pending.Username, pending.Password)
	}

	s.log.WarnContext(ctx, "two-factor completion failed",
		logger.AccountID(accountID), logger.Error(err))
	return failureResult(err)
}

// RestoreSession rebuilds a live client from the persisted record and
// validates it with a cheap authenticated probe.
func (s *Service) RestoreSession(ctx context.Context, accountID string) *RestoreResult {
	rec, err := s.store.Load(accountID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return &RestoreResult{Success: false, Restored: false}
		}
		s.log.ErrorContext(ctx, "failed to load session record",
			logger.AccountID(accountID), logger.Error(err))
		return &RestoreResult{Success: false, Restored: false, Error: "Stored session could not be read."}
	}

	cl := s.registry.GetOrCreate(accountID)
	if err := cl.ApplySettings(rec.Session); err != nil {
		s.registry.Remove(accountID)
		s.log.ErrorContext(ctx, "failed to apply session settings",
			logger.AccountID(accountID), logger.Error(err))
		return &RestoreResult{Success: false, Restored: false, Error: "Stored session could not be applied."}
	}
	hasAuth := rec.Session.SessionID() != ""

	_, probeErr := cl.TimelineFeed(ctx)
	switch {
	case probeErr == nil:
		s.observeTransition(ctx, accountID, EventSessionRestored)
		s.saveSession(ctx, accountID, rec.Username, cl)
		return &RestoreResult{Success: true, Restored: true, Username: rec.Username}

	case errors.Is(probeErr, instagram.ErrLoginRequired):
		if hasAuth {
			// Cookies are present, so the session likely just hit a
			// checkpoint. Keep the client alive and let the caller retry.
			return &RestoreResult{Success: true, Restored: true, Username: rec.Username, NeedsCheckpoint: true}
		}
		s.observeTransition(ctx, accountID, EventSessionExpired)
		s.registry.Remove(accountID)
		return &RestoreResult{Success: false, Restored: false, Error: "Session expired."}
	}

	s.log.WarnContext(ctx, "session restore probe failed",
		logger.AccountID(accountID), logger.Error(probeErr))
	if hasAuth {
		return &RestoreResult{Success: true, Restored: true, Username: rec.Username, NeedsCheckpoint: true}
	}
	if strings.Contains(strings.ToLower(probeErr.Error()), "login_required") {
		s.registry.Remove(accountID)
		return &RestoreResult{Success: false, Restored: false, Error: "Session expired."}
	}
	return &RestoreResult{Success: true, Restored: true, Username: rec.Username, NeedsCheckpoint: true}
}

// Logout tears down everything the broker holds for accountID. It is
// idempotent: logging out an unknown account succeeds.
func (s *Service) Logout(ctx context.Context, accountID string) *LogoutResult {
	s.observeTransition(ctx, accountID, EventLogout)
	s.clearPending2FA(accountID)
	s.clearPendingChallenge(accountID)

	if cl, ok := s.registry.Get(accountID); ok {
		if err := cl.Logout(ctx); err != nil {
			s.log.WarnContext(ctx, "remote logout failed",
				logger.AccountID(accountID), logger.Error(err))
		}
	}
	s.registry.Remove(accountID)

	if err := s.store.Delete(accountID); err != nil {
		s.log.ErrorContext(ctx, "failed to delete session record",
			logger.AccountID(accountID), logger.Error(err))
	}
	return &LogoutResult{Success: true}
}

// verifyCodeMessage tells the caller where the verification code landed.
func verifyCodeMessage(channel string) string {
	if strings.Contains(strings.ToLower(channel), "email") {
		return "Instagram sent a verification code to your email. Enter it to continue."
	}
	return "Instagram sent a verification code by SMS. Enter it to continue."
}
