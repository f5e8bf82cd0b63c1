package broker

import (
	"context"
	"errors"

	"github.com/leadkit/igbroker/instagram"
	"github.com/leadkit/igbroker/pkg/logger"
)

// resolveChallenge attempts to clear a challenge without caller interaction,
// falling back to a checkpoint response the caller can act on. password may
// be empty when the challenge surfaced outside a credentialed login.
func (s *Service) resolveChallenge(ctx context.Context, accountID, username, password string) *AuthResult {
	cl := s.registry.GetOrCreate(accountID)
	s.setPendingChallenge(accountID, pendingChallengeInfo{Username: username, Password: password})

	err := cl.ResolveChallengeAuto(ctx)
	if err == nil {
		s.observeTransition(ctx, accountID, EventChallengeResolved)
		s.clearPendingChallenge(accountID)
		s.saveSession(ctx, accountID, username, cl)
		return &AuthResult{Success: true, PK: cl.UserID(), Username: username}
	}

	var codeSent *instagram.CodeSentError
	switch {
	case errors.As(err, &codeSent):
		s.saveSession(ctx, accountID, username, cl)
		return checkpointResult(verifyCodeMessage(codeSent.Channel), "verify_code", true)

	case errors.Is(err, instagram.ErrUnknownChallengeStep):
		return checkpointResult(
			"Instagram put this account under login review. Open the Instagram app, approve the login attempt, then retry.",
			"delta_login_review", false)

	case errors.Is(err, instagram.ErrCaptchaChallenge):
		return checkpointResult(
			"Instagram is asking for a captcha. Complete it in the Instagram app or on instagram.com, then retry.",
			"manual_verification", false)

	case errors.Is(err, instagram.ErrContactPointRecovery):
		return checkpointResult(
			"Instagram needs to verify a contact point. Enter the code it sent you.",
			"verify_code", true)
	}

	s.log.WarnContext(ctx, "automatic challenge resolution failed",
		logger.AccountID(accountID), logger.Username(username), logger.Error(err))
	s.saveSession(ctx, accountID, username, cl)
	return checkpointResult(
		"Instagram requires additional verification. Open the Instagram app to confirm it was you, then retry.",
		"manual_verification", false)
}

// SubmitChallengeCode feeds a caller-supplied verification code into the
// pending challenge. The code provider is swapped in for exactly one
// resolution attempt and restored afterwards.
func (s *Service) SubmitChallengeCode(ctx context.Context, accountID, code string) *AuthResult {
	cl, ok := s.registry.Get(accountID)
	if !ok {
		return &AuthResult{Error: "No active session."}
	}
	pending, _ := s.getPendingChallenge(accountID)
	username := pending.Username

	// One-shot provider: the first demand gets the caller's code, any further
	// demand means the code was consumed and a new one is on its way.
	used := false
	cl.SetCodeProvider(func(user, channel string) (string, error) {
		if used {
			return "", &instagram.CodeSentError{Channel: channel}
		}
		used = true
		return code, nil
	})
	defer cl.SetCodeProvider(instagram.RaiseCodeRequest)

	if pending.Password != "" {
		// The challenge interrupted a credentialed login; replaying the login
		// with the code provider installed completes it.
		err := cl.Login(ctx, pending.Username, pending.Password)
		var codeSent *instagram.CodeSentError
		switch {
		case err == nil:
			return s.challengeResolved(ctx, accountID, username, cl)
		case errors.As(err, &codeSent):
			return &AuthResult{Error: "Incorrect or expired code. Try again."}
		case errors.Is(err, instagram.ErrMalformedResponse) && cl.UserID() != "":
			return s.challengeResolved(ctx, accountID, username, cl)
		}
		s.log.WarnContext(ctx, "challenge code replay failed",
			logger.AccountID(accountID), logger.Error(err))
		return failureResult(err)
	}

	err := cl.ResolveChallengeAuto(ctx)
	var codeSent *instagram.CodeSentError
	if err == nil || errors.As(err, &codeSent) {
		// A CodeSentError here means the resolver consumed the code and asked
		// for nothing more, which the client reports through the provider path.
		return s.challengeResolved(ctx, accountID, username, cl)
	}
	s.log.WarnContext(ctx, "challenge code resolution failed",
		logger.AccountID(accountID), logger.Error(err))
	return failureResult(err)
}

// RetryAfterCheckpoint re-probes the session after the caller confirmed the
// login in the platform's app. One silent restore from disk is attempted
// before giving up.
func (s *Service) RetryAfterCheckpoint(ctx context.Context, accountID string) *AuthResult {
	cl, ok := s.registry.Get(accountID)
	if !ok {
		return &AuthResult{Error: "No active session."}
	}

	info, err := cl.AccountInfo(ctx)
	switch {
	case err == nil:
		s.observeTransition(ctx, accountID, EventChallengeResolved)
		s.clearPendingChallenge(accountID)
		s.saveSession(ctx, accountID, info.Username, cl)
		return &AuthResult{Success: true, PK: info.PK, Username: info.Username,
			Message: "Session restored. You can search now."}

	case errors.Is(err, instagram.ErrLoginRequired):
		if res := s.retryFromDisk(ctx, accountID, cl); res != nil {
			return res
		}
		s.observeTransition(ctx, accountID, EventSessionExpired)
		return &AuthResult{Error: "The session expired. Disconnect and log in again."}
	}

	s.log.WarnContext(ctx, "checkpoint retry probe failed",
		logger.AccountID(accountID), logger.Error(err))
	return failureResult(err)
}

// retryFromDisk reloads the persisted session and replays it into the live
// client. It returns nil when the stored session cannot rescue the account.
func (s *Service) retryFromDisk(ctx context.Context, accountID string, cl instagram.Client) *AuthResult {
	rec, err := s.store.Load(accountID)
	if err != nil {
		return nil
	}
	sessionID := rec.Session.SessionID()
	if sessionID == "" {
		return nil
	}
	if err := cl.ApplySettings(rec.Session); err != nil {
		return nil
	}
	if err := cl.LoginBySessionID(ctx, sessionID); err != nil {
		return nil
	}
	info, err := cl.AccountInfo(ctx)
	if err != nil {
		return nil
	}
	return s.challengeResolvedAs(ctx, accountID, info.Username, info.PK, cl)
}

// challengeResolved finalizes a successful challenge resolution.
func (s *Service) challengeResolved(ctx context.Context, accountID, username string, cl instagram.Client) *AuthResult {
	return s.challengeResolvedAs(ctx, accountID, username, cl.UserID(), cl)
}

func (s *Service) challengeResolvedAs(ctx context.Context, accountID, username, pk string, cl instagram.Client) *AuthResult {
	s.observeTransition(ctx, accountID, EventChallengeResolved)
	s.clearPendingChallenge(accountID)
	s.saveSession(ctx, accountID, username, cl)
	return &AuthResult{Success: true, PK: pk, Username: username}
}
