package broker

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/leadkit/igbroker/pkg/logger"
)

// minMassDelay is the floor on pacing between consecutive mass sends.
// Anything faster trips the platform's spam heuristics immediately.
const minMassDelay = 5 * time.Second

var usernamePlaceholder = regexp.MustCompile(`(?i)\{\{\s*username\s*\}\}`)

// SendDirectMessage sends one direct message to username.
func (s *Service) SendDirectMessage(ctx context.Context, accountID, username, text string) *DirectMessageResult {
	cl, err := s.client(accountID)
	if err != nil {
		return &DirectMessageResult{Error: Classify(err).Message}
	}

	userID, err := s.ResolveUserID(ctx, cl, username)
	if err != nil {
		return &DirectMessageResult{Error: Classify(err).Message}
	}
	thread, err := cl.DirectSend(ctx, text, []string{userID})
	if err != nil {
		s.log.WarnContext(ctx, "direct message send failed",
			logger.AccountID(accountID), logger.Username(username), logger.Error(err))
		return &DirectMessageResult{Error: Classify(err).Message}
	}

	res := &DirectMessageResult{Success: true}
	if thread != nil {
		res.Data = &DirectMessageData{ThreadID: thread.ThreadID}
	}
	return res
}

// SendMassMessage sends text to every usable recipient in usernames,
// pacing consecutive sends by at least minMassDelay. With useTemplate set,
// {{username}} placeholders are substituted per recipient; otherwise the
// text goes out verbatim. One recipient failing never stops the run; the
// result records each outcome in input order. Total counts the original
// list, including entries skipped as blank.
func (s *Service) SendMassMessage(ctx context.Context, accountID, text string, usernames []string, delay time.Duration, useTemplate bool) *MassMessageResult {
	result := &MassMessageResult{
		Sent:   []MassRecipientStatus{},
		Failed: []MassRecipientStatus{},
		Total:  len(usernames),
	}

	cl, err := s.client(accountID)
	if err != nil {
		msg := Classify(err).Message
		for _, raw := range usernames {
			username := normalizeRecipient(raw)
			if username == "" {
				continue
			}
			result.Failed = append(result.Failed, MassRecipientStatus{Username: username, Error: msg})
		}
		return result
	}

	if delay < minMassDelay {
		delay = minMassDelay
	}

	first := true
	for _, raw := range usernames {
		username := normalizeRecipient(raw)
		if username == "" {
			continue
		}
		if !first {
			s.sleep(delay)
		}
		first = false

		body := text
		if useTemplate {
			body = usernamePlaceholder.ReplaceAllString(text, username)
		}

		userID, err := s.ResolveUserID(ctx, cl, username)
		if err != nil {
			result.Failed = append(result.Failed, MassRecipientStatus{Username: username, Error: Classify(err).Message})
			continue
		}
		if _, err := cl.DirectSend(ctx, body, []string{userID}); err != nil {
			s.log.WarnContext(ctx, "mass message send failed",
				logger.AccountID(accountID), logger.Username(username), logger.Error(err))
			result.Failed = append(result.Failed, MassRecipientStatus{Username: username, Error: Classify(err).Message})
			continue
		}
		result.Sent = append(result.Sent, MassRecipientStatus{Username: username, Success: true})
	}
	return result
}

// normalizeRecipient trims whitespace and a leading @ from a raw handle.
func normalizeRecipient(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "@")
}
