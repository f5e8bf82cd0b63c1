package instagram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadkit/igbroker/broker"
	instagramhttp "github.com/leadkit/igbroker/modules/instagram"
)

// stubService records the last call and returns canned results.
type stubService struct {
	lastAccountID string
	lastUsername  string
	lastLimit     int
	lastDelay     time.Duration
	lastRecipient []string
	lastTemplated bool

	auth    *broker.AuthResult
	restore *broker.RestoreResult
	mass    *broker.MassMessageResult
}

func (s *stubService) Login(_ context.Context, accountID, username, _ string) *broker.AuthResult {
	s.lastAccountID, s.lastUsername = accountID, username
	return s.auth
}

func (s *stubService) CompleteTwoFactor(_ context.Context, accountID, _ string) *broker.AuthResult {
	s.lastAccountID = accountID
	return s.auth
}

func (s *stubService) SubmitChallengeCode(_ context.Context, accountID, _ string) *broker.AuthResult {
	s.lastAccountID = accountID
	return s.auth
}

func (s *stubService) RetryAfterCheckpoint(_ context.Context, accountID string) *broker.AuthResult {
	s.lastAccountID = accountID
	return s.auth
}

func (s *stubService) RestoreSession(_ context.Context, accountID string) *broker.RestoreResult {
	s.lastAccountID = accountID
	return s.restore
}

func (s *stubService) Logout(context.Context, string) *broker.LogoutResult {
	return &broker.LogoutResult{Success: true}
}

func (s *stubService) SearchUsers(_ context.Context, accountID, _ string, limit int) *broker.UserSearchResult {
	s.lastAccountID, s.lastLimit = accountID, limit
	return &broker.UserSearchResult{Success: true}
}

func (s *stubService) SearchHashtags(context.Context, string, string, int) *broker.HashtagSearchResult {
	return &broker.HashtagSearchResult{Success: true}
}

func (s *stubService) SearchPlaces(context.Context, string, string) *broker.PlaceSearchResult {
	return &broker.PlaceSearchResult{Success: true}
}

func (s *stubService) UserInfo(_ context.Context, accountID, username string) *broker.UserInfoResult {
	s.lastAccountID, s.lastUsername = accountID, username
	return &broker.UserInfoResult{Success: true}
}

func (s *stubService) Followers(_ context.Context, accountID, username string, limit int) *broker.FollowersResult {
	s.lastAccountID, s.lastUsername, s.lastLimit = accountID, username, limit
	return &broker.FollowersResult{Success: true}
}

func (s *stubService) Following(_ context.Context, accountID, username string, limit int) *broker.FollowingResult {
	s.lastAccountID, s.lastUsername, s.lastLimit = accountID, username, limit
	return &broker.FollowingResult{Success: true}
}

func (s *stubService) UserMedias(context.Context, string, string, int) *broker.MediaListResult {
	return &broker.MediaListResult{Success: true}
}

func (s *stubService) HashtagMedias(context.Context, string, string, int) *broker.MediaListResult {
	return &broker.MediaListResult{Success: true}
}

func (s *stubService) LocationMedias(context.Context, string, string, int) *broker.MediaListResult {
	return &broker.MediaListResult{Success: true}
}

func (s *stubService) Timeline(_ context.Context, accountID string, limit int) *broker.MediaListResult {
	s.lastAccountID, s.lastLimit = accountID, limit
	return &broker.MediaListResult{Success: true}
}

func (s *stubService) PostLikers(_ context.Context, accountID, _ string, limit int) *broker.PostLikersResult {
	s.lastAccountID, s.lastLimit = accountID, limit
	return &broker.PostLikersResult{Success: true}
}

func (s *stubService) SendDirectMessage(context.Context, string, string, string) *broker.DirectMessageResult {
	return &broker.DirectMessageResult{Success: true}
}

func (s *stubService) SendMassMessage(_ context.Context, accountID, _ string, usernames []string, delay time.Duration, useTemplate bool) *broker.MassMessageResult {
	s.lastAccountID, s.lastRecipient, s.lastDelay = accountID, usernames, delay
	s.lastTemplated = useTemplate
	return s.mass
}

func (s *stubService) Clients() int { return 3 }

func newTestRouter(svc instagramhttp.Service) http.Handler {
	return instagramhttp.Router(svc, instagramhttp.RouterOptions{})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.10:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestRouter(t *testing.T) {
	t.Parallel()

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		rec, payload := doJSON(t, newTestRouter(&stubService{}), "GET", "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", payload["status"])
		assert.EqualValues(t, 3, payload["clients"])
	})

	t.Run("login validates body", func(t *testing.T) {
		t.Parallel()
		rec, payload := doJSON(t, newTestRouter(&stubService{}), "POST", "/login",
			`{"account_id":"acc-1","username":"alice"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, payload["error"], "password")
	})

	t.Run("login passes through the auth result", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{auth: &broker.AuthResult{Success: true, PK: "111", Username: "alice"}}
		rec, payload := doJSON(t, newTestRouter(svc), "POST", "/login",
			`{"account_id":"acc-1","username":"alice","password":"secret"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, payload["success"])
		assert.Equal(t, "111", payload["pk"])
		assert.Equal(t, "acc-1", svc.lastAccountID)
	})

	t.Run("two factor result keeps wire fields", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{auth: &broker.AuthResult{
			Needs2FA:            true,
			TwoFactorIdentifier: "tf-1",
			Methods:             []string{"sms"},
		}}
		rec, payload := doJSON(t, newTestRouter(svc), "POST", "/login",
			`{"account_id":"acc-1","username":"alice","password":"secret"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, payload["success"])
		assert.Equal(t, true, payload["needs_2fa"])
		assert.Equal(t, "tf-1", payload["two_factor_identifier"])
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		rec, _ := doJSON(t, newTestRouter(&stubService{}), "POST", "/login", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("followers forwards account id and limit", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{}
		rec, _ := doJSON(t, newTestRouter(svc), "GET", "/user/bob/followers?account_id=acc-1&limit=25", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "acc-1", svc.lastAccountID)
		assert.Equal(t, "bob", svc.lastUsername)
		assert.Equal(t, 25, svc.lastLimit)
	})

	t.Run("limit defaults when absent or invalid", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{}
		doJSON(t, newTestRouter(svc), "GET", "/user/bob/followers?account_id=acc-1&limit=banana", "")
		assert.Equal(t, 50, svc.lastLimit)
	})

	t.Run("search requires a query", func(t *testing.T) {
		t.Parallel()
		rec, _ := doJSON(t, newTestRouter(&stubService{}), "GET", "/search/users?account_id=acc-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("mass dm converts delay and forwards recipients", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{mass: &broker.MassMessageResult{
			Sent:   []broker.MassRecipientStatus{},
			Failed: []broker.MassRecipientStatus{},
			Total:  2,
		}}
		rec, payload := doJSON(t, newTestRouter(svc), "POST", "/dm/mass",
			`{"account_id":"acc-1","usernames":["@a","b"],"message":"hi {{username}}","delay_ms":7000,"use_template":true}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"@a", "b"}, svc.lastRecipient)
		assert.Equal(t, 7*time.Second, svc.lastDelay)
		assert.True(t, svc.lastTemplated)
		assert.EqualValues(t, 2, payload["total"])
	})

	t.Run("mass dm defaults to verbatim bodies", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{mass: &broker.MassMessageResult{
			Sent:   []broker.MassRecipientStatus{},
			Failed: []broker.MassRecipientStatus{},
			Total:  1,
		}}
		doJSON(t, newTestRouter(svc), "POST", "/dm/mass",
			`{"account_id":"acc-1","usernames":["a"],"message":"hi {{username}}"}`)
		assert.False(t, svc.lastTemplated)
	})

	t.Run("timeline and likers defaults", func(t *testing.T) {
		t.Parallel()
		svc := &stubService{}
		doJSON(t, newTestRouter(svc), "GET", "/timeline?account_id=acc-1", "")
		assert.Equal(t, 20, svc.lastLimit)

		doJSON(t, newTestRouter(svc), "POST", "/post/likers",
			`{"account_id":"acc-1","post_url":"https://instagram.com/p/Abc123/"}`)
		assert.Equal(t, 100, svc.lastLimit)
	})

	t.Run("rate limit headers are set", func(t *testing.T) {
		t.Parallel()
		rec, _ := doJSON(t, newTestRouter(&stubService{}), "GET", "/health", "")
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	})
}
