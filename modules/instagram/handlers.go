package instagram

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadkit/igbroker/pkg/clientip"
)

const (
	defaultListLimit     = 50
	defaultLikersLimit   = 100
	defaultTimelineLimit = 20
)

type handlers struct {
	svc Service
	log *slog.Logger
}

// rateLimitKey buckets requests by account id when one is present, falling
// back to the client address so anonymous traffic is still bounded.
func rateLimitKey(r *http.Request) string {
	if id := r.URL.Query().Get("account_id"); id != "" {
		return "account:" + id
	}
	if id := r.Header.Get("X-Account-ID"); id != "" {
		return "account:" + id
	}
	return "ip:" + clientip.GetIP(r)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": h.svc.Clients(),
	})
}

type loginRequest struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AccountID == "" || req.Username == "" || req.Password == "" {
		badRequest(w, "account_id, username and password are required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Login(r.Context(), req.AccountID, req.Username, req.Password))
}

type codeRequest struct {
	AccountID string `json:"account_id"`
	Code      string `json:"code"`
}

func (h *handlers) twoFactor(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AccountID == "" || req.Code == "" {
		badRequest(w, "account_id and code are required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.CompleteTwoFactor(r.Context(), req.AccountID, req.Code))
}

func (h *handlers) challengeCode(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AccountID == "" || req.Code == "" {
		badRequest(w, "account_id and code are required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SubmitChallengeCode(r.Context(), req.AccountID, req.Code))
}

type accountRequest struct {
	AccountID string `json:"account_id"`
}

func (h *handlers) challengeRetry(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AccountID == "" {
		badRequest(w, "account_id is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RetryAfterCheckpoint(r.Context(), req.AccountID))
}

func (h *handlers) restoreSession(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AccountID == "" {
		badRequest(w, "account_id is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.RestoreSession(r.Context(), req.AccountID))
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.AccountID == "" {
		badRequest(w, "account_id is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Logout(r.Context(), req.AccountID))
}

func (h *handlers) searchUsers(w http.ResponseWriter, r *http.Request) {
	accountID, query := r.URL.Query().Get("account_id"), r.URL.Query().Get("q")
	if query == "" {
		badRequest(w, "q is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SearchUsers(r.Context(), accountID, query, queryLimit(r)))
}

func (h *handlers) searchHashtags(w http.ResponseWriter, r *http.Request) {
	accountID, query := r.URL.Query().Get("account_id"), r.URL.Query().Get("q")
	if query == "" {
		badRequest(w, "q is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SearchHashtags(r.Context(), accountID, query, queryLimit(r)))
}

func (h *handlers) searchLocations(w http.ResponseWriter, r *http.Request) {
	accountID, query := r.URL.Query().Get("account_id"), r.URL.Query().Get("q")
	if query == "" {
		badRequest(w, "q is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SearchPlaces(r.Context(), accountID, query))
}

func (h *handlers) userInfo(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	username := chi.URLParam(r, "username")
	writeJSON(w, http.StatusOK, h.svc.UserInfo(r.Context(), accountID, username))
}

func (h *handlers) followers(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	username := chi.URLParam(r, "username")
	writeJSON(w, http.StatusOK, h.svc.Followers(r.Context(), accountID, username, queryLimit(r)))
}

func (h *handlers) following(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	username := chi.URLParam(r, "username")
	writeJSON(w, http.StatusOK, h.svc.Following(r.Context(), accountID, username, queryLimit(r)))
}

func (h *handlers) userMedia(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	username := chi.URLParam(r, "username")
	writeJSON(w, http.StatusOK, h.svc.UserMedias(r.Context(), accountID, username, queryLimit(r)))
}

func (h *handlers) hashtagMedia(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	name := chi.URLParam(r, "name")
	writeJSON(w, http.StatusOK, h.svc.HashtagMedias(r.Context(), accountID, name, queryLimit(r)))
}

func (h *handlers) locationMedia(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, h.svc.LocationMedias(r.Context(), accountID, id, queryLimit(r)))
}

func (h *handlers) timeline(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	limit := queryLimitDefault(r, defaultTimelineLimit)
	writeJSON(w, http.StatusOK, h.svc.Timeline(r.Context(), accountID, limit))
}

type postLikersRequest struct {
	AccountID string `json:"account_id"`
	PostURL   string `json:"post_url"`
	Limit     int    `json:"limit"`
}

func (h *handlers) postLikers(w http.ResponseWriter, r *http.Request) {
	var req postLikersRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PostURL == "" {
		badRequest(w, "post_url is required")
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultLikersLimit
	}
	writeJSON(w, http.StatusOK, h.svc.PostLikers(r.Context(), req.AccountID, req.PostURL, req.Limit))
}

type sendDMRequest struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
}

func (h *handlers) sendDM(w http.ResponseWriter, r *http.Request) {
	var req sendDMRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Message == "" {
		badRequest(w, "username and message are required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SendDirectMessage(r.Context(), req.AccountID, req.Username, req.Message))
}

type massDMRequest struct {
	AccountID   string   `json:"account_id"`
	Usernames   []string `json:"usernames"`
	Message     string   `json:"message"`
	DelayMS     int      `json:"delay_ms"`
	UseTemplate bool     `json:"use_template"`
}

func (h *handlers) sendMassDM(w http.ResponseWriter, r *http.Request) {
	var req massDMRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Usernames) == 0 || req.Message == "" {
		badRequest(w, "usernames and message are required")
		return
	}
	delay := time.Duration(req.DelayMS) * time.Millisecond
	h.log.InfoContext(r.Context(), "mass message dispatch",
		"account_id", req.AccountID, "recipients", len(req.Usernames))
	writeJSON(w, http.StatusOK, h.svc.SendMassMessage(r.Context(), req.AccountID, req.Message, req.Usernames, delay, req.UseTemplate))
}

// queryLimit parses the limit query parameter, defaulting when absent or
// unusable.
func queryLimit(r *http.Request) int {
	return queryLimitDefault(r, defaultListLimit)
}

func queryLimitDefault(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Encoding a handler-built value cannot fail; a broken connection is the
	// client's problem.
	_ = json.NewEncoder(w).Encode(v)
}
