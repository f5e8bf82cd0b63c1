// Package instagram exposes the session broker over HTTP. Every route takes
// an account id (JSON body for writes, query parameter for reads) so one
// process can broker many accounts.
package instagram

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leadkit/igbroker/pkg/logger"
	"github.com/leadkit/igbroker/pkg/ratelimiter"
	"github.com/leadkit/igbroker/pkg/requestid"
)

// Rate limit applied per account id (or client address for anonymous calls).
const (
	rateLimitCapacity = 30
	rateLimitRefill   = 30
	rateLimitInterval = time.Minute
)

// RouterOptions configures the module router.
type RouterOptions struct {
	Logger *slog.Logger

	// RateLimiter guards the whole surface. When nil a memory-backed bucket
	// with the default budget is created.
	RateLimiter *ratelimiter.Bucket
}

// Router mounts the broker surface.
func Router(svc Service, opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}

	limiter := opts.RateLimiter
	if limiter == nil {
		bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
			Capacity:       rateLimitCapacity,
			RefillRate:     rateLimitRefill,
			RefillInterval: rateLimitInterval,
		})
		if err != nil {
			panic(err)
		}
		limiter = bucket
	}

	h := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(ratelimiter.Middleware(limiter, rateLimitKey))

	r.Get("/health", h.health)

	r.Post("/login", h.login)
	r.Post("/2fa", h.twoFactor)
	r.Post("/challenge/code", h.challengeCode)
	r.Post("/challenge/retry", h.challengeRetry)
	r.Post("/restore-session", h.restoreSession)
	r.Post("/logout", h.logout)

	r.Get("/search/users", h.searchUsers)
	r.Get("/search/hashtags", h.searchHashtags)
	r.Get("/search/locations", h.searchLocations)

	r.Get("/user/{username}/info", h.userInfo)
	r.Get("/user/{username}/followers", h.followers)
	r.Get("/user/{username}/following", h.following)
	r.Get("/user/{username}/media", h.userMedia)
	r.Get("/hashtag/{name}/media", h.hashtagMedia)
	r.Get("/location/{id}/media", h.locationMedia)
	r.Get("/timeline", h.timeline)
	r.Post("/post/likers", h.postLikers)

	r.Post("/dm/send", h.sendDM)
	r.Post("/dm/mass", h.sendMassDM)

	return r
}
