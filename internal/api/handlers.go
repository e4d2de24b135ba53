package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/ignite/newsletter-service/internal/domain"
	"github.com/ignite/newsletter-service/internal/pkg/httputil"
	"github.com/ignite/newsletter-service/internal/pkg/logger"
	"github.com/ignite/newsletter-service/internal/subscription"
)

// CommandExecutor is the only write-side dependency of the HTTP layer.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd subscription.Command) error
}

// SubscriberLister is the read-side dependency, satisfied by both
// subscription.Reader and subscription.CachedReader.
type SubscriberLister interface {
	ConfirmedEmails(ctx context.Context) ([]string, error)
}

// CacheInvalidator drops cached read-side projections after a write. Nil
// when no cache is configured.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	executor CommandExecutor
	lister   SubscriberLister
	cache    CacheInvalidator
	db       *sql.DB
}

// NewHandlers creates the handler set. cache and db may be nil (no cache
// invalidation, health check skips the database probe).
func NewHandlers(executor CommandExecutor, lister SubscriberLister, cache CacheInvalidator, db *sql.DB) *Handlers {
	return &Handlers{executor: executor, lister: lister, cache: cache, db: db}
}

// HandleSubscribe registers a new subscriber from a form-encoded request.
//
//	POST /subscriptions  (name=...&email=...)
func (h *Handlers) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "malformed form body")
		return
	}

	cmd := subscription.Subscribe{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	}
	if err := h.executor.Execute(r.Context(), cmd); err != nil {
		h.writeCommandError(w, err)
		return
	}

	logger.Info("subscriber registered", "email", cmd.Email)
	httputil.OK(w, map[string]string{"status": "pending confirmation"})
}

// HandleConfirm redeems a confirmation token.
//
//	GET /subscriptions/confirm?token=...
func (h *Handlers) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httputil.BadRequest(w, "token is required")
		return
	}

	if err := h.executor.Execute(r.Context(), subscription.ConfirmSubscription{Token: token}); err != nil {
		h.writeCommandError(w, err)
		return
	}

	// Best effort: a stale listing is acceptable, a failed confirmation
	// is not.
	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context()); err != nil {
			logger.Warn("cache invalidation failed", "error", err.Error())
		}
	}

	httputil.OK(w, map[string]string{"status": "confirmed"})
}

// HandleSubscribers lists the addresses of all confirmed subscribers.
//
//	GET /subscribers
func (h *Handlers) HandleSubscribers(w http.ResponseWriter, r *http.Request) {
	emails, err := h.lister.ConfirmedEmails(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if emails == nil {
		emails = []string{}
	}
	httputil.OK(w, map[string][]string{"emails": emails})
}

// HandleHealthz reports liveness and, when a database handle is wired,
// probes it with a short deadline.
//
//	GET /healthz
func (h *Handlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			httputil.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": "down",
			})
			return
		}
	}
	httputil.OK(w, map[string]string{"status": "ok"})
}

// writeCommandError maps the error taxonomy to response codes: validation
// and not-found failures are client errors, everything else is a server
// error.
func (h *Handlers) writeCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAttribute):
		httputil.BadRequest(w, "invalid name or email")
	case errors.Is(err, subscription.ErrTokenNotFound):
		httputil.NotFound(w, "unknown subscription token")
	case errors.Is(err, subscription.ErrSubscriberNotFound):
		httputil.NotFound(w, "subscriber no longer exists")
	default:
		httputil.InternalError(w, err)
	}
}
