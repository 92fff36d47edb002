package bus_web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus"

	"tarediiran-industries.com/bus-eta-services/internal/session"
)

const SessionCookieName = "bus_eta_session"

// SessionStore maps the session cookie to one controller per browser.
// Sessions expire after ttl without a request. Every hit extends the ttl.
type SessionStore struct {
	controllers   *ttlcache.Cache[string, *session.Controller]
	newController func() *session.Controller
	ttl           time.Duration
	closeOnce     sync.Once
}

func NewSessionStore(ttl time.Duration, newController func() *session.Controller, registry *prometheus.Registry) (*SessionStore, error) {
	controllers := ttlcache.New[string, *session.Controller](
		ttlcache.WithTTL[string, *session.Controller](ttl),
	)
	controllers.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, *session.Controller]) {
		item.Value().Close()
	})

	store := &SessionStore{
		controllers:   controllers,
		newController: newController,
		ttl:           ttl,
	}

	if registry != nil {
		gauge := prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "bus_eta_sessions_active",
				Help: "Web sessions that have not expired",
			},
			func() float64 { return float64(store.Active()) },
		)
		if err := registry.Register(gauge); err != nil {
			return nil, err
		}
	}

	go controllers.Start()
	return store, nil
}

// Controller returns the caller's controller, starting a new session (and
// setting the cookie) when the cookie is missing, malformed or expired.
func (store *SessionStore) Controller(writer http.ResponseWriter, request *http.Request) *session.Controller {
	if cookie, err := request.Cookie(SessionCookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			if item := store.controllers.Get(cookie.Value); item != nil {
				return item.Value()
			}
		}
	}

	id := uuid.NewString()
	controller := store.newController()
	store.controllers.Set(id, controller, ttlcache.DefaultTTL)

	http.SetCookie(writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(store.ttl.Seconds()),
	})
	return controller
}

func (store *SessionStore) Active() int {
	return store.controllers.Len()
}

// Close stops expiry and closes every live controller.
func (store *SessionStore) Close() {
	store.closeOnce.Do(func() {
		store.controllers.Stop()
		store.controllers.DeleteAll()
	})
}
