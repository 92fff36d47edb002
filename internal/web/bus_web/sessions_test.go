package bus_web

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func newTestStore(t *testing.T, ttl time.Duration) *SessionStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewSessionStore(ttl, func() *session.Controller {
		return session.NewController(nil, logger)
	}, nil)
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

// visit asks the store for a controller with cookie (if any) and returns the
// controller plus the cookie the response set, nil when none was set.
func visit(store *SessionStore, cookie *http.Cookie) (*session.Controller, *http.Cookie) {
	request := httptest.NewRequest(http.MethodGet, "/eta", nil)
	if cookie != nil {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	controller := store.Controller(recorder, request)
	for _, set := range recorder.Result().Cookies() {
		if set.Name == SessionCookieName {
			return controller, set
		}
	}
	return controller, nil
}

func TestSessionStoreReusesControllerForCookie(t *testing.T) {
	store := newTestStore(t, time.Minute)

	first, cookie := visit(store, nil)
	if cookie == nil {
		t.Fatal("new session should set a cookie")
	}
	again, reset := visit(store, cookie)
	if again != first {
		t.Error("same cookie should map to the same controller")
	}
	if reset != nil {
		t.Error("known session should not reset the cookie")
	}
	if store.Active() != 1 {
		t.Errorf("Active = %d, want 1", store.Active())
	}
}

func TestSessionStoreRejectsMalformedCookie(t *testing.T) {
	store := newTestStore(t, time.Minute)

	_, cookie := visit(store, &http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	if cookie == nil || cookie.Value == "not-a-uuid" {
		t.Fatalf("cookie = %+v, want a fresh session id", cookie)
	}
}

func TestSessionStoreExpiresIdleSessions(t *testing.T) {
	store := newTestStore(t, 50*time.Millisecond)

	first, cookie := visit(store, nil)

	deadline := time.Now().Add(2 * time.Second)
	for store.Active() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if store.Active() != 0 {
		t.Fatalf("Active = %d after ttl, want 0", store.Active())
	}

	second, reset := visit(store, cookie)
	if second == first {
		t.Error("expired session should get a new controller")
	}
	if reset == nil || reset.Value == cookie.Value {
		t.Error("expired session should get a new cookie")
	}
}

func TestSessionStoreCloseDropsSessions(t *testing.T) {
	store := newTestStore(t, time.Minute)
	visit(store, nil)
	visit(store, nil)

	store.Close()
	store.Close()
	if store.Active() != 0 {
		t.Errorf("Active = %d after Close, want 0", store.Active())
	}
}
