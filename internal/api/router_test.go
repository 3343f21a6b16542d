package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
	"github.com/societyhub/apartment-system/internal/infrastructure/http/handlers"
)

// tokenAuth accepts a fixed token per role and nothing else.
type tokenAuth struct {
	ports.AuthService
}

func (tokenAuth) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	role := domain.Role(token)
	if !role.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Session{ID: "s-" + token, UserID: 1, Username: token, Role: role}, nil
}

type staticAnnouncements struct{}

func (staticAnnouncements) Create(ctx context.Context, actor domain.Actor, in ports.CreateAnnouncementInput) (*domain.Announcement, error) {
	return &domain.Announcement{ID: 1, Title: in.Title, CreatedBy: actor.UserID}, nil
}

func (staticAnnouncements) List(ctx context.Context) ([]*domain.Announcement, error) {
	return []*domain.Announcement{{ID: 1, Title: "hello"}}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Services{
		Auth:          tokenAuth{},
		Announcements: staticAnnouncements{},
	}, Options{
		LoginPerSecond: 1,
		LoginBurst:     1,
		Readiness:      map[string]handlers.Pinger{},
		Registerer:     prometheus.NewRegistry(),
	}, zerolog.Nop())
}

func serve(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SessionRequired(t *testing.T) {
	h := newTestRouter(t)

	if rec := serve(h, http.MethodGet, "/api/announcements", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/api/announcements", "bogus"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown token, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/api/announcements", "visitor"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for any role, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminGroupGate(t *testing.T) {
	h := newTestRouter(t)

	for _, role := range []string{"tenant", "visitor"} {
		if rec := serve(h, http.MethodPost, "/api/announcements", role); rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", role, rec.Code)
		}
		if rec := serve(h, http.MethodGet, "/api/apartments/all", role); rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403 on apartments/all, got %d", role, rec.Code)
		}
	}
}

func TestRouter_HealthIsPublic(t *testing.T) {
	h := newTestRouter(t)

	if rec := serve(h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := serve(h, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness with no deps: expected 200, got %d", rec.Code)
	}
}

func TestRouter_LoginRateLimited(t *testing.T) {
	h := newTestRouter(t)

	// The first request consumes the burst; its body is invalid so it fails validation.
	if rec := serve(h, http.MethodPost, "/api/login", ""); rec.Code == http.StatusTooManyRequests {
		t.Fatalf("first login attempt must not be throttled")
	}
	if rec := serve(h, http.MethodPost, "/api/login", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}
