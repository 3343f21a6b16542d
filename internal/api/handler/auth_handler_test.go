package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/domain"
	"github.com/societyhub/apartment-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, sessionID string) error
	currentFn  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.currentFn(ctx, userID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// withActor marks c as authenticated the way the Auth middleware does.
func withActor(c echo.Context, id int64, role domain.Role) {
	c.Set(CtxUserID, id)
	c.Set(CtxRole, role)
	c.Set(CtxUsername, "user")
	c.Set(CtxSessionID, "sess-1")
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			return ck
		}
	}
	return nil
}

// ---- Register ----

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	expires := time.Now().Add(time.Hour)
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Role != "tenant" || in.Name != "Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, Username: in.Username, Name: in.Name, Role: domain.RoleTenant}, nil
		},
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{
				Token:     "signed",
				SessionID: "sess-1",
				ExpiresAt: expires,
				User:      &domain.User{ID: 1, Username: username, Role: domain.RoleTenant},
			}, nil
		},
	}
	h := NewAuthHandler(stub, true)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register",
		`{"username":"alice","password":"secret1","name":"Alice","role":"tenant"}`), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "signed" || !ck.HttpOnly || !ck.Secure {
		t.Fatalf("unexpected session cookie: %+v", ck)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_UnknownRoleRejected(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register",
		`{"username":"bob","password":"secret1","name":"Bob","role":"admin"}`), rec)

	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/register",
		`{"username":"bob","password":"secret1","name":"Bob","role":"owner"}`), rec)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

// ---- Login / Logout ----

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"username":"bob","password":"nope"}`), rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessionCookie(rec) != nil {
		t.Fatalf("no cookie expected on failed login")
	}
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/login", `{"username":`), rec)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			revoked = sessionID
			return nil
		},
	}
	h := NewAuthHandler(stub, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/logout", nil), rec)
	withActor(c, 1, domain.RoleTenant)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if revoked != "sess-1" {
		t.Fatalf("expected session sess-1 revoked, got %q", revoked)
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", ck)
	}
}

// ---- Me ----

func TestAuthHandler_Me_RequiresActor(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), rec)

	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Me_ReturnsUser(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		currentFn: func(ctx context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "carol", Role: domain.RoleManager}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), rec)
	withActor(c, 7, domain.RoleManager)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user.ID != 7 || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
}
