package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redismock/v8"
	"github.com/lib/pq"
	"github.com/personeltakip/backend/internal/config"
	"github.com/personeltakip/backend/internal/middleware"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authHarness struct {
	svc      *AuthService
	users    *fakeUserStore
	sessions *fakeSessionStore
	sender   *captureSender
	router   http.Handler
	cookies  map[string]*http.Cookie
}

func newAuthHarness(t *testing.T, limiter *AttemptLimiter) *authHarness {
	t.Helper()

	users := newFakeUserStore()
	store := newFakeSessionStore()
	sender := &captureSender{}

	manager, err := NewSessionManager(store, users, testSessionConfig())
	require.NoError(t, err)

	svc := NewAuthService(users, manager, sender, limiter, discardAudit(), testAuthConfig(), testSMSConfig())

	r := chi.NewRouter()
	r.Post("/api/register", svc.Register)
	r.Post("/api/login", svc.Login)
	r.Post("/api/verify-2fa", svc.Verify2FA)
	r.Post("/api/logout", svc.Logout)
	r.With(middleware.RequireAuth(manager)).Get("/api/user", svc.CurrentUser)

	return &authHarness{
		svc:      svc,
		users:    users,
		sessions: store,
		sender:   sender,
		router:   r,
		cookies:  make(map[string]*http.Cookie),
	}
}

func (h *authHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	for _, c := range h.cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, r)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(h.cookies, c.Name)
			continue
		}
		h.cookies[c.Name] = c
	}
	return w
}

func (h *authHarness) register(t *testing.T, phone, password string) models.PublicUser {
	t.Helper()
	w := h.do(t, "POST", "/api/register", map[string]any{"phone": phone, "password": password, "name": "Test User"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func (h *authHarness) login(t *testing.T, phone, password string) LoginResponse {
	t.Helper()
	w := h.do(t, "POST", "/api/login", LoginRequest{Phone: phone, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthService_Register(t *testing.T) {
	h := newAuthHarness(t, nil)

	t.Run("creates user and session", func(t *testing.T) {
		user := h.register(t, "05551112233", "Secret123!")
		assert.Equal(t, "05551112233", user.Phone)
		assert.Equal(t, "Test User", user.Name)
		assert.Equal(t, models.RoleBranchAdmin, user.Role)
		assert.True(t, user.IsActive)
		assert.Contains(t, h.cookies, "sid")
		assert.Equal(t, 1, h.sessions.count())
	})

	t.Run("never exposes secrets", func(t *testing.T) {
		w := h.do(t, "POST", "/api/register", map[string]any{"phone": "05550000001", "password": "Secret123!", "name": "Other"})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotContains(t, w.Body.String(), "twoFactor")
	})

	t.Run("duplicate phone", func(t *testing.T) {
		w := h.do(t, "POST", "/api/register", map[string]any{"phone": "05551112233", "password": "Secret123!", "name": "Again"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrPhoneTaken.Error(), decodeError(t, w).Error)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := h.do(t, "POST", "/api/register", map[string]any{"phone": "05551112299"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Contains(t, resp.Details, "Password")
		assert.Contains(t, resp.Details, "Name")
	})

	t.Run("requested role is honored", func(t *testing.T) {
		w := h.do(t, "POST", "/api/register", map[string]any{"phone": "05551112277", "password": "Secret123!", "name": "Ops Lead", "role": models.RoleSuperAdmin})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var user models.PublicUser
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
		assert.Equal(t, models.RoleSuperAdmin, user.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		w := h.do(t, "POST", "/api/register", map[string]any{"phone": "05551112276", "password": "Secret123!", "name": "Ops Lead", "role": "root"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Details, "Role")
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		w := h.do(t, "POST", "/api/register", map[string]any{"phone": "05551112298", "password": "Secret123!", "name": "X Y", "isAdmin": true})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthService_RegisterUnknownBranch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	users := repository.NewUserRepository(db)
	store := newFakeSessionStore()
	manager, err := NewSessionManager(store, users, testSessionConfig())
	require.NoError(t, err)
	svc := NewAuthService(users, manager, &captureSender{}, nil, discardAudit(), testAuthConfig(), testSMSConfig())

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("05551112233", sqlmock.AnyArg(), "Test User", models.RoleBranchAdmin, int64(999)).
		WillReturnError(&pq.Error{Code: "23503"})

	body := `{"phone":"05551112233","password":"Secret123!","name":"Test User","branchId":999}`
	w := httptest.NewRecorder()
	svc.Register(w, httptest.NewRequest("POST", "/api/register", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Referenced record does not exist or is still in use", decodeError(t, w).Error)
	assert.Empty(t, w.Result().Cookies())
	assert.Zero(t, store.count())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_LoginNeverAuthenticates(t *testing.T) {
	h := newAuthHarness(t, nil)
	user := h.register(t, "05551112233", "Secret123!")
	h.cookies = make(map[string]*http.Cookie)

	w := h.do(t, "POST", "/api/login", LoginRequest{Phone: "05551112233", Password: "Secret123!"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.RequiresTwoFactor)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, 1, h.sessions.count())

	w = h.do(t, "GET", "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthService_LoginDenied(t *testing.T) {
	h := newAuthHarness(t, nil)
	user := h.register(t, "05551112233", "Secret123!")
	inactive := h.register(t, "05551112244", "Secret123!")
	h.users.setActive(inactive.ID, false)

	tests := []struct {
		name     string
		phone    string
		password string
	}{
		{"wrong password", "05551112233", "wrong-password"},
		{"unknown phone", "05559999999", "Secret123!"},
		{"inactive user", "05551112244", "Secret123!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(t, "POST", "/api/login", LoginRequest{Phone: tt.phone, Password: tt.password})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, ErrInvalidCredentials.Error(), decodeError(t, w).Error)
		})
	}

	stored, err := h.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TwoFactorCode)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 2000; i++ {
		code, err := generateCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}

	tests := []struct {
		length int
		want   int
	}{
		{4, 4},
		{8, 8},
		{0, 6},
		{12, 6},
	}
	for _, tt := range tests {
		code, err := generateCode(tt.length)
		require.NoError(t, err)
		assert.Len(t, code, tt.want)
		assert.NotEqual(t, byte('0'), code[0])
	}
}

func TestPendingLoginTracker_CodeLength(t *testing.T) {
	users := newFakeUserStore()
	u, err := users.Create(context.Background(), &models.User{Phone: "05551112233", Name: "Test User"})
	require.NoError(t, err)

	cfg := testAuthConfig()
	cfg.CodeLength = 8
	sender := &captureSender{}
	tracker := NewPendingLoginTracker(users, sender, discardAudit(), cfg, testSMSConfig())

	_, err = tracker.Issue(context.Background(), u)
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TwoFactorCode)
	assert.Len(t, *stored.TwoFactorCode, 8)
	assert.Contains(t, sender.messages[0], *stored.TwoFactorCode)
}

func TestAuthService_EndToEnd(t *testing.T) {
	h := newAuthHarness(t, nil)
	registered := h.register(t, "05551112233", "Secret123!")
	h.cookies = make(map[string]*http.Cookie)

	resp := h.login(t, "05551112233", "Secret123!")
	assert.True(t, resp.RequiresTwoFactor)
	assert.Equal(t, registered.ID, resp.UserID)

	w := h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: resp.UserID, Code: "000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrIncorrectCode.Error(), decodeError(t, w).Error)

	code := h.sender.lastCode()
	require.Len(t, code, 6)

	w = h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: resp.UserID, Code: code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, h.cookies, "sid")

	w = h.do(t, "GET", "/api/user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var current models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	assert.Equal(t, registered.ID, current.ID)

	// the same code is consumed
	w = h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: resp.UserID, Code: code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrNoPendingCode.Error(), decodeError(t, w).Error)

	// logout then the session is gone
	w = h.do(t, "POST", "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(t, "GET", "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// logout is idempotent
	w = h.do(t, "POST", "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthService_VerifyExpiredCode(t *testing.T) {
	h := newAuthHarness(t, nil)
	h.register(t, "05551112233", "Secret123!")
	h.cookies = make(map[string]*http.Cookie)

	issuedAt := time.Now()
	resp := h.login(t, "05551112233", "Secret123!")
	code := h.sender.lastCode()

	h.svc.verifier.now = func() time.Time { return issuedAt.Add(5*time.Minute + time.Second) }

	w := h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: resp.UserID, Code: code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeExpired.Error(), decodeError(t, w).Error)
	assert.NotContains(t, h.cookies, "sid")
}

func TestAuthService_NewLoginSupersedesCode(t *testing.T) {
	h := newAuthHarness(t, nil)
	h.register(t, "05551112233", "Secret123!")
	h.cookies = make(map[string]*http.Cookie)

	resp := h.login(t, "05551112233", "Secret123!")
	oldCode := h.sender.lastCode()

	newCode := oldCode
	for newCode == oldCode {
		h.login(t, "05551112233", "Secret123!")
		newCode = h.sender.lastCode()
	}

	w := h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: resp.UserID, Code: oldCode})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: resp.UserID, Code: newCode})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthService_VerifyUnknownUser(t *testing.T) {
	h := newAuthHarness(t, nil)

	w := h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: 42, Code: "123456"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrUserNotFound.Error(), decodeError(t, w).Error)
}

func TestAuthService_VerifyWithoutPendingCode(t *testing.T) {
	h := newAuthHarness(t, nil)
	user := h.register(t, "05551112233", "Secret123!")

	w := h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: user.ID, Code: "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrNoPendingCode.Error(), decodeError(t, w).Error)
}

func TestAuthService_DeliveryFailure(t *testing.T) {
	t.Run("lenient by default", func(t *testing.T) {
		h := newAuthHarness(t, nil)
		h.register(t, "05551112233", "Secret123!")
		h.sender.err = assert.AnError

		resp := h.login(t, "05551112233", "Secret123!")
		assert.True(t, resp.RequiresTwoFactor)
	})

	t.Run("strict returns bad gateway", func(t *testing.T) {
		h := newAuthHarness(t, nil)
		h.register(t, "05551112233", "Secret123!")
		h.sender.err = assert.AnError
		h.svc.pending.strict = true

		w := h.do(t, "POST", "/api/login", LoginRequest{Phone: "05551112233", Password: "Secret123!"})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, ErrCodeDelivery.Error(), decodeError(t, w).Error)
	})
}

func TestAuthService_TamperedCookie(t *testing.T) {
	h := newAuthHarness(t, nil)
	h.register(t, "05551112233", "Secret123!")
	require.Contains(t, h.cookies, "sid")

	h.cookies["sid"].Value += "x"
	before := h.sessions.gets

	w := h.do(t, "GET", "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, before, h.sessions.gets)
}

func TestAuthService_CodeAttemptsLimited(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewAttemptLimiter(client, &config.RateLimitConfig{
		Enabled:          true,
		MaxLoginFailures: 10,
		MaxCodeFailures:  5,
		Window:           15 * time.Minute,
	})
	h := newAuthHarness(t, limiter)

	mock.ExpectGet("auth:ratelimit:code:7").SetVal("5")

	w := h.do(t, "POST", "/api/verify-2fa", VerifyRequest{UserID: 7, Code: "123456"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, ErrTooManyAttempts.Error(), decodeError(t, w).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
