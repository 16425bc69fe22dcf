package services

import (
	"context"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/personeltakip/backend/internal/audit"
	"github.com/personeltakip/backend/internal/config"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
)

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Phone == u.Phone {
			return nil, repository.ErrDuplicate
		}
	}
	f.nextID++
	created := *u
	created.ID = f.nextID
	created.IsActive = true
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.users[created.ID] = &created

	out := created
	return &out, nil
}

func (f *fakeUserStore) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Phone == phone {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserStore) SetPendingCode(ctx context.Context, userID int, code string, expiry time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	u.TwoFactorCode = &code
	u.TwoFactorExpiry = &expiry
	u.TwoFactorGeneration++
	return u.TwoFactorGeneration, nil
}

func (f *fakeUserStore) ClearPendingCode(ctx context.Context, userID int, generation int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok || u.TwoFactorCode == nil || u.TwoFactorGeneration != generation {
		return false, nil
	}
	u.TwoFactorCode = nil
	u.TwoFactorExpiry = nil
	return true, nil
}

func (f *fakeUserStore) setActive(id int, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].IsActive = active
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	gets     int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.Session)}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID int, expiresAt time.Time) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := models.Session{ID: uuid.NewString(), UserID: userID, ExpiresAt: expiresAt, CreatedAt: time.Now()}
	f.sessions[s.ID] = s
	return &s, nil
}

func (f *fakeSessionStore) Get(ctx context.Context, sid string, now time.Time) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gets++
	s, ok := f.sessions[sid]
	if !ok || s.Expired(now) {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sid)
	return nil
}

func (f *fakeSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for sid, s := range f.sessions {
		if s.Expired(now) {
			delete(f.sessions, sid)
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

var codePattern = regexp.MustCompile(`\d{6}`)

// captureSender records messages and can be told to fail.
type captureSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (s *captureSender) Send(ctx context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return s.err
}

func (s *captureSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return ""
	}
	return codePattern.FindString(s.messages[len(s.messages)-1])
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		CodeTTL:      5 * time.Minute,
		CodeLength:   6,
		ScryptN:      1024,
		ScryptR:      8,
		ScryptP:      1,
		ScryptKeyLen: 64,
		SaltLength:   16,
		DefaultRole:  models.RoleBranchAdmin,
	}
}

func testSessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		Secret:        "test-secret",
		CookieName:    "sid",
		TTL:           24 * time.Hour,
		PruneInterval: time.Minute,
	}
}

func testSMSConfig() *config.SMSConfig {
	return &config.SMSConfig{MessageFormat: "Kodunuz: %s"}
}

func discardAudit() *audit.Logger {
	return audit.NewLoggerTo(io.Discard)
}
