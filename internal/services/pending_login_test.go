package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/personeltakip/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// supersedingUserStore issues a fresh code right after the verifier has read
// the user, as a concurrent login would.
type supersedingUserStore struct {
	*fakeUserStore
	armed bool
}

func (s *supersedingUserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := s.fakeUserStore.GetByID(ctx, id)
	if err != nil || !s.armed {
		return u, err
	}
	s.armed = false
	if _, err := s.fakeUserStore.SetPendingCode(ctx, id, "654321", time.Now().Add(5*time.Minute)); err != nil {
		return nil, err
	}
	return u, nil
}

func seedPendingUser(t *testing.T, users *fakeUserStore, code string) *models.User {
	t.Helper()
	ctx := context.Background()
	u, err := users.Create(ctx, &models.User{Phone: "05551112233", Name: "Test User", Role: models.RoleBranchAdmin})
	require.NoError(t, err)
	_, err = users.SetPendingCode(ctx, u.ID, code, time.Now().Add(5*time.Minute))
	require.NoError(t, err)
	return u
}

func TestCodeVerifier_SupersededBeforeClear(t *testing.T) {
	users := &supersedingUserStore{fakeUserStore: newFakeUserStore()}
	u := seedPendingUser(t, users.fakeUserStore, "123456")
	users.armed = true

	_, err := NewCodeVerifier(users, discardAudit()).Verify(context.Background(), u.ID, "123456")
	assert.ErrorIs(t, err, ErrNoPendingCode)

	stored, err := users.fakeUserStore.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.TwoFactorCode)
	assert.Equal(t, "654321", *stored.TwoFactorCode)
}

func TestAuthService_VerifySupersededCodeStartsNoSession(t *testing.T) {
	users := &supersedingUserStore{fakeUserStore: newFakeUserStore()}
	u := seedPendingUser(t, users.fakeUserStore, "123456")
	users.armed = true

	store := newFakeSessionStore()
	manager, err := NewSessionManager(store, users, testSessionConfig())
	require.NoError(t, err)
	svc := NewAuthService(users, manager, &captureSender{}, nil, discardAudit(), testAuthConfig(), testSMSConfig())

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(VerifyRequest{UserID: u.ID, Code: "123456"}))
	w := httptest.NewRecorder()
	svc.Verify2FA(w, httptest.NewRequest("POST", "/api/verify-2fa", &body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrNoPendingCode.Error(), decodeError(t, w).Error)
	assert.Empty(t, w.Result().Cookies())
	assert.Zero(t, store.count())
}

func TestCodeVerifier_ConcurrentVerifiersConsumeOnce(t *testing.T) {
	users := newFakeUserStore()
	u := seedPendingUser(t, users, "123456")
	verifier := NewCodeVerifier(users, discardAudit())

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := verifier.Verify(context.Background(), u.ID, "123456")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrNoPendingCode):
				rejected++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, rejected)
}
