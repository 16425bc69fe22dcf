package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"time"

	"github.com/personeltakip/backend/internal/audit"
	"github.com/personeltakip/backend/internal/config"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
	"github.com/personeltakip/backend/internal/sms"
)

const (
	defaultCodeLength = 6
	maxCodeLength     = 9
)

// PendingLogin describes an issued verification code without exposing it.
type PendingLogin struct {
	UserID     int
	Generation int64
	ExpiresAt  time.Time
	Delivered  bool
}

// PendingLoginTracker issues verification codes after a correct password.
// Each issue overwrites the previous code and bumps the user's generation.
type PendingLoginTracker struct {
	users         UserStore
	sender        sms.Sender
	audit         *audit.Logger
	ttl           time.Duration
	codeLength    int
	messageFormat string
	strict        bool
	now           func() time.Time
}

func NewPendingLoginTracker(users UserStore, sender sms.Sender, auditLogger *audit.Logger, authCfg *config.AuthConfig, smsCfg *config.SMSConfig) *PendingLoginTracker {
	format := smsCfg.MessageFormat
	if format == "" {
		format = "Verification code: %s"
	}
	return &PendingLoginTracker{
		users:         users,
		sender:        sender,
		audit:         auditLogger,
		ttl:           authCfg.CodeTTL,
		codeLength:    authCfg.CodeLength,
		messageFormat: format,
		strict:        smsCfg.StrictDelivery,
		now:           time.Now,
	}
}

func (t *PendingLoginTracker) Issue(ctx context.Context, user *models.User) (*PendingLogin, error) {
	code, err := generateCode(t.codeLength)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	expiresAt := t.now().Add(t.ttl)
	generation, err := t.users.SetPendingCode(ctx, user.ID, code, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("store pending code: %w", err)
	}
	t.audit.LogSuccess(audit.EventCodeIssued, user.ID, nil)

	pending := &PendingLogin{
		UserID:     user.ID,
		Generation: generation,
		ExpiresAt:  expiresAt,
		Delivered:  true,
	}

	if err := t.sender.Send(ctx, user.Phone, fmt.Sprintf(t.messageFormat, code)); err != nil {
		log.Printf("[AUTH] Code delivery failed for user %d: %v", user.ID, err)
		t.audit.LogFailure(audit.EventCodeDelivery, user.ID, user.Phone, err)
		if t.strict {
			return nil, fmt.Errorf("%w: %v", ErrCodeDelivery, err)
		}
		pending.Delivered = false
	}
	return pending, nil
}

// generateCode returns length digits without a leading zero, drawn uniformly
// from [10^(length-1), 10^length). Lengths outside 1..9 fall back to six.
func generateCode(length int) (string, error) {
	if length <= 0 || length > maxCodeLength {
		length = defaultCodeLength
	}
	low := int64(1)
	for i := 1; i < length; i++ {
		low *= 10
	}

	n, err := rand.Int(rand.Reader, big.NewInt(9*low))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+low, 10), nil
}

// CodeVerifier consumes an issued code. A code is accepted at most once per
// issue; the clear is conditional on the generation that was read.
type CodeVerifier struct {
	users UserStore
	audit *audit.Logger
	now   func() time.Time
}

func NewCodeVerifier(users UserStore, auditLogger *audit.Logger) *CodeVerifier {
	return &CodeVerifier{users: users, audit: auditLogger, now: time.Now}
}

func (v *CodeVerifier) Verify(ctx context.Context, userID int, code string) (*models.User, error) {
	user, err := v.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}

	if user.TwoFactorCode == nil || user.TwoFactorExpiry == nil {
		return nil, ErrNoPendingCode
	}
	if v.now().After(*user.TwoFactorExpiry) {
		v.audit.LogFailure(audit.EventCodeRejected, user.ID, user.Phone, ErrCodeExpired)
		return nil, ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(*user.TwoFactorCode)) != 1 {
		v.audit.LogFailure(audit.EventCodeRejected, user.ID, user.Phone, ErrIncorrectCode)
		return nil, ErrIncorrectCode
	}

	cleared, err := v.users.ClearPendingCode(ctx, user.ID, user.TwoFactorGeneration)
	if err != nil {
		return nil, fmt.Errorf("clear pending code: %w", err)
	}
	if !cleared {
		return nil, ErrNoPendingCode
	}

	user.TwoFactorCode = nil
	user.TwoFactorExpiry = nil
	return user, nil
}
