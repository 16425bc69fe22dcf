package services

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/personeltakip/backend/internal/audit"
	"github.com/personeltakip/backend/internal/config"
	"github.com/personeltakip/backend/internal/middleware"
	"github.com/personeltakip/backend/internal/models"
	"github.com/personeltakip/backend/internal/repository"
	"github.com/personeltakip/backend/internal/sms"
)

type AuthService struct {
	users       UserStore
	hasher      *PasswordHasher
	credentials *CredentialVerifier
	pending     *PendingLoginTracker
	verifier    *CodeVerifier
	sessions    *SessionManager
	limiter     *AttemptLimiter
	audit       *audit.Logger
	validator   *ValidationHelper
	defaultRole string
}

// RegisterRequest represents the registration request payload
// @Description Registration request structure
type RegisterRequest struct {
	Phone    string `json:"phone" validate:"required,min=10,max=20" example:"05551112233"`                        // User phone number
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`                              // User password
	Name     string `json:"name" validate:"required,min=2" example:"Ayşe Yılmaz"`                                // Display name
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=super_admin admin branch_admin" example:"admin"` // Optional role
	BranchID *int   `json:"branchId,omitempty" validate:"omitempty,gt=0" example:"1"`                             // Optional branch
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Phone    string `json:"phone" validate:"required" example:"05551112233"`  // User phone number
	Password string `json:"password" validate:"required" example:"Secret123!"` // User password
}

// LoginResponse is returned after a correct password; a code is pending.
// @Description Two-factor challenge response
type LoginResponse struct {
	Message           string `json:"message" example:"Verification code sent"`
	RequiresTwoFactor bool   `json:"requiresTwoFactor" example:"true"`
	UserID            int    `json:"userId" example:"1"`
}

// VerifyRequest represents the second login step
// @Description Two-factor verification request
type VerifyRequest struct {
	UserID int    `json:"userId" validate:"required,gt=0" example:"1"`
	Code   string `json:"code" validate:"required" example:"123456"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message" example:"Logged out"`
}

func NewAuthService(
	users UserStore,
	sessions *SessionManager,
	sender sms.Sender,
	limiter *AttemptLimiter,
	auditLogger *audit.Logger,
	authCfg *config.AuthConfig,
	smsCfg *config.SMSConfig,
) *AuthService {
	hasher := NewPasswordHasher(authCfg)
	role := authCfg.DefaultRole
	if role == "" {
		role = models.RoleBranchAdmin
	}
	return &AuthService{
		users:       users,
		hasher:      hasher,
		credentials: NewCredentialVerifier(users, hasher),
		pending:     NewPendingLoginTracker(users, sender, auditLogger, authCfg, smsCfg),
		verifier:    NewCodeVerifier(users, auditLogger),
		sessions:    sessions,
		limiter:     limiter,
		audit:       auditLogger,
		validator:   NewValidationHelper(),
		defaultRole: role,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a user and start a session immediately
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} models.PublicUser "Registration successful"
// @Failure 400 {object} ErrorResponse "Invalid request or phone already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /register [post]
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Registration attempt from IP: %s", r.RemoteAddr)

	var req RegisterRequest
	if !s.validator.DecodeAndValidate(w, r, &req) {
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Printf("[AUTH] Password hashing failed: %v", err)
		WriteError(w, err)
		return
	}

	role := req.Role
	if role == "" {
		role = s.defaultRole
	}

	user, err := s.users.Create(r.Context(), &models.User{
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		BranchID:     req.BranchID,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		log.Printf("[AUTH] Registration rejected, phone already registered")
		WriteError(w, ErrPhoneTaken)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := s.sessions.Establish(r.Context(), w, user); err != nil {
		WriteError(w, err)
		return
	}

	s.audit.LogSuccess(audit.EventRegister, user.ID, map[string]string{"role": user.Role})
	log.Printf("[AUTH] User created successfully - ID: %d", user.ID)
	SendJSON(w, http.StatusCreated, user.Public())
}

// Login handles the password step
// @Summary Login user
// @Description Check phone and password, then send a one-time code by SMS
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse "Code sent"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 502 {object} ErrorResponse "Code delivery failed"
// @Router /login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("[AUTH] Login attempt from IP: %s", r.RemoteAddr)

	var req LoginRequest
	if !s.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()
	phone := strings.TrimSpace(req.Phone)

	if err := s.limiter.CheckLogin(ctx, phone); err != nil {
		WriteError(w, err)
		return
	}

	user, err := s.credentials.Verify(ctx, phone, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.limiter.RecordLoginFailure(ctx, phone)
			s.audit.LogFailure(audit.EventLoginFailed, 0, phone, err)
		}
		WriteError(w, err)
		return
	}
	s.limiter.ResetLogin(ctx, phone)

	pending, err := s.pending.Issue(ctx, user)
	if err != nil {
		WriteError(w, err)
		return
	}

	log.Printf("[AUTH] Verification code issued for user %d", user.ID)
	SendJSON(w, http.StatusOK, LoginResponse{
		Message:           "Verification code sent",
		RequiresTwoFactor: true,
		UserID:            pending.UserID,
	})
}

// Verify2FA handles the code step
// @Summary Verify login code
// @Description Consume the pending code and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification request"
// @Success 200 {object} models.PublicUser "Login successful"
// @Failure 400 {object} ErrorResponse "No pending code, expired or incorrect code"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /verify-2fa [post]
func (s *AuthService) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !s.validator.DecodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()

	if err := s.limiter.CheckCode(ctx, req.UserID); err != nil {
		WriteError(w, err)
		return
	}

	user, err := s.verifier.Verify(ctx, req.UserID, strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, ErrIncorrectCode) || errors.Is(err, ErrCodeExpired) {
			s.limiter.RecordCodeFailure(ctx, req.UserID)
		}
		log.Printf("[AUTH] Verification failed for user %d: %v", req.UserID, err)
		WriteError(w, err)
		return
	}
	s.limiter.ResetCode(ctx, user.ID)

	if _, err := s.sessions.Establish(ctx, w, user); err != nil {
		WriteError(w, err)
		return
	}

	s.audit.LogSuccess(audit.EventSessionCreated, user.ID, nil)
	log.Printf("[AUTH] Login completed for user %d", user.ID)
	SendJSON(w, http.StatusOK, user.Public())
}

// Logout ends the current session
// @Summary Logout
// @Description Destroy the session if there is one; always succeeds
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /logout [post]
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	if user, err := s.sessions.Load(r); err == nil {
		s.audit.LogSuccess(audit.EventLogout, user.ID, nil)
	}
	if err := s.sessions.Destroy(r.Context(), w, r); err != nil {
		log.Printf("[AUTH] Session delete failed: %v", err)
	}
	SendJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// CurrentUser returns the session user
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} models.PublicUser
// @Failure 401 {object} ErrorResponse "Not authenticated"
// @Router /user [get]
func (s *AuthService) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		var err error
		if user, err = s.sessions.Load(r); err != nil {
			WriteError(w, err)
			return
		}
	}
	SendJSON(w, http.StatusOK, user.Public())
}
