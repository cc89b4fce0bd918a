package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/auth"
	"github.com/spec-kit/console-service/internal/config"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/events"
	"github.com/spec-kit/console-service/internal/repository"
)

// LoginResult is the structured outcome returned to the UI layer. Every
// failure path carries a human-readable message; nothing is thrown past
// the use-case boundary.
type LoginResult struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	User      *domain.User `json:"user,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at,omitempty"`
}

// RegisterResult is the structured outcome of operator registration.
type RegisterResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
}

// AuthService coordinates login, lockout and registration flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	lockout    auth.LockoutPolicy
	bcryptCost int
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		lockout:    auth.NewLockoutPolicy(cfg.Auth.LockoutMaxAttempts, cfg.Auth.BlockDuration()),
		bcryptCost: cfg.Auth.BcryptCost,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Used by tests to simulate lockout expiry.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates an operator by phone number. Unknown numbers
// auto-create an agent account and succeed, matching the console's
// onboarding shortcut. Blocked accounts inside the lockout window are
// rejected without touching the attempt counter or the password check.
func (s *AuthService) Login(ctx context.Context, phoneNumber, password string) LoginResult {
	creds, err := domain.NewCredentials(phoneNumber, password)
	if err != nil {
		return LoginResult{Message: err.Error()}
	}

	user, err := s.users.FindByPhoneNumber(ctx, creds.PhoneNumber)
	if err == repository.ErrNotFound {
		return s.createAndLogin(ctx, creds)
	}
	if err != nil {
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResult{Message: "internal server error"}
	}

	now := s.now()
	if s.lockout.IsStillBlocked(user, now) {
		return LoginResult{Message: "account blocked for security, wait 15 minutes or contact an administrator"}
	}

	if err := auth.ComparePassword(user.PasswordHash, creds.Password); err != nil {
		user.RegisterFailedAttempt(now)
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			s.logger.Error("failed attempt write-back failed", zap.Error(updateErr))
		}
		if user.IsBlocked {
			s.publish(ctx, events.Event{
				Type:     events.EventUserBlocked,
				EntityID: user.ID,
				Payload:  events.UserBlockedPayload{PhoneNumber: user.PhoneNumber, FailedAttempts: user.FailedAttempts},
			})
		}
		return LoginResult{Message: "invalid credentials"}
	}

	user.Unblock()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("attempt reset write-back failed", zap.Error(err))
		return LoginResult{Message: "internal server error"}
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return LoginResult{Message: "internal server error"}
	}

	return LoginResult{Success: true, Message: "login successful", User: user, Token: token, ExpiresAt: expiresAt}
}

func (s *AuthService) createAndLogin(ctx context.Context, creds domain.Credentials) LoginResult {
	if err := domain.ValidatePhoneNumber(creds.PhoneNumber); err != nil {
		return LoginResult{Message: err.Error()}
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return LoginResult{Message: "internal server error"}
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		PhoneNumber:  creds.PhoneNumber,
		Role:         domain.UserRoleAgent,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return LoginResult{Message: "internal server error"}
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return LoginResult{Message: "internal server error"}
	}

	s.logger.Info("operator auto-created on first login", zap.String("user_id", user.ID))
	return LoginResult{Success: true, Message: "user created, login successful", User: user, Token: token, ExpiresAt: expiresAt}
}

// Register creates an operator with an explicit role. Unlike the login
// shortcut it enforces the full password policy.
func (s *AuthService) Register(ctx context.Context, phoneNumber, password string, role domain.UserRole) RegisterResult {
	if err := domain.ValidatePhoneNumber(phoneNumber); err != nil {
		return RegisterResult{Message: err.Error()}
	}
	if err := domain.ValidatePassword(password); err != nil {
		return RegisterResult{Message: err.Error()}
	}
	if role == "" {
		role = domain.UserRoleAgent
	}

	if _, err := s.users.FindByPhoneNumber(ctx, phoneNumber); err == nil {
		return RegisterResult{Message: "phone number already registered"}
	} else if err != repository.ErrNotFound {
		s.logger.Error("register lookup failed", zap.Error(err))
		return RegisterResult{Message: "internal server error"}
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return RegisterResult{Message: "internal server error"}
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		PhoneNumber:  phoneNumber,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return RegisterResult{Message: "internal server error"}
	}

	return RegisterResult{Success: true, Message: "user registered", User: user}
}

// Logout currently no-ops for the stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}
