package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/console-service/internal/auth"
	"github.com/spec-kit/console-service/internal/config"
	"github.com/spec-kit/console-service/internal/domain"
	"github.com/spec-kit/console-service/internal/repository"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
			LockoutMaxAttempts:    3,
			LockoutBlockMinutes:   15,
		},
	}
}

func newTestAuthService(t *testing.T) (*AuthService, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository()
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo: users,
		Logger:   zap.NewNop(),
	})
	return svc, users
}

func registerOperator(t *testing.T, users repository.UserRepository, phone, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{
		ID:           "u-" + phone,
		PhoneNumber:  phone,
		Role:         domain.UserRoleAgent,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := users.Save(context.Background(), user); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestLoginAutoCreatesUnknownOperator(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	result := svc.Login(ctx, "+57 999 000 0000", "whatever-pass")
	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.Token == "" {
		t.Error("expected a non-empty token")
	}
	if result.User == nil || result.User.Role != domain.UserRoleAgent {
		t.Errorf("auto-created user should be an agent: %+v", result.User)
	}

	// the account persisted and is reachable by the natural key
	stored, err := users.FindByPhoneNumber(ctx, "+57 999 000 0000")
	if err != nil {
		t.Fatalf("lookup after auto-create: %v", err)
	}
	if stored.PasswordHash == "" {
		t.Error("password hash not stored")
	}
}

func TestLoginLockoutAfterThreeFailures(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()
	const phone = "+57 300 123 4567"
	registerOperator(t, users, phone, "Correct1!pass")

	for i := 0; i < 3; i++ {
		result := svc.Login(ctx, phone, "wrong-password")
		if result.Success {
			t.Fatalf("attempt %d: expected failure", i+1)
		}
		if result.Message != "invalid credentials" {
			t.Fatalf("attempt %d: unexpected message %q", i+1, result.Message)
		}
	}

	stored, err := users.FindByPhoneNumber(ctx, phone)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !stored.IsBlocked || stored.FailedAttempts != 3 {
		t.Fatalf("expected blocked account with 3 attempts, got %+v", stored)
	}

	// correct password changes nothing while the block is in effect
	result := svc.Login(ctx, phone, "Correct1!pass")
	if result.Success {
		t.Fatal("blocked account must reject even the correct password")
	}
	if result.Message != "account blocked for security, wait 15 minutes or contact an administrator" {
		t.Errorf("unexpected block message %q", result.Message)
	}

	// the short-circuit consumes no attempt
	after, err := users.FindByPhoneNumber(ctx, phone)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if after.FailedAttempts != 3 {
		t.Errorf("blocked attempt incremented counter to %d", after.FailedAttempts)
	}
}

func TestLoginSucceedsAfterLockoutExpiry(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()
	const phone = "+57 300 123 4567"
	registerOperator(t, users, phone, "Correct1!pass")

	current := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return current })

	for i := 0; i < 3; i++ {
		svc.Login(ctx, phone, "wrong-password")
	}
	if result := svc.Login(ctx, phone, "Correct1!pass"); result.Success {
		t.Fatal("expected block inside the window")
	}

	current = current.Add(16 * time.Minute)

	result := svc.Login(ctx, phone, "Correct1!pass")
	if !result.Success {
		t.Fatalf("expected success after expiry, got %q", result.Message)
	}
	if result.Token == "" {
		t.Error("expected a non-empty token")
	}

	stored, err := users.FindByPhoneNumber(ctx, phone)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.IsBlocked || stored.FailedAttempts != 0 {
		t.Errorf("successful login should clear the block, got %+v", stored)
	}
}

func TestLoginCounterResetsOnlyOnSuccess(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()
	const phone = "+57 300 123 4567"
	registerOperator(t, users, phone, "Correct1!pass")

	svc.Login(ctx, phone, "wrong-password")
	svc.Login(ctx, phone, "wrong-password")

	stored, _ := users.FindByPhoneNumber(ctx, phone)
	if stored.FailedAttempts != 2 {
		t.Fatalf("expected 2 failed attempts, got %d", stored.FailedAttempts)
	}

	if result := svc.Login(ctx, phone, "Correct1!pass"); !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}

	stored, _ = users.FindByPhoneNumber(ctx, phone)
	if stored.FailedAttempts != 0 {
		t.Errorf("success should reset the counter, got %d", stored.FailedAttempts)
	}
}

func TestLoginRejectsEmptyFields(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if result := svc.Login(ctx, "", "pass"); result.Success {
		t.Error("empty phone must fail")
	}
	if result := svc.Login(ctx, "+573001234567", ""); result.Success {
		t.Error("empty password must fail")
	}
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if result := svc.Register(ctx, "+573001234567", "weak", domain.UserRoleAgent); result.Success {
		t.Error("weak password must be rejected")
	}

	result := svc.Register(ctx, "+573001234567", "Secur3!pass", domain.UserRoleSupervisor)
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if result.User.Role != domain.UserRoleSupervisor {
		t.Errorf("role not honored: %s", result.User.Role)
	}

	if dup := svc.Register(ctx, "+573001234567", "Secur3!pass", domain.UserRoleAgent); dup.Success {
		t.Error("duplicate phone number must be rejected")
	}
}
