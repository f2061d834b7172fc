package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/model"
)

const testSecret = "unit-test-secret"

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	repo := newFakeUsers()
	svc := NewUserService(repo, testSecret, 0, nil)

	info, err := svc.Register(context.Background(), "alice@test.com", "hunter2", false)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if info.ID == "" {
		t.Error("expected assigned id")
	}
	if !info.Verified {
		t.Error("expected account to be created verified")
	}
	if info.Admin {
		t.Error("expected non-admin account")
	}
	if info.Password == "hunter2" {
		t.Error("password stored in clear")
	}
	match, err := auth.VerifyPassword("hunter2", info.Password)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !match {
		t.Error("stored hash does not verify against the password")
	}
	if info.CreatedAt.IsZero() || info.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUsers()
	svc := NewUserService(repo, testSecret, 0, nil)

	ctx := context.Background()
	if _, err := svc.Register(ctx, "bob@test.com", "first", false); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, "bob@test.com", "second", false)
	var exists apperr.UserAlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected UserAlreadyExistsError, got %v", err)
	}
	if exists.Email != "bob@test.com" {
		t.Errorf("error email = %q, want bob@test.com", exists.Email)
	}
	if repo.creates != 1 {
		t.Errorf("creates = %d, want 1", repo.creates)
	}
}

func TestUserServiceRegisterRepoFailure(t *testing.T) {
	t.Parallel()

	repo := &failingUsers{err: errBroken}
	svc := NewUserService(repo, testSecret, 0, nil)

	_, err := svc.Register(context.Background(), "carol@test.com", "pw", false)
	if !errors.Is(err, errBroken) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
	if repo.creates != 0 {
		t.Errorf("creates = %d, want 0", repo.creates)
	}
}

func TestUserServiceLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUsers()
	svc := NewUserService(repo, testSecret, 0, nil)

	ctx := context.Background()
	if _, err := svc.Register(ctx, "dave@test.com", "correct", true); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(ctx, "dave@test.com", "correct")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := auth.DecodeToken(token, testSecret)
	if err != nil {
		t.Fatalf("decode issued token: %v", err)
	}
	if claims.Subject != "dave@test.com" {
		t.Errorf("subject = %q, want dave@test.com", claims.Subject)
	}
	if !claims.Admin {
		t.Error("expected admin claim to be set")
	}
}

func TestUserServiceLoginWrongPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUsers()
	svc := NewUserService(repo, testSecret, 0, nil)

	ctx := context.Background()
	if _, err := svc.Register(ctx, "erin@test.com", "correct", false); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "erin@test.com", "incorrect")
	var wrong apperr.IncorrectPasswordError
	if !errors.As(err, &wrong) {
		t.Fatalf("expected IncorrectPasswordError, got %v", err)
	}
	if wrong.Email != "erin@test.com" {
		t.Errorf("error email = %q, want erin@test.com", wrong.Email)
	}
}

func TestUserServiceLoginUnknownUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUsers()
	svc := NewUserService(repo, testSecret, 0, nil)

	_, err := svc.Login(context.Background(), "nobody@test.com", "whatever")
	var notFound apperr.UserNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected UserNotFoundError, got %v", err)
	}
}

// failingUsers errors on every Get and counts Create calls.
type failingUsers struct {
	err     error
	creates int
}

func (f *failingUsers) Get(context.Context, model.UserQuery) (*model.UserInfo, error) {
	return nil, f.err
}

func (f *failingUsers) Create(_ context.Context, info *model.UserInfo) (*model.UserInfo, error) {
	f.creates++
	return info, nil
}
