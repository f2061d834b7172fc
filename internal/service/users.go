// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/auth"
	"github.com/linkstash/linkstash/internal/metrics"
	"github.com/linkstash/linkstash/internal/model"
	"github.com/linkstash/linkstash/internal/repository"
)

// DefaultTokenTTL is the validity window for issued tokens.
const DefaultTokenTTL = 60 * time.Minute

// UserService handles registration and login. It is stateless and
// safe for concurrent use.
type UserService struct {
	repo     repository.Users
	secret   string
	tokenTTL time.Duration
	metrics  metrics.Recorder
}

// NewUserService creates a UserService. The secret signs issued
// tokens; a non-positive ttl falls back to DefaultTokenTTL.
func NewUserService(repo repository.Users, secret string, tokenTTL time.Duration, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &UserService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		metrics:  recorder,
	}
}

// Register creates a new user for the email. The password is hashed
// before it ever reaches the repository; the account is created
// verified since no external verification flow exists. A taken email
// fails with UserAlreadyExistsError and performs no repository write.
func (s *UserService) Register(ctx context.Context, email, password string, admin bool) (*model.UserInfo, error) {
	_, err := s.repo.Get(ctx, model.UserQuery{Email: email})
	if err == nil {
		return nil, apperr.UserAlreadyExistsError{Email: email}
	}
	var notFound apperr.UserNotFoundError
	if !errors.As(err, &notFound) {
		// Only the expected not-found outcome lets registration
		// proceed; everything else propagates unchanged.
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperr.ServerError{Op: "hash password", Err: err}
	}

	now := time.Now().UTC()
	info := &model.UserInfo{
		Email:     email,
		Password:  hash,
		Admin:     admin,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, info)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUserRegistered()

	return created, nil
}

// Login verifies the credentials and issues a signed bearer token.
// An unknown email yields UserNotFoundError and a failed verify yields
// IncorrectPasswordError; the two are never conflated.
func (s *UserService) Login(ctx context.Context, email, password string) (auth.Token, error) {
	info, err := s.repo.Get(ctx, model.UserQuery{Email: email})
	if err != nil {
		s.metrics.IncLoginFailed()
		return "", err
	}

	match, err := auth.VerifyPassword(password, info.Password)
	if err != nil {
		return "", apperr.ServerError{Op: "verify password", Err: err}
	}
	if !match {
		s.metrics.IncLoginFailed()
		return "", apperr.IncorrectPasswordError{Email: email}
	}

	claims := auth.NewClaims(info.Email, info.Admin, time.Now(), s.tokenTTL)
	token, err := auth.EncodeToken(claims, s.secret)
	if err != nil {
		return "", apperr.ServerError{Op: "encode token", Err: err}
	}

	s.metrics.IncLoginSucceeded()

	return token, nil
}
